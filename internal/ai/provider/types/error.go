package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType API 错误类型
type ErrorType string

const (
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error" // 400
	ErrorTypeAuthentication ErrorType = "authentication_error"  // 401 / 403
	ErrorTypeNotFound       ErrorType = "not_found_error"       // 404，通常是模型不存在
	ErrorTypeRateLimit      ErrorType = "rate_limit_error"      // 429
	ErrorTypeAPI            ErrorType = "api_error"             // 5xx
	ErrorTypeTransport      ErrorType = "transport_error"       // 网络或上下文取消
	ErrorTypeEmptyResponse  ErrorType = "empty_response"        // 没有任何选择项
)

// ErrNoChoices provider 返回了零个选择项
var ErrNoChoices = errors.New("no response from AI")

// ProviderError Provider 错误
type ProviderError struct {
	Type       ErrorType
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		if e.Err != nil {
			return fmt.Sprintf("[%s][%s][%d] %s: %v", e.Provider, e.Type, e.StatusCode, e.Message, e.Err)
		}
		return fmt.Sprintf("[%s][%s][%d] %s", e.Provider, e.Type, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Provider, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Provider, e.Type, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError 创建 Provider 错误
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Type:     ErrorTypeTransport,
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}

// NewStatusError 根据 HTTP 状态码创建 Provider 错误
func NewStatusError(provider string, status int, message string, err error) *ProviderError {
	return &ProviderError{
		Type:       ErrorTypeFromStatus(status),
		Provider:   provider,
		StatusCode: status,
		Message:    message,
		Err:        err,
	}
}

// ErrorTypeFromStatus 将 HTTP 状态码映射为错误类型
func ErrorTypeFromStatus(status int) ErrorType {
	switch {
	case status == http.StatusBadRequest:
		return ErrorTypeInvalidRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorTypeAuthentication
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status >= 500:
		return ErrorTypeAPI
	default:
		return ErrorTypeInvalidRequest
	}
}
