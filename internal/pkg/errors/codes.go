package errors

import (
	"fmt"
	"net/http"
)

// Kind classifies an error for API clients
type Kind string

const (
	KindInternal    Kind = "internal"
	KindValidation  Kind = "validation"
	KindAuth        Kind = "auth"
	KindRateLimited Kind = "rate_limited"
	KindGeneration  Kind = "generation"
	KindParse       Kind = "parse"
	KindStore       Kind = "store"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Kind    Kind   // Client-facing classification
	Message string // Error message
}

// Error codes
const (
	Success = 0

	// Common errors (1000-1099)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrUnauthorized    = 1003
	ErrTooManyRequests = 1006

	// Identity errors (1100-1199)
	ErrInvalidToken     = 1100
	ErrIdentityMismatch = 1101

	// Content pipeline errors (2000-2999)
	ErrGenerationFailed = 2000
	ErrParseFailed      = 2001
	ErrStoreFailed      = 2002
)

var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "", "Success"},

	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, KindInternal, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, KindValidation, "Invalid parameters"},
	ErrUnauthorized:    {ErrUnauthorized, http.StatusUnauthorized, KindAuth, "Unauthorized"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, KindRateLimited, "Too many requests"},

	ErrInvalidToken:     {ErrInvalidToken, http.StatusUnauthorized, KindAuth, "Invalid or expired token"},
	ErrIdentityMismatch: {ErrIdentityMismatch, http.StatusUnauthorized, KindAuth, "Identity mismatch"},

	ErrGenerationFailed: {ErrGenerationFailed, http.StatusInternalServerError, KindGeneration, "AI generation failed"},
	ErrParseFailed:      {ErrParseFailed, http.StatusInternalServerError, KindParse, "Failed to parse AI response"},
	ErrStoreFailed:      {ErrStoreFailed, http.StatusInternalServerError, KindStore, "Failed to store content"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// GetKind returns the kind for a given error code
func GetKind(code int) Kind {
	return GetCode(code).Kind
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
