package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
)

// ErrorBody 统一错误响应结构
type ErrorBody struct {
	Error string         `json:"error"`          // 提示信息
	Kind  apperrors.Kind `json:"kind,omitempty"` // 错误分类
	Code  int            `json:"code"`           // 业务错误码
}

// Success 成功响应（200），直接输出业务数据
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = struct{}{}
	}
	c.JSON(http.StatusOK, data)
}

// BadRequest 400 错误
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, apperrors.ErrInvalidParams, message)
}

// Unauthorized 401 错误
func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, apperrors.ErrUnauthorized, message)
}

// HandleError 统一错误处理（使用AppError）
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code := apperrors.ExtractCode(err)
	ErrorWithCode(c, code, apperrors.GetDetails(err))
}

// AbortWithError 中间件使用：输出错误并终止后续处理
func AbortWithError(c *gin.Context, err error) {
	HandleError(c, err)
	c.Abort()
}

// ErrorWithCode 使用错误码的错误响应
func ErrorWithCode(c *gin.Context, code int, details ...string) {
	c.JSON(apperrors.GetHTTPStatus(code), ErrorBody{
		Error: apperrors.FormatError(code, details...),
		Kind:  apperrors.GetKind(code),
		Code:  code,
	})
}
