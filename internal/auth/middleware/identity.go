package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-learning-backend/internal/auth"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	HeaderUserID        = "X-User-Id"
	HeaderUserSignature = "X-User-Signature"

	ContextUserID         = "user_id"
	ContextIdentitySource = "identity_source"
)

// RequireIdentity 解析调用方身份，失败时直接返回 401，不进入后续处理
func RequireIdentity(resolver *auth.Resolver, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.Resolve(c.Request.Context(), auth.Credentials{
			UserID:        c.GetHeader(HeaderUserID),
			Signature:     c.GetHeader(HeaderUserSignature),
			Authorization: c.GetHeader("Authorization"),
		})
		if err != nil {
			log.Warn("identity rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
				zap.Error(err))
			response.AbortWithError(c, err)
			return
		}

		c.Set(ContextUserID, id.UserID)
		c.Set(ContextIdentitySource, id.Source)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), id.UserID))

		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}
