package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-learning-backend/internal/auth"
	"github.com/lk2023060901/ai-learning-backend/internal/auth/middleware"
	"github.com/lk2023060901/ai-learning-backend/internal/conf"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/redis"
	"github.com/lk2023060901/ai-learning-backend/internal/topic/service"
	"go.uber.org/zap"
)

// HealthChecks 健康检查依赖，nil 表示未配置
type HealthChecks struct {
	Database func(ctx context.Context) error
	Redis    func(ctx context.Context) error
	HasAIKey bool
}

// HTTPServer HTTP 服务器
type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

// NewRouter 组装路由与中间件。redisClient 为 nil 时不启用限流
func NewRouter(
	config *conf.Config,
	log *logger.Logger,
	resolver *auth.Resolver,
	topicService *service.TopicService,
	redisClient *redis.Client,
	health HealthChecks,
) *gin.Engine {
	router := gin.New()
	// 按原始路径匹配，"CI%2FCD" 这类标题作为单个参数解码
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(
		logger.GinLogger(log, logger.MiddlewareOptions{SkipPaths: []string{config.Server.BasePath + "/health"}}),
		logger.GinRecovery(log),
		middleware.CORS(config.Server.CORSOrigins),
	)

	root := router.Group(config.Server.BasePath)
	root.GET("/health", healthHandler(health))

	var generateMiddleware []gin.HandlerFunc
	if redisClient != nil && config.RateLimit.GenerateMaxRequests > 0 {
		generateMiddleware = append(generateMiddleware, middleware.RateLimiter(redisClient, middleware.RateLimiterConfig{
			MaxRequests:   config.RateLimit.GenerateMaxRequests,
			WindowSeconds: config.RateLimit.GenerateWindowSeconds,
			Scope:         "generate",
		}, log))
	}

	api := root.Group("", middleware.RequireIdentity(resolver, log))
	topicService.RegisterRoutes(api, generateMiddleware...)

	return router
}

func healthHandler(checks HealthChecks) gin.HandlerFunc {
	probe := func(ctx context.Context, check func(context.Context) error) bool {
		if check == nil {
			return false
		}
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return check(ctx) == nil
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			"env": gin.H{
				"hasDatabase": probe(ctx, checks.Database),
				"hasRedis":    probe(ctx, checks.Redis),
				"hasAIKey":    checks.HasAIKey,
			},
		})
	}
}

// NewHTTPServer 创建 HTTP 服务器
func NewHTTPServer(config *conf.Config, handler http.Handler, log *logger.Logger) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:         config.Server.Addr(),
			Handler:      handler,
			ReadTimeout:  config.Server.ReadTimeout,
			WriteTimeout: config.Server.WriteTimeout,
		},
		logger: log,
	}
}

// Start 阻塞直到服务器关闭
func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅关闭
func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
