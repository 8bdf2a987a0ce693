package service

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/lk2023060901/ai-learning-backend/internal/auth/middleware"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/response"
	"github.com/lk2023060901/ai-learning-backend/internal/topic/biz"
	"github.com/lk2023060901/ai-learning-backend/internal/topic/types"
	"go.uber.org/zap"
)

// TopicService handles HTTP requests for topic content and roadmaps
type TopicService struct {
	content *biz.ContentUseCase
	roadmap *biz.RoadmapUseCase
	logger  *logger.Logger
}

// NewTopicService creates a new topic service
func NewTopicService(content *biz.ContentUseCase, roadmap *biz.RoadmapUseCase, log *logger.Logger) *TopicService {
	return &TopicService{
		content: content,
		roadmap: roadmap,
		logger:  log.Named("topic-service"),
	}
}

// RegisterRoutes registers topic routes. The group must already carry the
// identity middleware; generateMiddleware runs only on the generation route
// and only for requests that miss the content cache.
func (s *TopicService) RegisterRoutes(r *gin.RouterGroup, generateMiddleware ...gin.HandlerFunc) {
	generate := []gin.HandlerFunc{s.ServeCachedContent}
	generate = append(generate, generateMiddleware...)
	generate = append(generate, s.GenerateTopicContent)
	r.POST("/generate-topic-content", generate...)
	r.GET("/topic-content/:moduleId/:topic", s.GetTopicContent)
	r.GET("/roadmap", s.GetRoadmap)
}

// ServeCachedContent 缓存命中时直接返回，不进入限流与生成
func (s *TopicService) ServeCachedContent(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		response.Unauthorized(c, "User ID required")
		c.Abort()
		return
	}

	var req types.GenerateRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, err.Error())
		c.Abort()
		return
	}

	if cached := s.content.Get(c.Request.Context(), req.ModuleID, req.Topic); cached != nil {
		s.logger.WithContext(c.Request.Context()).Debug("served cached topic content",
			zap.String("module_id", req.ModuleID),
			zap.String("topic", req.Topic))
		response.Success(c, types.ContentResponse{Content: cached})
		c.Abort()
		return
	}

	c.Next()
}

// GenerateTopicContent returns cached content or generates it
// @Summary Generate topic content
// @Tags topics
// @Accept json
// @Produce json
// @Param request body types.GenerateRequest true "Topic context"
// @Success 200 {object} types.ContentResponse
// @Router /generate-topic-content [post]
func (s *TopicService) GenerateTopicContent(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		response.Unauthorized(c, "User ID required")
		return
	}

	var req types.GenerateRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	content, err := s.content.Generate(c.Request.Context(), &req)
	if err != nil {
		s.logger.WithContext(c.Request.Context()).Error("topic content generation failed",
			zap.String("module_id", req.ModuleID),
			zap.String("topic", req.Topic),
			zap.Error(err))
		response.HandleError(c, err)
		return
	}

	response.Success(c, types.ContentResponse{Content: content})
}

// GetTopicContent returns stored content, or null when none exists
// @Summary Get topic content
// @Tags topics
// @Produce json
// @Param moduleId path string true "Module ID"
// @Param topic path string true "Topic title"
// @Success 200 {object} types.ContentResponse
// @Router /topic-content/{moduleId}/{topic} [get]
func (s *TopicService) GetTopicContent(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		response.Unauthorized(c, "User ID required")
		return
	}

	content := s.content.Get(c.Request.Context(), c.Param("moduleId"), c.Param("topic"))
	response.Success(c, types.ContentResponse{Content: content})
}

// GetRoadmap returns the caller's most recent roadmap
// @Summary Get roadmap
// @Tags roadmaps
// @Produce json
// @Success 200 {object} types.RoadmapResponse
// @Router /roadmap [get]
func (s *TopicService) GetRoadmap(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User ID required")
		return
	}

	roadmap, err := s.roadmap.Latest(c.Request.Context(), userID)
	if err != nil {
		s.logger.WithContext(c.Request.Context()).Error("get roadmap failed", zap.Error(err))
		response.HandleError(c, err)
		return
	}

	response.Success(c, types.RoadmapResponse{Roadmap: roadmap})
}
