package biz

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-learning-backend/internal/topic/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Generator produces raw model output for a topic
type Generator interface {
	Generate(ctx context.Context, in GenerateInput) (string, error)
}

// ContentUseCase 缓存优先的内容生成流程：
// 查缓存 → 生成 → 提取 JSON → 规整 → 持久化
type ContentUseCase struct {
	repo      TopicRepo
	generator Generator
	logger    *logger.Logger
	flight    singleflight.Group
	now       func() time.Time
}

// NewContentUseCase creates a new content use case
func NewContentUseCase(repo TopicRepo, generator Generator, log *logger.Logger) *ContentUseCase {
	return &ContentUseCase{
		repo:      repo,
		generator: generator,
		logger:    log.Named("topic"),
		now:       time.Now,
	}
}

// Generate 返回 (moduleId, topic) 的内容，缓存命中时不调用模型。
// 同一进程内对同一 key 的并发未命中只触发一次生成，等待者共享结果与错误。
// 生成不随首个请求取消，其他等待者仍可拿到结果；耗时由 ai.timeout 约束。
func (uc *ContentUseCase) Generate(ctx context.Context, req *types.GenerateRequest) (json.RawMessage, error) {
	log := uc.logger.WithContext(ctx)

	if cached := uc.lookup(ctx, req.ModuleID, req.Topic); cached != nil {
		log.Info("returning cached topic content",
			zap.String("module_id", req.ModuleID),
			zap.String("topic", req.Topic))
		return cached, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := uc.flight.Do(flightKey(req.ModuleID, req.Topic), func() (interface{}, error) {
		// 上一轮生成可能在本次查询之后刚完成
		if cached := uc.lookup(flightCtx, req.ModuleID, req.Topic); cached != nil {
			return cached, nil
		}
		return uc.generate(flightCtx, req)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug("shared in-flight generation", zap.String("topic", req.Topic))
	}
	return v.(json.RawMessage), nil
}

// Get 读取已生成的内容；不存在或存储出错时返回 nil
func (uc *ContentUseCase) Get(ctx context.Context, moduleID, title string) json.RawMessage {
	return uc.lookup(ctx, moduleID, title)
}

// lookup 缓存读取失败视为未命中
func (uc *ContentUseCase) lookup(ctx context.Context, moduleID, title string) json.RawMessage {
	topic, err := uc.repo.FindByKey(ctx, moduleID, title)
	if err != nil {
		uc.logger.WithContext(ctx).Warn("topic lookup failed, treating as miss",
			zap.String("module_id", moduleID),
			zap.String("topic", title),
			zap.Error(err))
		return nil
	}
	if !topic.HasContent() {
		return nil
	}
	return topic.Content
}

func (uc *ContentUseCase) generate(ctx context.Context, req *types.GenerateRequest) (json.RawMessage, error) {
	log := uc.logger.WithContext(ctx)

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = types.DifficultyBeginner
	}

	raw, err := uc.generator.Generate(ctx, GenerateInput{
		Topic:       req.Topic,
		ModuleTitle: req.ModuleTitle,
		Difficulty:  difficulty,
		TargetGoal:  req.TargetGoal,
	})
	if err != nil {
		return nil, err
	}

	obj, err := ExtractJSON(raw)
	if err != nil {
		log.Warn("failed to parse model output",
			zap.String("topic", req.Topic),
			zap.String("output_preview", preview(raw, 200)),
			zap.Error(err))
		return nil, err
	}

	now := uc.now().UTC()
	content := Normalize(obj, ContentContext{
		Topic:       req.Topic,
		ModuleID:    req.ModuleID,
		ModuleTitle: req.ModuleTitle,
		Difficulty:  difficulty,
	}, now)

	payload, err := json.Marshal(content)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternalServer, "encode topic content")
	}

	return uc.persist(ctx, &types.Topic{
		ID:         uuid.New().String(),
		ModuleID:   req.ModuleID,
		Title:      req.Topic,
		Difficulty: difficulty,
		Content:    payload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}), nil
}

// persist 写入失败只记录日志，仍返回新生成的内容。
// 行已被其他写入者填充时返回已存储的内容。
func (uc *ContentUseCase) persist(ctx context.Context, topic *types.Topic) json.RawMessage {
	log := uc.logger.WithContext(ctx).With(
		zap.String("module_id", topic.ModuleID),
		zap.String("topic", topic.Title))

	stored, err := uc.repo.Upsert(ctx, topic)
	if err != nil {
		log.Error("failed to store topic content", zap.Error(apperrors.Wrap(err, apperrors.ErrStoreFailed)))
		return topic.Content
	}
	if stored {
		log.Info("topic content stored")
		return topic.Content
	}

	log.Info("topic content already stored by another writer")
	if existing := uc.lookup(ctx, topic.ModuleID, topic.Title); existing != nil {
		return existing
	}
	return topic.Content
}

func flightKey(moduleID, title string) string {
	return moduleID + "\x00" + title
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
