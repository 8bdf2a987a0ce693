package biz

import (
	"context"
	"encoding/json"

	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// RoadmapKVKey 键值存储中的路线键
func RoadmapKVKey(userID string) string {
	return "roadmap:" + userID
}

// RoadmapUseCase 读取用户最新的学习路线
type RoadmapUseCase struct {
	repo   RoadmapRepo
	kv     KVStore
	logger *logger.Logger
}

// NewRoadmapUseCase creates a roadmap use case. kv may be nil when no
// fallback store is configured.
func NewRoadmapUseCase(repo RoadmapRepo, kv KVStore, log *logger.Logger) *RoadmapUseCase {
	return &RoadmapUseCase{
		repo:   repo,
		kv:     kv,
		logger: log.Named("roadmap"),
	}
}

// Latest 优先返回数据库中的路线，没有时回退到键值存储；都没有时返回 nil
func (uc *RoadmapUseCase) Latest(ctx context.Context, userID string) (json.RawMessage, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("User ID required")
	}

	roadmap, err := uc.repo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternalServer, "failed to load roadmap")
	}
	if roadmap != nil {
		payload, err := json.Marshal(roadmap)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternalServer, "failed to encode roadmap")
		}
		return payload, nil
	}

	if uc.kv == nil {
		return nil, nil
	}

	value, found, err := uc.kv.Get(ctx, RoadmapKVKey(userID))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternalServer, "failed to load roadmap")
	}
	if !found {
		return nil, nil
	}
	if !gjson.ValidBytes(value) {
		uc.logger.WithContext(ctx).Warn("ignoring malformed roadmap in kv store", zap.String("user_id", userID))
		return nil, nil
	}

	return value, nil
}
