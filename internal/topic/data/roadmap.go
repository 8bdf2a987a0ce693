package data

import (
	"context"
	"fmt"

	"github.com/lk2023060901/ai-learning-backend/internal/pkg/database"
	"github.com/lk2023060901/ai-learning-backend/internal/topic/types"
	"gorm.io/gorm"
)

// RoadmapRepo implements the roadmap repository using GORM
type RoadmapRepo struct {
	db *gorm.DB
}

// NewRoadmapRepo creates a new roadmap repository
func NewRoadmapRepo(db *gorm.DB) *RoadmapRepo {
	return &RoadmapRepo{db: db}
}

// LatestByUser 返回用户最新创建的路线，模块按 order 升序，并附带各模块的知识点
func (r *RoadmapRepo) LatestByUser(ctx context.Context, userID string) (*types.Roadmap, error) {
	db := r.db.WithContext(ctx)

	var rm RoadmapPO
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Take(&rm).Error; err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get roadmap: %w", err)
	}

	var modules []ModulePO
	if err := db.Where("roadmap_id = ?", rm.ID).Order(`"order" ASC`).Find(&modules).Error; err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	roadmap := &types.Roadmap{
		ID:        rm.ID,
		UserID:    rm.UserID,
		Title:     rm.Title,
		Goal:      rm.Goal,
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
		Modules:   make([]*types.Module, 0, len(modules)),
	}
	if len(modules) == 0 {
		return roadmap, nil
	}

	moduleIDs := make([]string, 0, len(modules))
	byID := make(map[string]*types.Module, len(modules))
	for _, m := range modules {
		module := &types.Module{
			ID:          m.ID,
			RoadmapID:   m.RoadmapID,
			Title:       m.Title,
			Description: m.Description,
			Order:       m.Order,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
			Topics:      []*types.Topic{},
		}
		roadmap.Modules = append(roadmap.Modules, module)
		byID[m.ID] = module
		moduleIDs = append(moduleIDs, m.ID)
	}

	var topics []TopicPO
	if err := db.Where("module_id IN ?", moduleIDs).Order("created_at ASC").Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	for i := range topics {
		if module, ok := byID[topics[i].ModuleID]; ok {
			module.Topics = append(module.Topics, toDomain(&topics[i]))
		}
	}

	return roadmap, nil
}
