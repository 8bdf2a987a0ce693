package data

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lk2023060901/ai-learning-backend/internal/pkg/database"
	"github.com/lk2023060901/ai-learning-backend/internal/topic/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// emptyContent 已有行内容为空时允许覆盖
const emptyContent = "topics.content IS NULL OR topics.content = 'null'::jsonb OR topics.content = '{}'::jsonb"

// TopicRepo implements the topic repository using GORM
type TopicRepo struct {
	db *gorm.DB
}

// NewTopicRepo creates a new topic repository
func NewTopicRepo(db *gorm.DB) *TopicRepo {
	return &TopicRepo{db: db}
}

// FindByKey 按 (module_id, title) 查询，不存在时返回 nil, nil
func (r *TopicRepo) FindByKey(ctx context.Context, moduleID, title string) (*types.Topic, error) {
	var po TopicPO
	err := r.db.WithContext(ctx).
		Where("module_id = ? AND title = ?", moduleID, title).
		Take(&po).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	return toDomain(&po), nil
}

// Upsert 单条语句完成插入或填充空内容；已有内容的行保持不变（先写者胜出）
func (r *TopicRepo) Upsert(ctx context.Context, topic *types.Topic) (bool, error) {
	po := toModel(topic)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "module_id"}, {Name: "title"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: emptyContent},
		}},
	}).Create(po)
	if result.Error != nil {
		return false, fmt.Errorf("failed to upsert topic: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// toModel converts domain topic to GORM model
func toModel(topic *types.Topic) *TopicPO {
	var content datatypes.JSON
	if !types.IsEmptyContent(topic.Content) {
		content = datatypes.JSON(topic.Content)
	}
	return &TopicPO{
		ID:         topic.ID,
		ModuleID:   topic.ModuleID,
		Title:      topic.Title,
		Difficulty: topic.Difficulty,
		Content:    content,
		CreatedAt:  topic.CreatedAt,
		UpdatedAt:  topic.UpdatedAt,
	}
}

// toDomain converts GORM model to domain topic
func toDomain(po *TopicPO) *types.Topic {
	var content json.RawMessage
	if len(po.Content) > 0 {
		content = json.RawMessage(po.Content)
	}
	return &types.Topic{
		ID:         po.ID,
		ModuleID:   po.ModuleID,
		Title:      po.Title,
		Difficulty: po.Difficulty,
		Content:    content,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	}
}
