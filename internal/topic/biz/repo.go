package biz

import (
	"context"

	"github.com/lk2023060901/ai-learning-backend/internal/topic/types"
)

// TopicRepo defines the storage contract for generated topic content
type TopicRepo interface {
	// FindByKey returns nil, nil when no row exists for (moduleID, title)
	FindByKey(ctx context.Context, moduleID, title string) (*types.Topic, error)
	// Upsert inserts the topic or fills an existing row whose content is empty.
	// stored is false when another writer already filled the row.
	Upsert(ctx context.Context, topic *types.Topic) (stored bool, err error)
}

// RoadmapRepo reads roadmaps from the relational store
type RoadmapRepo interface {
	// LatestByUser returns the most recently created roadmap with its modules
	// and topics, or nil, nil when the user has none
	LatestByUser(ctx context.Context, userID string) (*types.Roadmap, error)
}

// KVStore is the key-value fallback store
type KVStore interface {
	// Get returns found=false when the key does not exist
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
}
