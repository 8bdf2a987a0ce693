package data

import (
	"context"
	"fmt"
	"time"

	"github.com/lk2023060901/ai-learning-backend/internal/pkg/redis"
)

// KVStore 基于 Redis 的键值存储
type KVStore struct {
	client *redis.Client
}

// NewKVStore creates a Redis-backed key-value store
func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

// Get 键不存在时 found 为 false
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set 写入键值，ttl 为 0 表示不过期
func (s *KVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
