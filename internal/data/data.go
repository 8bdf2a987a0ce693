package data

import (
	"context"
	"fmt"

	"github.com/lk2023060901/ai-learning-backend/internal/conf"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/database"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/redis"
	topicdata "github.com/lk2023060901/ai-learning-backend/internal/topic/data"
	"go.uber.org/zap"
)

// Data 持有数据库与 Redis 连接
type Data struct {
	DB          *database.DB
	RedisClient *redis.Client // redis.enabled 为 false 时为 nil
	Logger      *logger.Logger
}

// NewData 初始化存储依赖，返回的 cleanup 负责关闭连接
func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	db, err := database.New(&config.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := db.AutoMigrate(topicdata.Models()...); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient, err = redis.New(&config.Redis, log)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to init redis: %w", err)
		}
	} else {
		log.Warn("redis disabled, roadmap kv fallback and rate limiting are off")
	}

	d := &Data{
		DB:          db,
		RedisClient: redisClient,
		Logger:      log,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Error("failed to close redis", zap.Error(err))
			}
		}
	}

	return d, cleanup, nil
}

// DatabaseCheck 健康检查使用
func (d *Data) DatabaseCheck() func(ctx context.Context) error {
	return d.DB.HealthCheck
}

// RedisCheck 未启用 Redis 时返回 nil
func (d *Data) RedisCheck() func(ctx context.Context) error {
	if d.RedisClient == nil {
		return nil
	}
	return d.RedisClient.Ping
}
