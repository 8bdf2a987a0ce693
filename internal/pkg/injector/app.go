package injector

import (
	"net/http"

	"github.com/lk2023060901/ai-learning-backend/internal/ai/provider/openai"
	providertypes "github.com/lk2023060901/ai-learning-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-learning-backend/internal/auth"
	"github.com/lk2023060901/ai-learning-backend/internal/conf"
	"github.com/lk2023060901/ai-learning-backend/internal/data"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	pkgredis "github.com/lk2023060901/ai-learning-backend/internal/pkg/redis"
	"github.com/lk2023060901/ai-learning-backend/internal/server"
	topicbiz "github.com/lk2023060901/ai-learning-backend/internal/topic/biz"
	topicdata "github.com/lk2023060901/ai-learning-backend/internal/topic/data"
	topicservice "github.com/lk2023060901/ai-learning-backend/internal/topic/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App encapsulates all application dependencies
type App struct {
	Config     *conf.Config
	Logger     *logger.Logger
	HTTPServer *server.HTTPServer
}

func newApp(config *conf.Config, log *logger.Logger, httpServer *server.HTTPServer) *App {
	return &App{
		Config:     config,
		Logger:     log,
		HTTPServer: httpServer,
	}
}

// Data layer helpers

func provideData(config *conf.Config, log *logger.Logger) (*data.Data, func(), error) {
	return data.NewData(config, log)
}

func provideGormDB(d *data.Data) *gorm.DB {
	return d.DB.GetDB()
}

func provideRedisClient(d *data.Data) *pkgredis.Client {
	return d.RedisClient
}

// provideKVStore 未启用 Redis 时返回 nil，路线接口不再回退
func provideKVStore(d *data.Data) topicbiz.KVStore {
	if d.RedisClient == nil {
		return nil
	}
	return topicdata.NewKVStore(d.RedisClient)
}

// AI provider

func provideAIProvider(config *conf.Config, log *logger.Logger) (*openai.Provider, func(), error) {
	p, err := openai.New(&providertypes.Config{
		APIKey:  config.AI.APIKey,
		BaseURL: config.AI.BaseURL,
		Model:   config.AI.Model,
		Timeout: config.AI.Timeout,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := p.Close(); err != nil {
			log.Warn("failed to close AI provider", zap.Error(err))
		}
	}
	return p, cleanup, nil
}

func provideContentGenerator(p providertypes.Provider, config *conf.Config, log *logger.Logger) *topicbiz.ContentGenerator {
	return topicbiz.NewContentGenerator(p, config.AI.Model, log)
}

// Identity

func provideResolver(config *conf.Config, log *logger.Logger) (*auth.Resolver, error) {
	policy, err := auth.ParseHeaderPolicy(config.Auth.HeaderPolicy)
	if err != nil {
		return nil, err
	}
	return auth.NewResolver(
		auth.NewJWTManager(config.Auth.JWTSecret, config.Auth.JWTIssuer),
		policy,
		config.Auth.SessionSecret,
		log,
	), nil
}

// Servers

func provideHealthChecks(config *conf.Config, d *data.Data) server.HealthChecks {
	return server.HealthChecks{
		Database: d.DatabaseCheck(),
		Redis:    d.RedisCheck(),
		HasAIKey: config.AI.APIKey != "",
	}
}

func provideRouter(
	config *conf.Config,
	log *logger.Logger,
	resolver *auth.Resolver,
	topicService *topicservice.TopicService,
	redisClient *pkgredis.Client,
	health server.HealthChecks,
) http.Handler {
	return server.NewRouter(config, log, resolver, topicService, redisClient, health)
}
