//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/lk2023060901/ai-learning-backend/internal/ai/provider/openai"
	providertypes "github.com/lk2023060901/ai-learning-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-learning-backend/internal/conf"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-learning-backend/internal/server"
	topicbiz "github.com/lk2023060901/ai-learning-backend/internal/topic/biz"
	topicdata "github.com/lk2023060901/ai-learning-backend/internal/topic/data"
	topicservice "github.com/lk2023060901/ai-learning-backend/internal/topic/service"
)

// ProviderSet is the Wire provider set for all dependencies
var ProviderSet = wire.NewSet(
	// Data layer
	dataProviderSet,

	// Repositories
	repositoryProviderSet,

	// Use cases
	useCaseProviderSet,

	// Servers
	serverProviderSet,
)

// Data layer providers
var dataProviderSet = wire.NewSet(
	provideData,
	provideGormDB,
	provideRedisClient,
	provideKVStore,
)

// Repository providers
var repositoryProviderSet = wire.NewSet(
	topicdata.NewTopicRepo,
	wire.Bind(new(topicbiz.TopicRepo), new(*topicdata.TopicRepo)),
	topicdata.NewRoadmapRepo,
	wire.Bind(new(topicbiz.RoadmapRepo), new(*topicdata.RoadmapRepo)),
)

// Use case providers
var useCaseProviderSet = wire.NewSet(
	provideAIProvider,
	wire.Bind(new(providertypes.Provider), new(*openai.Provider)),
	provideContentGenerator,
	wire.Bind(new(topicbiz.Generator), new(*topicbiz.ContentGenerator)),
	topicbiz.NewContentUseCase,
	topicbiz.NewRoadmapUseCase,
	provideResolver,
)

// Server providers
var serverProviderSet = wire.NewSet(
	topicservice.NewTopicService,
	provideHealthChecks,
	provideRouter,
	server.NewHTTPServer,
)

// InitializeApp initializes the application with Wire
func InitializeApp(config *conf.Config, log *logger.Logger) (*App, func(), error) {
	wire.Build(ProviderSet, newApp)
	return nil, nil, nil
}
