package bootstrap

import (
	"log/slog"

	"github.com/doconnect/doconnect-web/config"
	"github.com/doconnect/doconnect-web/internal/adapters/doconnect"
	redisstore "github.com/doconnect/doconnect-web/internal/adapters/redis"
	"github.com/doconnect/doconnect-web/internal/authz"
	"github.com/doconnect/doconnect-web/internal/moderation"
	"github.com/doconnect/doconnect-web/internal/observability/statsd"
	"github.com/doconnect/doconnect-web/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Questions  *service.QuestionService
	Moderation *moderation.Engine
}

// ServiceDeps contains dependencies for service construction.
type ServiceDeps struct {
	Config   *config.AppConfig
	API      *doconnect.Client
	Sessions *redisstore.SessionStore
	Metrics  statsd.Sink
	Logger   *slog.Logger
}

// NewServices wires all application services from shared dependencies.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	identity := deps.API.Identity()
	questionAPI := deps.API.Questions()
	adminAPI := deps.API.Admin()

	resolver := authz.NewResolver(identity, logger)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Identity:    identity,
		Resolver:    resolver,
		Sessions:    deps.Sessions,
		FallbackTTL: deps.Config.Session.TTL,
		Logger:      logger,
	})

	questions := service.NewQuestionService(service.QuestionServiceOptions{
		API:    questionAPI,
		Origin: deps.Config.API.Origin,
		UI:     deps.Config.UI,
		Logger: logger,
	})

	engine := moderation.NewEngine(questionAPI, adminAPI, logger).WithMetrics(deps.Metrics)

	return ServiceContainer{
		Auth:       auth,
		Questions:  questions,
		Moderation: engine,
	}
}
