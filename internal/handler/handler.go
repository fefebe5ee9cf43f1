package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"socialhub/internal/config"
	"socialhub/internal/middleware"
	"socialhub/internal/service"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	UserService    service.UserService
	AuthService    service.AuthService
	PostService    service.PostService
	MessageService service.MessageService
	AdminService   service.AdminService
	Health         HealthChecker
	AuthLimiter    middleware.RateLimiter
	Cfg            *config.Config
	Validate       *validator.Validate
	Log            *zap.Logger
}

func NewHandlers(services *service.Service, health HealthChecker, cfg *config.Config, log *zap.Logger) *Handlers {
	return &Handlers{
		UserService:    services.User,
		AuthService:    services.Auth,
		PostService:    services.Post,
		MessageService: services.Message,
		AdminService:   services.Admin,
		Health:         health,
		Cfg:            cfg,
		Validate:       validator.New(),
		Log:            log,
	}
}
