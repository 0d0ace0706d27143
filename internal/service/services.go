package service

import (
	"github.com/social-memo/social-memo/internal/config"
	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/store"
)

// Services aggregates every business service the transport layer depends
// on.
type Services struct {
	AuthService    AuthService
	SessionService SessionService
	ContactService ContactService
}

// NewServices constructs the full service set over the given repositories.
func NewServices(repos *store.Repositories, cfg config.App, logger *logger.Logger) *Services {
	logger.Info().Msg("creating services...")

	sessions := NewSessionService(cfg, logger)

	return &Services{
		AuthService:    NewAuthService(repos.Users, sessions, logger),
		SessionService: sessions,
		ContactService: NewContactService(repos.Contacts, logger),
	}
}
