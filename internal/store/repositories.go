package store

import (
	"github.com/social-memo/social-memo/internal/logger"
)

// Repositories aggregates every data-access object backed by the Store.
type Repositories struct {
	Users    UserRepository
	Contacts ContactRepository
}

// NewRepositories constructs the full repository set over the given Store.
func NewRepositories(s *Store, logger *logger.Logger) *Repositories {
	logger.Info().Msg("creating repositories...")

	return &Repositories{
		Users:    NewUserRepository(s, logger),
		Contacts: NewContactRepository(s, logger),
	}
}
