package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/social-memo/social-memo/internal/config"
	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/utils"
	"github.com/social-memo/social-memo/models"
)

// sessionService is the concrete implementation of SessionService: a
// mutex-guarded map from opaque token to session entry, owned by the
// composition root for the lifetime of the process.
//
// Expiry uses an exclusive boundary: a token checked exactly at its expiry
// instant is still valid, one instant later it is not.
type sessionService struct {
	mu       sync.Mutex
	sessions map[string]models.Session

	// ttl is the fixed validity window applied at issuance.
	ttl time.Duration

	// now is the clock; replaced in tests to pin the expiry boundary.
	now func() time.Time

	logger *logger.Logger
}

// NewSessionService constructs a SessionService with the validity window
// from cfg. The returned service is safe for concurrent use.
func NewSessionService(cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: make(map[string]models.Session),
		ttl:      cfg.SessionTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// Issue creates a session for username and returns its opaque token.
func (s *sessionService) Issue(username string) (string, error) {
	token, err := utils.GenerateToken()
	if err != nil {
		s.logger.Err(err).Msg("error generating session token")
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = models.Session{
		Token:    token,
		Username: username,
		Expiry:   s.now().Add(s.ttl),
	}

	return token, nil
}

// Verify looks the token up and checks its expiry. An expired entry is
// removed as a side effect, so a second Verify of the same token cannot
// find it again.
func (s *sessionService) Verify(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return "", false
	}

	if session.Expired(s.now()) {
		delete(s.sessions, token)
		return "", false
	}

	return session.Username, true
}

// Revoke removes the token if present. Idempotent.
func (s *sessionService) Revoke(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[token]
	delete(s.sessions, token)

	return ok
}

// RevokeAll removes every session owned by username.
func (s *sessionService) RevokeAll(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	revoked := 0
	for token, session := range s.sessions {
		if session.Username == username {
			delete(s.sessions, token)
			revoked++
		}
	}

	if revoked > 0 {
		s.logger.Info().Str("username", username).Int("revoked", revoked).Msg("sessions revoked")
	}

	return revoked
}

// SweepExpired evicts every expired entry.
func (s *sessionService) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	swept := 0
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			swept++
		}
	}

	return swept
}
