package service

import (
	"context"

	"github.com/social-memo/social-memo/models"
)

// AuthService owns credentials: the default admin bootstrap, login, and
// password rotation. Session issuance and revocation are delegated to the
// SessionService it is wired with.
type AuthService interface {
	// EnsureDefaultAdmin creates the default admin account with a freshly
	// salted credential, but only when no account with that username
	// exists yet. Runs once per process startup after schema setup.
	EnsureDefaultAdmin(ctx context.Context) error

	// Login verifies the credentials and, on success, issues a session
	// token and refreshes the user's last-login timestamp.
	//
	// Unknown username, inactive account, and wrong password all fail
	// with the same ErrInvalidCredentials, so callers cannot enumerate
	// accounts.
	Login(ctx context.Context, username, password string) (string, error)

	// ChangePassword re-verifies the old password, stores a new hash with
	// a fresh salt, and revokes every outstanding session of the user.
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
}

// SessionService is the in-memory session table: opaque bearer tokens
// mapped to their owner and absolute expiry. Nothing is persisted; a
// process restart invalidates every session.
type SessionService interface {
	// Issue creates a session for username and returns its token. The
	// expiry is fixed at issuance; there is no renewal.
	Issue(username string) (string, error)

	// Verify reports whether the token is present and unexpired, returning
	// the owning username when it is. An expired entry is evicted by the
	// failing lookup.
	Verify(token string) (string, bool)

	// Revoke removes the token if present. Idempotent; reports whether the
	// token existed.
	Revoke(token string) bool

	// RevokeAll removes every token owned by username and returns how many
	// were dropped. Used after password rotation.
	RevokeAll(username string) int

	// SweepExpired evicts every expired entry and returns how many were
	// dropped. Lazy eviction on Verify remains the correctness mechanism;
	// the sweep only keeps abandoned tokens from accumulating.
	SweepExpired() int
}

// ContactService implements the contact lifecycle over the repository:
// create/update with boundary validation, soft delete, trash listing,
// restore, and permanent purge.
type ContactService interface {
	CreateContact(ctx context.Context, req models.ContactRequest) (models.Contact, error)
	UpdateContact(ctx context.Context, id int64, req models.ContactRequest) (models.Contact, error)
	ListContacts(ctx context.Context) ([]models.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
	ListTrash(ctx context.Context) ([]models.Contact, error)
	RestoreContact(ctx context.Context, id int64) error
	PurgeContact(ctx context.Context, id int64) error
}
