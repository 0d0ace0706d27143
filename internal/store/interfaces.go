package store

import (
	"context"

	"github.com/social-memo/social-memo/models"
)

// UserRepository is the data-access contract for account records.
type UserRepository interface {
	// CreateUser persists a new user row and returns it with its
	// server-assigned fields populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername retrieves a user by its unique username,
	// regardless of the account's active flag.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// UpdateLastLogin stamps the user's last_login with the current time.
	UpdateLastLogin(ctx context.Context, userID int64) error

	// UpdateCredentials replaces the stored hash and salt and refreshes
	// updated_at.
	UpdateCredentials(ctx context.Context, userID int64, passwordHash, passwordSalt string) error
}

// ContactRepository is the data-access contract for the contacts relation
// and its two-staged deletion lifecycle.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	GetContact(ctx context.Context, id int64) (models.Contact, error)

	// ListContacts returns all contacts that are not soft-deleted.
	ListContacts(ctx context.Context) ([]models.Contact, error)

	// UpdateContact rewrites the mutable fields of a live (not
	// soft-deleted) contact and refreshes updated_at.
	UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error)

	// SoftDeleteContact flags a live contact as deleted. Satellite rows
	// are retained until PurgeContact.
	SoftDeleteContact(ctx context.Context, id int64) error

	// ListDeletedContacts returns the contents of the trash.
	ListDeletedContacts(ctx context.Context) ([]models.Contact, error)

	// RestoreContact clears the soft-delete flag of a trashed contact.
	RestoreContact(ctx context.Context, id int64) error

	// PurgeContact permanently removes a trashed contact: its satellite
	// rows are deleted explicitly in dependency order, then the contact
	// row itself.
	PurgeContact(ctx context.Context, id int64) error
}
