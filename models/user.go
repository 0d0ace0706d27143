package models

// User represents the account entity used for authentication.
// There is normally exactly one row — the default admin created at first
// startup — but the schema does not forbid additional accounts.
// Credential fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash is the PBKDF2-SHA512 digest of the user's password,
	// hex encoded. Never plaintext, never exposed via JSON.
	PasswordHash string `json:"-"`

	// PasswordSalt is the per-user random salt the hash was derived with,
	// hex encoded. Salts are never reused across users or rotations.
	PasswordSalt string `json:"-"`

	// IsActive reports whether the account may log in.
	// Inactive accounts fail login with the same generic error as a wrong
	// password, so account state cannot be probed from outside.
	IsActive bool `json:"is_active"`

	// LastLogin is the timestamp of the most recent successful login,
	// empty until the first one.
	LastLogin string `json:"last_login,omitempty"`

	// CreatedAt is the timestamp when the account row was created.
	CreatedAt string `json:"created_at"`

	// UpdatedAt is refreshed on every credential rotation.
	UpdatedAt string `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
