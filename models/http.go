package models

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	// Username of the account to authenticate. Required.
	Username string `json:"username"`

	// Password in plaintext; hashed server-side, never stored. Required.
	Password string `json:"password"`
}

// LoginResponse is returned from a successful login.
type LoginResponse struct {
	Success bool `json:"success"`

	// Token is the opaque bearer token to present on every subsequent
	// protected request in the "Authorization: Bearer <token>" header.
	Token string `json:"token"`
}

// ChangePasswordRequest is the body of POST /api/auth/change-password.
// The acting user is resolved from the bearer token, not from the body.
type ChangePasswordRequest struct {
	// OldPassword must verify against the stored credentials. Required.
	OldPassword string `json:"oldPassword"`

	// NewPassword replaces the old one; minimum length 6. Required.
	NewPassword string `json:"newPassword"`
}

// AuthCheckResponse is returned from GET /api/auth/check.
type AuthCheckResponse struct {
	Authenticated bool `json:"authenticated"`

	// Username is set only when Authenticated is true.
	Username string `json:"username,omitempty"`
}

// SuccessResponse is the generic success body returned by operations that
// have no payload (logout, password change, deletes).
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the generic JSON error body used by every rejection,
// including the 401 responses produced by the auth middleware.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ContactRequest is the validated body of contact create/update calls.
// All fields besides Name and Type are optional; zero values are persisted
// as the schema defaults.
type ContactRequest struct {
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	RelationshipLevel string  `json:"relationship_level,omitempty"`
	Gender            string  `json:"gender,omitempty"`
	Birthday          string  `json:"birthday,omitempty"`
	Phone             string  `json:"phone,omitempty"`
	Email             string  `json:"email,omitempty"`
	Company           string  `json:"company,omitempty"`
	Position          string  `json:"position,omitempty"`
	Address           string  `json:"address,omitempty"`
	Tags              string  `json:"tags,omitempty"`
	Notes             string  `json:"notes,omitempty"`
	Latitude          float64 `json:"latitude,omitempty"`
	Longitude         float64 `json:"longitude,omitempty"`
	ImportanceScore   int64   `json:"importance_score,omitempty"`
}
