package service

import "errors"

var (
	// ErrInvalidCredentials is the single failure value for every login or
	// password-rotation rejection: unknown username, inactive account, or
	// wrong password. One value, one message — account existence cannot be
	// probed from outside.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordTooShort is returned when a new password does not meet
	// the minimum length.
	ErrPasswordTooShort = errors.New("new password is too short")

	// ErrInvalidDataProvided is returned when a request fails boundary
	// validation (e.g. a contact without a name).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrTokenCreationFailed is returned when generating a session token
	// fails.
	ErrTokenCreationFailed = errors.New("token creation failed")
)

// MinPasswordLength is the minimum accepted length of a new password.
const MinPasswordLength = 6
