package http

import "errors"

// Sentinel errors produced while enforcing the session gate. The first two
// double as the JSON error messages returned to the client, so their text is
// part of the wire contract. Callers can match against all of them with
// [errors.Is].
var (
	// ErrNotLoggedIn is returned, and written to the client, when a request
	// to a protected route carries no usable "Authorization" header at all.
	ErrNotLoggedIn = errors.New("unauthorized, please log in")

	// ErrSessionExpired is returned, and written to the client, when the
	// presented token is unknown or past its expiry.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
