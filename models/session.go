package models

import "time"

// Session is a single issued bearer-token session.
//
// Sessions live exclusively in the session manager's in-memory table and are
// never persisted: a process restart invalidates every outstanding token.
type Session struct {
	// Token is the opaque random identifier presented by the client.
	// Excluded from JSON serialization; it is returned to the client once,
	// inside the login response, and never echoed back afterwards.
	Token string `json:"-"`

	// Username is the account that owns the session.
	Username string `json:"username"`

	// Expiry is the absolute instant after which the session is invalid.
	// The window is fixed at issuance; there is no renewal.
	Expiry time.Time `json:"expiry"`
}

// Expired reports whether the session is past its expiry at the given
// instant. The boundary is exclusive: a session checked exactly at its
// expiry instant is still valid.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.Expiry)
}
