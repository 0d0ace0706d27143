package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-memo/social-memo/internal/config"
	"github.com/social-memo/social-memo/internal/logger"
)

// newTestSessionService builds a session service with a fixed clock that
// tests can advance through the returned setter.
func newTestSessionService(t *testing.T, ttl time.Duration) (*sessionService, func(time.Time)) {
	t.Helper()

	svc, ok := NewSessionService(config.App{SessionTTL: ttl}, logger.Nop()).(*sessionService)
	require.True(t, ok)

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return svc, func(at time.Time) { now = at }
}

func TestSessionService_IssueAndVerify(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)

	token, err := svc.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, ok := svc.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, "admin", username)
}

func TestSessionService_VerifyUnknownToken(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)

	username, ok := svc.Verify("no-such-token")

	assert.False(t, ok)
	assert.Empty(t, username)
}

func TestSessionService_TokensAreUniquePerIssue(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)

	first, err := svc.Issue("admin")
	require.NoError(t, err)
	second, err := svc.Issue("admin")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSessionService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour

	tests := []struct {
		name      string
		checkedAt time.Time
		wantValid bool
	}{
		{name: "immediately after issue", checkedAt: issuedAt, wantValid: true},
		{name: "exactly at expiry is still valid", checkedAt: issuedAt.Add(ttl), wantValid: true},
		{name: "one instant past expiry", checkedAt: issuedAt.Add(ttl + time.Nanosecond), wantValid: false},
		{name: "long past expiry", checkedAt: issuedAt.Add(48 * time.Hour), wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, setNow := newTestSessionService(t, ttl)

			token, err := svc.Issue("admin")
			require.NoError(t, err)

			setNow(tt.checkedAt)

			_, ok := svc.Verify(token)
			assert.Equal(t, tt.wantValid, ok)
		})
	}
}

func TestSessionService_ExpiredTokenIsEvictedOnLookup(t *testing.T) {
	svc, setNow := newTestSessionService(t, time.Hour)

	token, err := svc.Issue("admin")
	require.NoError(t, err)

	issuedAt := svc.now()
	setNow(issuedAt.Add(2 * time.Hour))

	_, ok := svc.Verify(token)
	require.False(t, ok)

	// Rolling the clock back must not resurrect the token: the failed
	// lookup already removed the entry.
	setNow(issuedAt)
	_, ok = svc.Verify(token)
	assert.False(t, ok)
}

func TestSessionService_Revoke(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)

	token, err := svc.Issue("admin")
	require.NoError(t, err)

	assert.True(t, svc.Revoke(token))

	_, ok := svc.Verify(token)
	assert.False(t, ok)

	// idempotent
	assert.False(t, svc.Revoke(token))
}

func TestSessionService_RevokeAll_OnlyNamedUser(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)

	adminOne, err := svc.Issue("admin")
	require.NoError(t, err)
	adminTwo, err := svc.Issue("admin")
	require.NoError(t, err)
	otherToken, err := svc.Issue("other")
	require.NoError(t, err)

	revoked := svc.RevokeAll("admin")
	assert.Equal(t, 2, revoked)

	_, ok := svc.Verify(adminOne)
	assert.False(t, ok)
	_, ok = svc.Verify(adminTwo)
	assert.False(t, ok)

	username, ok := svc.Verify(otherToken)
	assert.True(t, ok)
	assert.Equal(t, "other", username)
}

func TestSessionService_SweepExpired(t *testing.T) {
	svc, setNow := newTestSessionService(t, time.Hour)

	issuedAt := svc.now()

	expiredOne, err := svc.Issue("admin")
	require.NoError(t, err)
	expiredTwo, err := svc.Issue("other")
	require.NoError(t, err)

	setNow(issuedAt.Add(30 * time.Minute))
	liveToken, err := svc.Issue("admin")
	require.NoError(t, err)

	setNow(issuedAt.Add(90 * time.Minute))

	swept := svc.SweepExpired()
	assert.Equal(t, 2, swept)

	_, ok := svc.Verify(expiredOne)
	assert.False(t, ok)
	_, ok = svc.Verify(expiredTwo)
	assert.False(t, ok)

	_, ok = svc.Verify(liveToken)
	assert.True(t, ok)

	// nothing left to sweep
	assert.Zero(t, svc.SweepExpired())
}
