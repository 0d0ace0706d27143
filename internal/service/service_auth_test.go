package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-memo/social-memo/internal/config"
	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/store"
	"github.com/social-memo/social-memo/internal/utils"
	"github.com/social-memo/social-memo/models"
)

// mockUserRepository is a function-field test double for [store.UserRepository].
type mockUserRepository struct {
	createUserFn         func(ctx context.Context, user models.User) (models.User, error)
	findUserByUsernameFn func(ctx context.Context, username string) (models.User, error)
	updateLastLoginFn    func(ctx context.Context, userID int64) error
	updateCredentialsFn  func(ctx context.Context, userID int64, passwordHash, passwordSalt string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUserFn(ctx, user)
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return m.findUserByUsernameFn(ctx, username)
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	return m.updateLastLoginFn(ctx, userID)
}

func (m *mockUserRepository) UpdateCredentials(ctx context.Context, userID int64, passwordHash, passwordSalt string) error {
	return m.updateCredentialsFn(ctx, userID, passwordHash, passwordSalt)
}

// newStoredUser builds a user fixture with real hash material so that
// password verification behaves exactly as in production.
func newStoredUser(t *testing.T, username, password string) models.User {
	t.Helper()

	salt, err := utils.GenerateSalt()
	require.NoError(t, err)

	return models.User{
		UserID:       1,
		Username:     username,
		PasswordHash: utils.HashPassword(password, salt),
		PasswordSalt: salt,
		IsActive:     true,
	}
}

func newTestAuthService(repo store.UserRepository) (AuthService, SessionService) {
	sessions := NewSessionService(config.App{SessionTTL: time.Hour}, logger.Nop())
	return NewAuthService(repo, sessions, logger.Nop()), sessions
}

// ---- EnsureDefaultAdmin ----

func TestEnsureDefaultAdmin_CreatesWhenMissing(t *testing.T) {
	var created models.User

	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			created = user
			return user, nil
		},
	}

	svc, _ := newTestAuthService(repo)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))

	assert.Equal(t, DefaultAdminUsername, created.Username)
	assert.NotEmpty(t, created.PasswordSalt)
	assert.True(t, utils.VerifyPassword(defaultAdminPassword, created.PasswordSalt, created.PasswordHash))
}

func TestEnsureDefaultAdmin_NoOpWhenPresent(t *testing.T) {
	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			return models.User{UserID: 1, Username: username}, nil
		},
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			t.Fatal("CreateUser must not be called when the admin already exists")
			return models.User{}, nil
		},
	}

	svc, _ := newTestAuthService(repo)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
}

func TestEnsureDefaultAdmin_SaltDiffersAcrossBootstraps(t *testing.T) {
	salts := make([]string, 0, 2)

	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			salts = append(salts, user.PasswordSalt)
			return user, nil
		},
	}

	svc, _ := newTestAuthService(repo)

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))

	require.Len(t, salts, 2)
	assert.NotEqual(t, salts[0], salts[1])
}

func TestEnsureDefaultAdmin_LookupErrorPropagates(t *testing.T) {
	lookupErr := errors.New("disk on fire")

	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, lookupErr
		},
	}

	svc, _ := newTestAuthService(repo)

	assert.ErrorIs(t, svc.EnsureDefaultAdmin(context.Background()), lookupErr)
}

// ---- Login ----

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	storedUser := newStoredUser(t, "admin", "social2024")
	inactiveUser := newStoredUser(t, "retired", "social2024")
	inactiveUser.IsActive = false

	tests := []struct {
		name     string
		username string
		password string
		findFn   func(ctx context.Context, username string) (models.User, error)
	}{
		{
			name:     "unknown user",
			username: "nobody",
			password: "social2024",
			findFn: func(_ context.Context, _ string) (models.User, error) {
				return models.User{}, store.ErrNoUserWasFound
			},
		},
		{
			name:     "inactive user",
			username: "retired",
			password: "social2024",
			findFn: func(_ context.Context, _ string) (models.User, error) {
				return inactiveUser, nil
			},
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "guess",
			findFn: func(_ context.Context, _ string) (models.User, error) {
				return storedUser, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{findUserByUsernameFn: tt.findFn}
			svc, _ := newTestAuthService(repo)

			token, err := svc.Login(context.Background(), tt.username, tt.password)

			// same error value in every case, so callers cannot
			// enumerate accounts
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, token)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	storedUser := newStoredUser(t, "admin", "social2024")
	lastLoginUpdated := false

	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return storedUser, nil
		},
		updateLastLoginFn: func(_ context.Context, userID int64) error {
			assert.Equal(t, storedUser.UserID, userID)
			lastLoginUpdated = true
			return nil
		},
	}

	svc, sessions := newTestAuthService(repo)

	token, err := svc.Login(context.Background(), "admin", "social2024")

	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, lastLoginUpdated)

	username, ok := sessions.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, "admin", username)
}

func TestLogin_LastLoginFailureRevokesToken(t *testing.T) {
	storedUser := newStoredUser(t, "admin", "social2024")

	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return storedUser, nil
		},
		updateLastLoginFn: func(_ context.Context, _ int64) error {
			return errors.New("write failed")
		},
	}

	svc, sessions := newTestAuthService(repo)

	token, err := svc.Login(context.Background(), "admin", "social2024")

	require.Error(t, err)
	assert.Empty(t, token)

	// no orphaned session may survive the failed login
	assert.Zero(t, sessions.RevokeAll("admin"))
}

// ---- ChangePassword ----

func TestChangePassword_TooShort(t *testing.T) {
	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			t.Fatal("lookup must not happen for a too-short password")
			return models.User{}, nil
		},
	}

	svc, _ := newTestAuthService(repo)

	err := svc.ChangePassword(context.Background(), "admin", "social2024", "short")

	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	storedUser := newStoredUser(t, "admin", "social2024")

	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return storedUser, nil
		},
	}

	svc, _ := newTestAuthService(repo)

	err := svc.ChangePassword(context.Background(), "admin", "not-the-password", "new-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword_RotatesSaltAndRevokesSessions(t *testing.T) {
	storedUser := newStoredUser(t, "admin", "social2024")

	var rotatedHash, rotatedSalt string
	repo := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return storedUser, nil
		},
		updateLastLoginFn: func(_ context.Context, _ int64) error { return nil },
		updateCredentialsFn: func(_ context.Context, userID int64, passwordHash, passwordSalt string) error {
			assert.Equal(t, storedUser.UserID, userID)
			rotatedHash = passwordHash
			rotatedSalt = passwordSalt
			return nil
		},
	}

	svc, sessions := newTestAuthService(repo)

	tokenOne, err := svc.Login(context.Background(), "admin", "social2024")
	require.NoError(t, err)
	tokenTwo, err := svc.Login(context.Background(), "admin", "social2024")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), "admin", "social2024", "brand-new-password"))

	assert.NotEqual(t, storedUser.PasswordSalt, rotatedSalt, "rotation must generate a fresh salt")
	assert.True(t, utils.VerifyPassword("brand-new-password", rotatedSalt, rotatedHash))

	// every outstanding session of the user is gone
	_, ok := sessions.Verify(tokenOne)
	assert.False(t, ok)
	_, ok = sessions.Verify(tokenTwo)
	assert.False(t, ok)
}
