package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/store"
	"github.com/social-memo/social-memo/internal/utils"
	"github.com/social-memo/social-memo/models"
)

// Default admin credentials, created at first startup when no account with
// that username exists. The password is expected to be rotated through the
// change-password endpoint afterwards.
const (
	DefaultAdminUsername = "admin"
	defaultAdminPassword = "social2024"
)

// authService is the concrete implementation of AuthService.
// It handles the default-admin bootstrap, credential verification, and
// password rotation using a UserRepository for persistence and salted
// PBKDF2-SHA512 for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up
	// user accounts.
	userRepository store.UserRepository

	// sessions issues tokens on login and revokes them on rotation.
	sessions SessionService

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given
// UserRepository and SessionService.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, sessions SessionService, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		sessions:       sessions,
		logger:         logger,
	}
}

// EnsureDefaultAdmin creates the default admin account if it is absent.
//
// The password hash is derived with a freshly generated random salt on
// every bootstrap, so two installations never share hash material even
// though they start from the same default password.
func (a *authService) EnsureDefaultAdmin(ctx context.Context) error {
	log := logger.FromContext(ctx)

	_, err := a.userRepository.FindUserByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("error checking for default admin: %w", err)
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return err
	}

	_, err = a.userRepository.CreateUser(ctx, models.User{
		Username:     DefaultAdminUsername,
		PasswordHash: utils.HashPassword(defaultAdminPassword, salt),
		PasswordSalt: salt,
	})
	if err != nil {
		return fmt.Errorf("error creating default admin: %w", err)
	}

	log.Info().Str("username", DefaultAdminUsername).Msg("default admin account created")

	return nil
}

// Login authenticates a user and issues a session token.
//
// Returns ErrInvalidCredentials when the username is unknown, the account
// is inactive, or the password does not verify — deliberately the same
// error value in all three cases. On success the user's last-login
// timestamp is refreshed before the token is returned.
func (a *authService) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("username", username).Msg("login attempt for unknown user")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("user search by username failed: %w", err)
	}

	if !user.IsActive {
		log.Warn().Str("username", username).Msg("login attempt for inactive user")
		return "", ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		log.Warn().Str("username", username).Msg("login attempt with wrong password")
		return "", ErrInvalidCredentials
	}

	token, err := a.sessions.Issue(user.Username)
	if err != nil {
		return "", err
	}

	if err := a.userRepository.UpdateLastLogin(ctx, user.UserID); err != nil {
		a.sessions.Revoke(token)
		return "", fmt.Errorf("error updating last login: %w", err)
	}

	log.Info().Str("username", username).Msg("user logged in")

	return token, nil
}

// ChangePassword rotates the user's credentials.
//
// The old password is re-verified first; a mismatch or an unknown username
// fails with ErrInvalidCredentials. On success a fresh salt is generated
// (salts are never reused across rotations), the new hash and salt are
// stored with a refreshed update timestamp, and every outstanding session
// of the user is revoked, forcing re-login everywhere.
func (a *authService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.VerifyPassword(oldPassword, user.PasswordSalt, user.PasswordHash) {
		log.Warn().Str("username", username).Msg("password change with wrong old password")
		return ErrInvalidCredentials
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return err
	}

	if err := a.userRepository.UpdateCredentials(ctx, user.UserID, utils.HashPassword(newPassword, salt), salt); err != nil {
		return fmt.Errorf("error storing rotated credentials: %w", err)
	}

	a.sessions.RevokeAll(username)
	log.Info().Str("username", username).Msg("password changed, all sessions revoked")

	return nil
}
