package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/models"
)

// userColumns is the canonical column order every user SELECT uses; scanUser
// must stay in sync with it.
var userColumns = []string{
	"id", "username", "password_hash", "password_salt",
	"is_active", "last_login", "created_at", "updated_at",
}

// userRepository is the SQLite-backed implementation of [UserRepository].
// It handles account creation, lookup, and credential rotation against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	store  *Store
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// store and logger.
func NewUserRepository(s *Store, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		store:  s,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with its server-assigned fields (UserID, timestamps).
//
// Error handling:
//   - unique-constraint violation on username → [ErrUsernameAlreadyExists].
//   - Any other execution error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert(user.TableName()).
		Columns("username", "password_hash", "password_salt").
		Values(user.Username, user.PasswordHash, user.PasswordSalt).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.store.Exec(ctx, query, args...)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.User{}, ErrUsernameAlreadyExists
		}

		log.Err(err).Str("username", user.Username).Msg("error creating user")
		return models.User{}, err
	}

	userID, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("error reading created user id: %w", err)
	}

	user.UserID = userID
	return r.FindUserByUsername(ctx, user.Username)
}

// FindUserByUsername retrieves the user record whose username matches.
// Inactive accounts are returned as well; deciding what an inactive account
// may do is the service layer's concern.
//
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.store.QueryRow(ctx, query, args, func(row *sql.Row) error {
		return scanUser(row, &user)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("username", username).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdateLastLogin stamps the user's last_login with the current time.
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	query, args, err := sq.Update(models.User{}.TableName()).
		Set("last_login", sq.Expr("datetime('now')")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.store.Exec(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", userID).Msg("error updating last login")
		return err
	}

	return nil
}

// UpdateCredentials replaces the stored hash and salt for the user and
// refreshes updated_at. The caller is responsible for revoking the user's
// outstanding sessions afterwards.
func (r *userRepository) UpdateCredentials(ctx context.Context, userID int64, passwordHash, passwordSalt string) error {
	query, args, err := sq.Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Set("password_salt", passwordSalt).
		Set("updated_at", sq.Expr("datetime('now')")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.store.Exec(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", userID).Msg("error updating credentials")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// scanUser scans a user row in userColumns order into dst.
func scanUser(row *sql.Row, dst *models.User) error {
	var (
		isActive  int64
		lastLogin sql.NullString
	)

	err := row.Scan(
		&dst.UserID, &dst.Username, &dst.PasswordHash, &dst.PasswordSalt,
		&isActive, &lastLogin, &dst.CreatedAt, &dst.UpdatedAt,
	)
	if err != nil {
		return err
	}

	dst.IsActive = isActive != 0
	dst.LastLogin = lastLogin.String

	return nil
}
