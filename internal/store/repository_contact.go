package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/models"
)

// contactColumns is the canonical column order every contact SELECT uses;
// scanContact must stay in sync with it.
var contactColumns = []string{
	"id", "name", "type", "relationship_level", "gender", "birthday",
	"phone", "email", "company", "position", "address", "tags", "notes",
	"avatar", "is_favorite", "group_id", "latitude", "longitude",
	"importance_score", "is_deleted", "deleted_at", "created_at", "updated_at",
}

// satellitePurgeOrder lists the tables referencing contacts via contact_id,
// in the order a permanent delete clears them. Leaf value tables go first;
// contact_relationships is handled separately because it carries two
// contact references.
var satellitePurgeOrder = []string{
	"custom_field_values",
	"contact_details",
	"social_interactions",
	"important_dates",
	"contact_photos",
	"activity_participants",
	"gifts",
	"reminders",
	"periodic_reminders",
	"loans",
	"communication_logs",
}

// contactRepository is the SQLite-backed implementation of
// [ContactRepository]. Deletion is two-staged: SoftDeleteContact keeps the
// row and all satellites, PurgeContact removes everything for good.
type contactRepository struct {
	store  *Store
	logger *logger.Logger
}

// NewContactRepository constructs a [ContactRepository] backed by the
// provided store and logger.
func NewContactRepository(s *Store, logger *logger.Logger) ContactRepository {
	logger.Debug().Msg("creating contact repository")
	return &contactRepository{
		store:  s,
		logger: logger,
	}
}

// CreateContact persists a new contact and returns it with its
// server-assigned fields populated.
func (r *contactRepository) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	builder := sq.Insert(contact.TableName()).
		Columns("name", "type", "relationship_level", "gender", "birthday",
			"phone", "email", "company", "position", "address", "tags",
			"notes", "avatar", "latitude", "longitude", "importance_score").
		Values(contact.Name, contact.Type, contact.RelationshipLevel,
			contact.Gender, contact.Birthday, contact.Phone, contact.Email,
			contact.Company, contact.Position, contact.Address, contact.Tags,
			contact.Notes, contact.Avatar, contact.Latitude,
			contact.Longitude, contact.ImportanceScore)

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.store.Exec(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("name", contact.Name).Msg("error creating contact")
		return models.Contact{}, err
	}

	contactID, err := res.LastInsertId()
	if err != nil {
		return models.Contact{}, fmt.Errorf("error reading created contact id: %w", err)
	}

	return r.GetContact(ctx, contactID)
}

// GetContact retrieves a contact by id, soft-deleted or not.
// Returns [ErrContactNotFound] when no row matches.
func (r *contactRepository) GetContact(ctx context.Context, id int64) (models.Contact, error) {
	query, args, err := sq.Select(contactColumns...).
		From(models.Contact{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var contact models.Contact
	err = r.store.QueryRow(ctx, query, args, func(row *sql.Row) error {
		return scanContactRow(row, &contact)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, ErrContactNotFound
		}

		return models.Contact{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return contact, nil
}

// ListContacts returns every contact that is not soft-deleted, newest
// first.
func (r *contactRepository) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return r.listWhere(ctx, sq.Eq{"is_deleted": 0})
}

// ListDeletedContacts returns the trash: every soft-deleted contact.
func (r *contactRepository) ListDeletedContacts(ctx context.Context) ([]models.Contact, error) {
	return r.listWhere(ctx, sq.Eq{"is_deleted": 1})
}

func (r *contactRepository) listWhere(ctx context.Context, cond sq.Eq) ([]models.Contact, error) {
	query, args, err := sq.Select(contactColumns...).
		From(models.Contact{}.TableName()).
		Where(cond).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	contacts := make([]models.Contact, 0)
	err = r.store.Query(ctx, query, args, func(rows *sql.Rows) error {
		var contact models.Contact
		if err := scanContactRows(rows, &contact); err != nil {
			return err
		}
		contacts = append(contacts, contact)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error listing contacts")
		return nil, err
	}

	return contacts, nil
}

// UpdateContact rewrites the mutable fields of a live contact and refreshes
// updated_at. Soft-deleted contacts cannot be updated; restore them first.
func (r *contactRepository) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	query, args, err := sq.Update(contact.TableName()).
		Set("name", contact.Name).
		Set("type", contact.Type).
		Set("relationship_level", contact.RelationshipLevel).
		Set("gender", contact.Gender).
		Set("birthday", contact.Birthday).
		Set("phone", contact.Phone).
		Set("email", contact.Email).
		Set("company", contact.Company).
		Set("position", contact.Position).
		Set("address", contact.Address).
		Set("tags", contact.Tags).
		Set("notes", contact.Notes).
		Set("latitude", contact.Latitude).
		Set("longitude", contact.Longitude).
		Set("importance_score", contact.ImportanceScore).
		Set("updated_at", sq.Expr("datetime('now')")).
		Where(sq.Eq{"id": contact.ID, "is_deleted": 0}).
		ToSql()
	if err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.store.Exec(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", contact.ID).Msg("error updating contact")
		return models.Contact{}, err
	}

	if affected, err := res.RowsAffected(); err != nil {
		return models.Contact{}, fmt.Errorf("error reading affected rows: %w", err)
	} else if affected == 0 {
		return models.Contact{}, ErrContactNotFound
	}

	return r.GetContact(ctx, contact.ID)
}

// SoftDeleteContact flags a live contact as deleted and stamps deleted_at.
// Satellite rows are untouched, so the contact is fully recoverable until
// PurgeContact.
func (r *contactRepository) SoftDeleteContact(ctx context.Context, id int64) error {
	query, args, err := sq.Update(models.Contact{}.TableName()).
		Set("is_deleted", 1).
		Set("deleted_at", sq.Expr("datetime('now')")).
		Where(sq.Eq{"id": id, "is_deleted": 0}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingMatch(ctx, query, args)
}

// RestoreContact clears the soft-delete flag of a trashed contact.
func (r *contactRepository) RestoreContact(ctx context.Context, id int64) error {
	query, args, err := sq.Update(models.Contact{}.TableName()).
		Set("is_deleted", 0).
		Set("deleted_at", nil).
		Where(sq.Eq{"id": id, "is_deleted": 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingMatch(ctx, query, args)
}

// execExpectingMatch runs a mutating statement that must touch exactly one
// contact row, converting a zero-row result into [ErrContactNotFound].
func (r *contactRepository) execExpectingMatch(ctx context.Context, query string, args []any) error {
	res, err := r.store.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return ErrContactNotFound
	}

	return nil
}

// PurgeContact permanently removes a trashed contact.
//
// Only soft-deleted contacts can be purged. The satellite rows are removed
// explicitly in dependency order before the contact row itself; the whole
// purge runs as one critical section with a single flush at the end.
func (r *contactRepository) PurgeContact(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	row := s.db.QueryRowContext(ctx, "SELECT is_deleted FROM contacts WHERE id = ?", id)
	if err := row.Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrContactNotFound
		}
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if deleted == 0 {
		return ErrContactNotFound
	}

	for _, table := range satellitePurgeOrder {
		stmt := fmt.Sprintf("DELETE FROM %s WHERE contact_id = ?", table)
		if _, err := s.db.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	const deleteRelationships = "DELETE FROM contact_relationships WHERE contact_id_1 = ? OR contact_id_2 = ?"
	if _, err := s.db.ExecContext(ctx, deleteRelationships, id, id); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().Int64("id", id).Msg("contact purged permanently")

	return s.flushLocked(ctx)
}

// scanContactRow scans a single-row lookup in contactColumns order.
func scanContactRow(row *sql.Row, dst *models.Contact) error {
	return scanContactFields(row.Scan, dst)
}

// scanContactRows scans the current row of a multi-row result set in
// contactColumns order.
func scanContactRows(rows *sql.Rows, dst *models.Contact) error {
	return scanContactFields(rows.Scan, dst)
}

// scanContactFields maps the nullable schema columns onto the plain fields
// of models.Contact.
func scanContactFields(scan func(dest ...any) error, dst *models.Contact) error {
	var (
		relationshipLevel, gender, birthday        sql.NullString
		phone, email, company, position, address   sql.NullString
		tags, notes, avatar, deletedAt             sql.NullString
		isFavorite, isDeleted, groupID, importance sql.NullInt64
		latitude, longitude                        sql.NullFloat64
	)

	err := scan(
		&dst.ID, &dst.Name, &dst.Type, &relationshipLevel, &gender,
		&birthday, &phone, &email, &company, &position, &address, &tags,
		&notes, &avatar, &isFavorite, &groupID, &latitude, &longitude,
		&importance, &isDeleted, &deletedAt, &dst.CreatedAt, &dst.UpdatedAt,
	)
	if err != nil {
		return err
	}

	dst.RelationshipLevel = relationshipLevel.String
	dst.Gender = gender.String
	dst.Birthday = birthday.String
	dst.Phone = phone.String
	dst.Email = email.String
	dst.Company = company.String
	dst.Position = position.String
	dst.Address = address.String
	dst.Tags = tags.String
	dst.Notes = notes.String
	dst.Avatar = avatar.String
	dst.DeletedAt = deletedAt.String
	dst.IsFavorite = isFavorite.Int64 != 0
	dst.IsDeleted = isDeleted.Int64 != 0
	dst.GroupID = groupID.Int64
	dst.ImportanceScore = importance.Int64
	dst.Latitude = latitude.Float64
	dst.Longitude = longitude.Float64

	return nil
}
