package store

import (
	"context"
	"fmt"
)

// createTableStatements is the full fixed relation set, contacts first.
// Every satellite table references contacts (activities being the one
// indirection) with ON DELETE CASCADE, so a hard delete of a contact row
// takes its satellites with it.
var createTableStatements = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		relationship_level TEXT DEFAULT 'normal',
		gender TEXT DEFAULT 'unknown',
		birthday TEXT,
		age INTEGER,
		phone TEXT,
		email TEXT,
		wechat TEXT,
		qq TEXT,
		company TEXT,
		position TEXT,
		address TEXT,
		hometown TEXT,
		tags TEXT,
		notes TEXT,
		avatar TEXT,
		is_favorite INTEGER DEFAULT 0,
		is_pinned INTEGER DEFAULT 0,
		group_id INTEGER,
		pinyin TEXT,
		last_contact_date TEXT,
		latitude REAL,
		longitude REAL,
		contact_frequency INTEGER DEFAULT 0,
		importance_score INTEGER DEFAULT 50,
		is_deleted INTEGER DEFAULT 0,
		deleted_at TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contact_details (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		category TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS social_interactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		interaction_date TEXT NOT NULL,
		interaction_type TEXT,
		location TEXT,
		notes TEXT,
		follow_up_needed INTEGER DEFAULT 0,
		follow_up_date TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS important_dates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		date_name TEXT NOT NULL,
		date_value TEXT NOT NULL,
		remind_before_days INTEGER DEFAULT 7,
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS contact_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		color TEXT DEFAULT '#1890ff',
		description TEXT,
		sort_order INTEGER DEFAULT 0,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contact_photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		filename TEXT NOT NULL,
		original_name TEXT,
		description TEXT,
		taken_at TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		activity_date TEXT NOT NULL,
		location TEXT,
		activity_type TEXT,
		cover_photo TEXT,
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS activity_participants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		activity_id INTEGER NOT NULL,
		contact_id INTEGER NOT NULL,
		role TEXT,
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (activity_id) REFERENCES activities(id) ON DELETE CASCADE,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS activity_photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		activity_id INTEGER NOT NULL,
		filename TEXT NOT NULL,
		original_name TEXT,
		description TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (activity_id) REFERENCES activities(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS gifts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		gift_type TEXT NOT NULL,
		gift_name TEXT NOT NULL,
		gift_date TEXT NOT NULL,
		value REAL,
		occasion TEXT,
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT UNIQUE NOT NULL,
		value TEXT,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS reminders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER,
		reminder_type TEXT NOT NULL,
		title TEXT NOT NULL,
		reminder_date TEXT NOT NULL,
		is_read INTEGER DEFAULT 0,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS contact_relationships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id_1 INTEGER NOT NULL,
		contact_id_2 INTEGER NOT NULL,
		relationship_type TEXT NOT NULL,
		description TEXT,
		strength INTEGER DEFAULT 50,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id_1) REFERENCES contacts(id) ON DELETE CASCADE,
		FOREIGN KEY (contact_id_2) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS periodic_reminders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		frequency_days INTEGER NOT NULL,
		last_reminded_at TEXT,
		is_active INTEGER DEFAULT 1,
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS holidays (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		date_type TEXT NOT NULL,
		month INTEGER,
		day INTEGER,
		lunar_month INTEGER,
		lunar_day INTEGER,
		remind_before_days INTEGER DEFAULT 3,
		greeting_template TEXT,
		is_active INTEGER DEFAULT 1,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS message_templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		content TEXT NOT NULL,
		variables TEXT,
		is_active INTEGER DEFAULT 1,
		usage_count INTEGER DEFAULT 0,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		loan_type TEXT NOT NULL,
		item_name TEXT NOT NULL,
		amount REAL,
		loan_date TEXT NOT NULL,
		due_date TEXT,
		return_date TEXT,
		status TEXT DEFAULT 'pending',
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS communication_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		comm_type TEXT NOT NULL,
		comm_date TEXT NOT NULL,
		duration INTEGER,
		summary TEXT,
		mood TEXT,
		important_points TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS custom_field_definitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		field_name TEXT NOT NULL,
		field_label TEXT NOT NULL,
		field_type TEXT NOT NULL,
		options TEXT,
		is_required INTEGER DEFAULT 0,
		sort_order INTEGER DEFAULT 0,
		is_active INTEGER DEFAULT 1,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS custom_field_values (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		field_id INTEGER NOT NULL,
		field_value TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE,
		FOREIGN KEY (field_id) REFERENCES custom_field_definitions(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS operation_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		operation_type TEXT NOT NULL,
		target_type TEXT NOT NULL,
		target_id INTEGER,
		target_name TEXT,
		old_value TEXT,
		new_value TEXT,
		description TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		password_salt TEXT NOT NULL,
		is_active INTEGER DEFAULT 1,
		last_login TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
}

// contactMigrations lists the columns the contacts relation gained after
// the initial release. Each is added only when a schema inspection shows it
// missing, so EnsureSchema stays idempotent without a migration-version
// table and without masking unrelated SQL failures behind a catch-all.
var contactMigrations = []struct {
	column     string
	definition string
}{
	{"is_deleted", "INTEGER DEFAULT 0"},
	{"deleted_at", "TEXT"},
	{"latitude", "REAL"},
	{"longitude", "REAL"},
	{"contact_frequency", "INTEGER DEFAULT 0"},
	{"importance_score", "INTEGER DEFAULT 50"},
	{"last_contact_date", "TEXT"},
}

// EnsureSchema creates every relation, applies the additive contact-column
// migrations, and seeds the holiday and message-template reference data.
//
// Safe to call any number of times: tables are created with IF NOT EXISTS,
// columns are added only when absent, and seeds are inserted only into
// empty tables, so user edits or deletions of seed rows are never
// re-introduced.
//
// The whole pass runs as one critical section and is flushed to disk once
// at the end.
func (s *Store) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ddl := range createTableStatements {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	for _, m := range contactMigrations {
		exists, err := s.columnExistsLocked(ctx, "contacts", m.column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		alter := fmt.Sprintf("ALTER TABLE contacts ADD COLUMN %s %s", m.column, m.definition)
		if _, err := s.db.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		s.log.Debug().Str("column", m.column).Msg("added contacts column")
	}

	if err := s.seedHolidaysLocked(ctx); err != nil {
		return err
	}
	if err := s.seedTemplatesLocked(ctx); err != nil {
		return err
	}

	return s.flushLocked(ctx)
}

// columnExistsLocked inspects the schema metadata for the given table and
// reports whether the column is already declared. Callers must hold s.mu.
func (s *Store) columnExistsLocked(ctx context.Context, table, column string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int64
			name       string
			colType    string
			notNull    int64
			defaultVal any
			primaryKey int64
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &primaryKey); err != nil {
			return false, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if name == column {
			return true, nil
		}
	}

	return false, rows.Err()
}

// tableEmptyLocked reports whether the given table currently has no rows.
// Callers must hold s.mu.
func (s *Store) tableEmptyLocked(ctx context.Context, table string) (bool, error) {
	var count int64
	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count == 0, nil
}
