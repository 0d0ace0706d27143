package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-memo/social-memo/internal/logger"
)

func countRows(t *testing.T, s *Store, table string) int64 {
	t.Helper()

	var count int64
	err := s.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table, nil, func(row *sql.Row) error {
		return row.Scan(&count)
	})
	require.NoError(t, err)

	return count
}

func TestEnsureSchema_SeedsReferenceData(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, int64(8), countRows(t, s, "holidays"))
	assert.Equal(t, int64(6), countRows(t, s, "message_templates"))
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx))

	assert.Equal(t, int64(8), countRows(t, s, "holidays"))
	assert.Equal(t, int64(6), countRows(t, s, "message_templates"))
}

func TestEnsureSchema_DoesNotResurrectDeletedSeeds(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Exec(ctx, "DELETE FROM holidays WHERE name = ?", "New Year's Day")
	require.NoError(t, err)
	require.Equal(t, int64(7), countRows(t, s, "holidays"))

	// seeds only fill an empty table; user deletions stay deleted
	require.NoError(t, s.EnsureSchema(ctx))
	assert.Equal(t, int64(7), countRows(t, s, "holidays"))
}

func TestEnsureSchema_AppliesContactMigrations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range contactMigrations {
		exists, err := s.columnExistsLocked(ctx, "contacts", m.column)
		require.NoError(t, err)
		assert.True(t, exists, "contacts.%s must exist after EnsureSchema", m.column)
	}
}

func TestEnsureSchema_MigratesLegacyContactsTable(t *testing.T) {
	ctx := context.Background()
	cfg := newTestStorageConfig(t)

	s, err := Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	// a first-release contacts table without the later columns
	_, err = s.Exec(ctx, `CREATE TABLE contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		type TEXT NOT NULL
	)`)
	require.NoError(t, err)

	require.NoError(t, s.EnsureSchema(ctx))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, column := range []string{"is_deleted", "deleted_at", "latitude", "longitude", "importance_score"} {
		exists, err := s.columnExistsLocked(ctx, "contacts", column)
		require.NoError(t, err)
		assert.True(t, exists, "contacts.%s must be added by migration", column)
	}
}

func TestEnsureSchema_CreatesUsersTable(t *testing.T) {
	s := newTestStore(t)

	assert.Zero(t, countRows(t, s, "users"))
}
