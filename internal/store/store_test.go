package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-memo/social-memo/internal/config"
	"github.com/social-memo/social-memo/internal/logger"
)

// newTestStorageConfig points every path at a per-test temp directory.
func newTestStorageConfig(t *testing.T) config.Storage {
	t.Helper()

	dir := t.TempDir()
	return config.Storage{
		DB:    config.DB{Path: filepath.Join(dir, "data", "social_memo.db")},
		Files: config.Files{UploadsDir: filepath.Join(dir, "uploads")},
	}
}

// newTestStore opens a fresh store with the full schema applied.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), newTestStorageConfig(t), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.EnsureSchema(context.Background()))

	return s
}

// scanCount adapts a single COUNT(*) scan to the QueryRow callback shape.
func scanCount(dst *int64) func(row *sql.Row) error {
	return func(row *sql.Row) error { return row.Scan(dst) }
}

func TestOpen_CreatesDirectoryTree(t *testing.T) {
	cfg := newTestStorageConfig(t)

	s, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.DirExists(t, filepath.Dir(cfg.DB.Path))
	for _, category := range []string{"", "avatars", "photos", "activities", "cards"} {
		assert.DirExists(t, filepath.Join(cfg.Files.UploadsDir, category))
	}
}

func TestOpen_StartsEmptyWithoutImage(t *testing.T) {
	cfg := newTestStorageConfig(t)

	s, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	// no image is written until the first mutation
	assert.NoFileExists(t, cfg.DB.Path)
}

func TestOpen_RejectsInvalidImage(t *testing.T) {
	cfg := newTestStorageConfig(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o755))
	require.NoError(t, os.WriteFile(cfg.DB.Path, []byte("this is not a database"), 0o644))

	_, err := Open(context.Background(), cfg, logger.Nop())

	assert.ErrorIs(t, err, ErrInvalidDatabaseImage)
}

func TestExec_FlushesEveryMutation(t *testing.T) {
	ctx := context.Background()
	cfg := newTestStorageConfig(t)

	s, err := Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.EnsureSchema(ctx))
	require.FileExists(t, cfg.DB.Path, "EnsureSchema must leave an image on disk")

	imageBefore, err := os.Stat(cfg.DB.Path)
	require.NoError(t, err)

	_, err = s.Exec(ctx, "INSERT INTO contacts (name, type) VALUES (?, ?)", "Alice", "friend")
	require.NoError(t, err)

	imageAfter, err := os.Stat(cfg.DB.Path)
	require.NoError(t, err)
	assert.False(t, imageAfter.ModTime().Before(imageBefore.ModTime()))
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := newTestStorageConfig(t)

	s, err := Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(ctx))

	_, err = s.Exec(ctx, "INSERT INTO contacts (name, type) VALUES (?, ?)", "Alice", "friend")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// a second process start loads the image back into memory
	reopened, err := Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	var count int64
	err = reopened.QueryRow(ctx, "SELECT COUNT(*) FROM contacts WHERE name = ?", []any{"Alice"}, func(row *sql.Row) error {
		return row.Scan(&count)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestQuery_DoesNotCreateImage(t *testing.T) {
	ctx := context.Background()
	cfg := newTestStorageConfig(t)

	s, err := Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	err = s.Query(ctx, "SELECT 1", nil, func(rows *sql.Rows) error { return nil })
	require.NoError(t, err)

	assert.NoFileExists(t, cfg.DB.Path)
}
