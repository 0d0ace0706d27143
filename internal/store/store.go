// Package store owns the embedded database: a single in-memory SQLite
// instance that is loaded wholesale from the configured file at startup and
// serialized back to it after every mutating statement.
//
// All access — reads, writes, and the flush itself — is serialized behind
// one mutex. The in-memory instance has no snapshot isolation: a flush
// captures whatever is currently in memory, so a mutation and its flush
// form one critical section.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-sqlite3"

	"github.com/social-memo/social-memo/internal/config"
	"github.com/social-memo/social-memo/internal/logger"
)

// memoryDSN keeps the whole database in process memory. Foreign keys are
// switched on so the ON DELETE CASCADE declarations in the schema fire.
const memoryDSN = "file::memory:?_foreign_keys=on"

// Store is the handle to the embedded database.
//
// The zero value is not usable; construct one with Open. Safe for
// concurrent use: every operation takes the store mutex.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
	log  *logger.Logger
}

// Open constructs the Store.
//
// It creates the database directory and the uploads directory tree when
// absent, opens a fresh in-memory SQLite instance, and — when a database
// file already exists at the configured path — copies its full contents
// into memory via the SQLite online-backup API.
//
// A file that exists but is not a valid database image yields
// [ErrInvalidDatabaseImage]; the caller is expected to treat that as fatal.
func Open(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Store, error) {
	if err := ensureDirectories(cfg); err != nil {
		log.Err(err).Msg("error creating storage directories")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		log.Err(err).Msg("error opening in-memory database")
		return nil, fmt.Errorf("error opening in-memory database: %w", err)
	}

	// A second connection would see a different, empty :memory: database.
	conn.SetMaxOpenConns(1)

	s := &Store{
		db:   conn,
		path: cfg.DB.Path,
		log:  log,
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := s.loadFromFile(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		log.Info().Str("path", s.path).Msg("database image loaded into memory")
	} else {
		log.Info().Str("path", s.path).Msg("no database image found, starting empty")
	}

	return s, nil
}

// ensureDirectories creates the database directory and the uploads
// directory tree (including asset-category subdirectories) on first run.
func ensureDirectories(cfg config.Storage) error {
	if dir := filepath.Dir(cfg.DB.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating database directory: %w", err)
		}
	}

	for _, category := range []string{"", "avatars", "photos", "activities", "cards"} {
		if err := os.MkdirAll(filepath.Join(cfg.Files.UploadsDir, category), 0o755); err != nil {
			return fmt.Errorf("error creating uploads directory: %w", err)
		}
	}

	return nil
}

// loadFromFile copies the on-disk database image into the in-memory
// instance using the SQLite online-backup API.
func (s *Store) loadFromFile(ctx context.Context) error {
	src, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", s.path))
	if err != nil {
		return fmt.Errorf("error opening database file: %w", err)
	}
	defer src.Close()

	srcConn, err := src.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDatabaseImage, err)
	}
	defer srcConn.Close()

	dstConn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("error acquiring in-memory connection: %w", err)
	}
	defer dstConn.Close()

	err = dstConn.Raw(func(dstRaw any) error {
		return srcConn.Raw(func(srcRaw any) error {
			dst, ok := dstRaw.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("unexpected destination driver connection type %T", dstRaw)
			}
			srcSQLite, ok := srcRaw.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("unexpected source driver connection type %T", srcRaw)
			}

			backup, err := dst.Backup("main", srcSQLite, "main")
			if err != nil {
				return err
			}
			defer backup.Finish()

			// Step(-1) copies every page in a single pass.
			done, err := backup.Step(-1)
			if err != nil {
				return err
			}
			if !done {
				return fmt.Errorf("backup did not complete")
			}

			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDatabaseImage, err)
	}

	return nil
}

// Exec executes a mutating statement and synchronously serializes the whole
// in-memory database to disk before returning.
//
// The returned sql.Result carries LastInsertId for INSERTs and RowsAffected
// for UPDATE/DELETE. A statement failure yields a wrapped
// [ErrExecutingStatement] and no flush happens; a flush failure yields a
// wrapped [ErrFlushFailed] with the mutation already applied in memory.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := s.flushLocked(ctx); err != nil {
		return nil, err
	}

	return res, nil
}

// Query executes a read-only statement and invokes scanRow once per result
// row. The result set is fully consumed before Query returns; scanRow must
// not retain the *sql.Rows. Never triggers a flush.
func (s *Store) Query(ctx context.Context, query string, args []any, scanRow func(rows *sql.Rows) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scanRow(rows); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// QueryRow executes a read-only statement expected to yield at most one row
// and passes that row to scan. Never triggers a flush.
func (s *Store) QueryRow(ctx context.Context, query string, args []any, scan func(row *sql.Row) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return scan(s.db.QueryRowContext(ctx, query, args...))
}

// Flush serializes the in-memory database to the configured file. Exposed
// for callers that batch several statements under their own logical
// operation; ordinary mutations flush automatically via Exec.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flushLocked(ctx)
}

// flushLocked writes the full database image to a temp file and atomically
// renames it over the target, so a crash mid-flush can never leave a torn
// file. Callers must hold s.mu.
func (s *Store) flushLocked(ctx context.Context) error {
	tmp := s.path + ".tmp"
	_ = os.Remove(tmp) // VACUUM INTO refuses to overwrite

	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", tmp); err != nil {
		return fmt.Errorf("%w: %w", ErrFlushFailed, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrFlushFailed, err)
	}

	return nil
}

// Close releases the in-memory database. It does not flush: every mutation
// has already been durably written by the time it returned.
func (s *Store) Close() error {
	return s.db.Close()
}
