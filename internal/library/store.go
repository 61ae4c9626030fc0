package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"lessonreel/internal/config"
)

// Store manages lesson task persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode   = 5
	busyAttempts     = 5
	busyFirstBackoff = 10 * time.Millisecond
	busyMaxBackoff   = 200 * time.Millisecond
)

// Pragmas ride on the DSN so every pooled connection gets them, not just the
// first one.
var connectionPragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

func dsn(path string) string {
	q := url.Values{}
	for _, pragma := range connectionPragmas {
		q.Add("_pragma", pragma)
	}
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

func isBusy(err error) bool {
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "database is locked")
}

// withBusyRetry runs op until it succeeds, fails with something other than
// SQLITE_BUSY, or the attempts run out. The backoff doubles up to a cap.
func withBusyRetry[T any](ctx context.Context, op func() (T, error)) (T, error) {
	backoff := busyFirstBackoff
	for attempt := 1; ; attempt++ {
		out, err := op()
		if err == nil || !isBusy(err) || attempt == busyAttempts {
			return out, err
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			var zero T
			return zero, ctx.Err()
		case <-timer.C:
		}
		backoff = min(backoff*2, busyMaxBackoff)
	}
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return withBusyRetry(ctx, func() (sql.Result, error) {
		return s.db.ExecContext(ctx, query, args...)
	})
}

// Open initializes or connects to the library database under the data dir.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.LibraryPath())
}

// OpenPath opens the database file at dbPath, creating the schema on first
// use.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open library %s: %w", dbPath, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open library %s: %w", dbPath, err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
