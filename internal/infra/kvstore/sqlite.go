package kvstore

import (
	"context"
	"database/sql"
	"embed"
	"os"
	"path/filepath"
	"strings"

	"aliascore/internal/domain/repository"
	"aliascore/internal/errors"

	_ "github.com/mattn/go-sqlite3" // database/sql driver "sqlite3"
)

//go:embed schema.sql
var embeddedSchema embed.FS

// SQLiteStore keeps entries in a single sqlite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create sqlite directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	store := NewSQLite(db)
	if err := store.InitSchema(); err != nil {
		_ = db.Close()

		return nil, err
	}

	return store, nil
}

// NewSQLite wraps an open database. Call InitSchema before use.
func NewSQLite(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InitSchema creates the entries table if needed.
func (s *SQLiteStore) InitSchema() error {
	b, err := embeddedSchema.ReadFile("schema.sql")
	if err != nil {
		return errors.Wrap(err, "failed to read sqlite schema")
	}

	if _, err := s.db.Exec(strings.TrimSpace(string(b))); err != nil {
		return errors.Wrap(err, "failed to apply sqlite schema")
	}

	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to get %s", key)
	}

	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO kv_entries(key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, value)
	if err != nil {
		return errors.Wrapf(err, "failed to set %s", key)
	}

	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "failed to delete %s", key)
	}

	return nil
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return errors.Wrap(s.db.PingContext(ctx), "failed to ping sqlite")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ repository.KeyValueStore = (*SQLiteStore)(nil)
