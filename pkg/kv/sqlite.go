package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`

// SQLite stores keys as rows of a single table. Batch runs inside one
// transaction.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating when needed) the database file at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("kv: ensure database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// One writer; sqlite serializes anyway and a shared :memory: database is
	// per-connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("kv: migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	return sqlSet(s.db, key, value)
}

func (s *SQLite) Remove(key string) error {
	return sqlRemove(s.db, key)
}

func (s *SQLite) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, length(?)) = ? ORDER BY key ASC`, prefix, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLite) Batch(fn func(w Writer) error) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(&sqlWriter{ex: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type sqlWriter struct {
	ex execer
}

func (w *sqlWriter) Set(key, value string) error { return sqlSet(w.ex, key, value) }

func (w *sqlWriter) Remove(key string) error { return sqlRemove(w.ex, key) }

func sqlSet(ex execer, key, value string) error {
	_, err := ex.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, value)
	return err
}

func sqlRemove(ex execer, key string) error {
	_, err := ex.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}
