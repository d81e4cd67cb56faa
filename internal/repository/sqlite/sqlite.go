// Package sqlite stores leave data in an embedded SQLite database
// (DB_DRIVER=sqlite). Timestamps are kept as fixed-width UTC text so that
// lexical order matches chronological order.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000000000Z"
	dateLayout      = "2006-01-02"
)

type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serialises writers and keeps a :memory: database alive.
	db.SetMaxOpenConns(1)

	store := &DB{DB: db}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (db *DB) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS leave_types (
		name TEXT PRIMARY KEY,
		total_days INTEGER NOT NULL CHECK (total_days >= 0),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		comments TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
		decided_by TEXT,
		decided_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK (start_date <= end_date)
	);

	CREATE INDEX IF NOT EXISTS idx_leave_requests_username ON leave_requests(username);
	CREATE INDEX IF NOT EXISTS idx_leave_requests_leave_type ON leave_requests(leave_type);
	CREATE INDEX IF NOT EXISTS idx_leave_requests_status_created ON leave_requests(status, created_at DESC);

	CREATE TABLE IF NOT EXISTS departments (
		name TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS department_members (
		username TEXT PRIMARY KEY,
		department TEXT NOT NULL REFERENCES departments(name)
	);

	CREATE TABLE IF NOT EXISTS department_managers (
		username TEXT PRIMARY KEY,
		department TEXT NOT NULL REFERENCES departments(name)
	);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func constraintCode(err error) sqlite3.ErrNoExtended {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return sqliteErr.ExtendedCode
	}
	return 0
}

func isUniqueViolation(err error) bool {
	code := constraintCode(err)
	return code == sqlite3.ErrConstraintUnique || code == sqlite3.ErrConstraintPrimaryKey
}

func isForeignKeyViolation(err error) bool {
	return constraintCode(err) == sqlite3.ErrConstraintForeignKey
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

func now() string {
	return formatTimestamp(time.Now())
}
