package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS leave_types (
		name        TEXT PRIMARY KEY,
		total_days  INTEGER NOT NULL CHECK (total_days >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS leave_requests (
		id          UUID PRIMARY KEY,
		username    TEXT NOT NULL,
		leave_type  TEXT NOT NULL,
		start_date  DATE NOT NULL,
		end_date    DATE NOT NULL,
		comments    TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
		decided_by  TEXT,
		decided_at  TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (start_date <= end_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_username ON leave_requests (username)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_leave_type ON leave_requests (leave_type)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_status_created ON leave_requests (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS departments (
		name        TEXT PRIMARY KEY,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS department_members (
		username    TEXT PRIMARY KEY,
		department  TEXT NOT NULL REFERENCES departments (name)
	)`,
	`CREATE TABLE IF NOT EXISTS department_managers (
		username    TEXT PRIMARY KEY,
		department  TEXT NOT NULL REFERENCES departments (name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_department_members_department ON department_members (department)`,
	`CREATE INDEX IF NOT EXISTS idx_department_managers_department ON department_managers (department)`,
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		for _, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}
