package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
)

type leaveTypeRepositoryImpl struct {
	db *DB
}

func NewLeaveTypeRepository(db *DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func scanLeaveType(row interface{ Scan(...interface{}) error }) (leave.LeaveType, error) {
	var (
		t                    leave.LeaveType
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.Name, &t.TotalDays, &createdAt, &updatedAt); err != nil {
		return leave.LeaveType{}, err
	}
	var err error
	if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return leave.LeaveType{}, fmt.Errorf("invalid created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return leave.LeaveType{}, fmt.Errorf("invalid updated_at: %w", err)
	}
	return t, nil
}

func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	ts := now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO leave_types (name, total_days, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, leaveType.Name, leaveType.TotalDays, ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveType{}, leave.ErrLeaveTypeExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return r.GetByName(ctx, leaveType.Name)
}

func (r *leaveTypeRepositoryImpl) GetByName(ctx context.Context, name string) (leave.LeaveType, error) {
	t, err := scanLeaveType(r.db.QueryRowContext(ctx, `
		SELECT name, total_days, created_at, updated_at FROM leave_types WHERE name = ?
	`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return t, nil
}

func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, total_days, created_at, updated_at FROM leave_types ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		t, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave types: %w", err)
	}
	return types, nil
}

func (r *leaveTypeRepositoryImpl) UpdateTotalDays(ctx context.Context, name string, totalDays int) (leave.LeaveType, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leave_types SET total_days = ?, updated_at = ? WHERE name = ?
	`, totalDays, now(), name)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to update leave type: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return r.GetByName(ctx, name)
}

func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM leave_types
		WHERE name = ?1
		  AND NOT EXISTS (SELECT 1 FROM leave_requests WHERE leave_type = ?1)
	`, name)
	if err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}
	if _, err := r.GetByName(ctx, name); err != nil {
		return err
	}
	return leave.ErrLeaveTypeInUse
}
