package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (name, total_days, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, leaveType.Name, leaveType.TotalDays).Scan(&leaveType.CreatedAt, &leaveType.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return leave.LeaveType{}, leave.ErrLeaveTypeExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return leaveType, nil
}

func (r *leaveTypeRepositoryImpl) GetByName(ctx context.Context, name string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	var t leave.LeaveType
	err := q.QueryRow(ctx, `
		SELECT name, total_days, created_at, updated_at
		FROM leave_types
		WHERE name = $1
	`, name).Scan(&t.Name, &t.TotalDays, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return t, nil
}

func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT name, total_days, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var t leave.LeaveType
		if err := rows.Scan(&t.Name, &t.TotalDays, &t.CreatedAt, &t.UpdatedAt); err != nil {
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
	q := GetQuerier(ctx, r.db)

	t := leave.LeaveType{Name: name, TotalDays: totalDays}
	err := q.QueryRow(ctx, `
		UPDATE leave_types
		SET total_days = $2, updated_at = NOW()
		WHERE name = $1
		RETURNING created_at, updated_at
	`, name, totalDays).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to update leave type: %w", err)
	}
	return t, nil
}

func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, name string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM leave_types
		WHERE name = $1
		  AND NOT EXISTS (SELECT 1 FROM leave_requests WHERE leave_type = $1)
	`, name)
	if err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.GetByName(ctx, name); err != nil {
		return err
	}
	return leave.ErrLeaveTypeInUse
}
