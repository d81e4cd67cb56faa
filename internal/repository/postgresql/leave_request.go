package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `id::text, username, leave_type, start_date, end_date, comments, status,
	decided_by, decided_at, created_at, updated_at`

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.Username,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Comments,
		&lr.Status,
		&lr.DecidedBy,
		&lr.DecidedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return requests, nil
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (
			id, username, leave_type, start_date, end_date, comments, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		id.String(), request.Username, request.LeaveType,
		request.StartDate, request.EndDate, request.Comments, request.Status,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgErrorCode(err) == pgInvalidTextRepr {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	if filter.Usernames != nil && len(filter.Usernames) == 0 {
		return []leave.LeaveRequest{}, nil
	}
	q := GetQuerier(ctx, r.db)

	var (
		where []string
		args  []interface{}
	)
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.Username != "" {
		add("username = $%d", filter.Username)
	}
	if filter.Usernames != nil {
		add("username = ANY($%d)", filter.Usernames)
	}
	if filter.LeaveType != "" {
		add("leave_type = $%d", filter.LeaveType)
	}
	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) ListOrphaned(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+leaveRequestColumns+`
		FROM leave_requests lr
		WHERE NOT EXISTS (SELECT 1 FROM leave_types lt WHERE lt.name = lr.leave_type)
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphaned leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

// classifyMiss explains why a conditional write matched no row.
func (r *leaveRequestRepositoryImpl) classifyMiss(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return leave.ErrRequestNotPending
}

func (r *leaveRequestRepositoryImpl) UpdateIfPending(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	updated, err := scanLeaveRequest(q.QueryRow(ctx, `
		UPDATE leave_requests
		SET leave_type = $2, start_date = $3, end_date = $4, comments = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+leaveRequestColumns,
		request.ID, request.LeaveType, request.StartDate, request.EndDate, request.Comments,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgErrorCode(err) == pgInvalidTextRepr {
			return leave.LeaveRequest{}, r.classifyMiss(ctx, request.ID)
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return updated, nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatusIfPending(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy string, decidedAt time.Time) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	updated, err := scanLeaveRequest(q.QueryRow(ctx, `
		UPDATE leave_requests
		SET status = $2, decided_by = $3, decided_at = $4, updated_at = $4
		WHERE id = $1 AND status = 'pending'
		RETURNING `+leaveRequestColumns,
		id, string(status), decidedBy, decidedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgErrorCode(err) == pgInvalidTextRepr {
			return leave.LeaveRequest{}, r.classifyMiss(ctx, id)
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}
	return updated, nil
}

func (r *leaveRequestRepositoryImpl) DeleteIfPending(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		if pgErrorCode(err) == pgInvalidTextRepr {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}
