package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

const leaveRequestColumns = `id, username, leave_type, start_date, end_date, comments, status,
	decided_by, decided_at, created_at, updated_at`

type leaveRequestRepositoryImpl struct {
	db *DB
}

func NewLeaveRequestRepository(db *DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

func scanLeaveRequest(row interface{ Scan(...interface{}) error }) (leave.LeaveRequest, error) {
	var (
		lr                   leave.LeaveRequest
		start, end           string
		decidedAt            sql.NullString
		decidedBy            sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&lr.ID,
		&lr.Username,
		&lr.LeaveType,
		&start,
		&end,
		&lr.Comments,
		&lr.Status,
		&decidedBy,
		&decidedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if lr.StartDate, err = time.Parse(dateLayout, start); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("invalid start_date: %w", err)
	}
	if lr.EndDate, err = time.Parse(dateLayout, end); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if lr.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("invalid created_at: %w", err)
	}
	if lr.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("invalid updated_at: %w", err)
	}
	if decidedBy.Valid {
		lr.DecidedBy = &decidedBy.String
	}
	if decidedAt.Valid {
		t, err := parseTimestamp(decidedAt.String)
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("invalid decided_at: %w", err)
		}
		lr.DecidedAt = &t
	}
	return lr, nil
}

func collectLeaveRequests(rows *sql.Rows) ([]leave.LeaveRequest, error) {
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
	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	ts := now()
	created, err := scanLeaveRequest(r.db.QueryRowContext(ctx, `
		INSERT INTO leave_requests (id, username, leave_type, start_date, end_date, comments, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+leaveRequestColumns,
		id.String(), request.Username, request.LeaveType,
		request.StartDate.Format(dateLayout), request.EndDate.Format(dateLayout),
		request.Comments, string(request.Status), ts, ts,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	lr, err := scanLeaveRequest(r.db.QueryRowContext(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	var (
		where []string
		args  []interface{}
	)
	if filter.Username != "" {
		where = append(where, "username = ?")
		args = append(args, filter.Username)
	}
	if filter.Usernames != nil {
		where = append(where, "username IN (?"+strings.Repeat(", ?", len(filter.Usernames)-1)+")")
		for _, u := range filter.Usernames {
			args = append(args, u)
		}
	}
	if filter.LeaveType != "" {
		where = append(where, "leave_type = ?")
		args = append(args, filter.LeaveType)
	}
	if filter.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*filter.Status))
	}

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) ListOrphaned(ctx context.Context) ([]leave.LeaveRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
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

func (r *leaveRequestRepositoryImpl) classifyMiss(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return leave.ErrRequestNotPending
}

func (r *leaveRequestRepositoryImpl) UpdateIfPending(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	updated, err := scanLeaveRequest(r.db.QueryRowContext(ctx, `
		UPDATE leave_requests
		SET leave_type = ?, start_date = ?, end_date = ?, comments = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'
		RETURNING `+leaveRequestColumns,
		request.LeaveType, request.StartDate.Format(dateLayout), request.EndDate.Format(dateLayout),
		request.Comments, now(), request.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leave.LeaveRequest{}, r.classifyMiss(ctx, request.ID)
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return updated, nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatusIfPending(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy string, decidedAt time.Time) (leave.LeaveRequest, error) {
	ts := formatTimestamp(decidedAt)
	updated, err := scanLeaveRequest(r.db.QueryRowContext(ctx, `
		UPDATE leave_requests
		SET status = ?, decided_by = ?, decided_at = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'
		RETURNING `+leaveRequestColumns,
		string(status), decidedBy, ts, ts, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leave.LeaveRequest{}, r.classifyMiss(ctx, id)
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}
	return updated, nil
}

func (r *leaveRequestRepositoryImpl) DeleteIfPending(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leave_requests WHERE id = ? AND status = 'pending'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}
