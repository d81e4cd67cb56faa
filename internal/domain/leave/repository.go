package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByName(ctx context.Context, name string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	UpdateTotalDays(ctx context.Context, name string, totalDays int) (LeaveType, error)
	// Delete returns ErrLeaveTypeInUse while any leave request references name.
	Delete(ctx context.Context, name string) error
}

// LeaveRequestRepository - interface for leave_requests table.
//
// The *IfPending methods are conditional writes: they only touch a row whose
// status is still pending and return ErrRequestNotPending when it is not, or
// ErrLeaveRequestNotFound when the row does not exist.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	ListOrphaned(ctx context.Context) ([]LeaveRequest, error)

	UpdateIfPending(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	UpdateStatusIfPending(ctx context.Context, id string, status LeaveRequestStatus, decidedBy string, decidedAt time.Time) (LeaveRequest, error)
	DeleteIfPending(ctx context.Context, id string) error
}
