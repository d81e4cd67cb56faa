package leave

import (
	"context"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
)

type LeaveService interface {
	// Type
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	UpdateLeaveType(ctx context.Context, name string, req UpdateLeaveTypeRequest) (LeaveType, error)
	GetLeaveType(ctx context.Context, name string) (LeaveType, error)
	Entitlement(ctx context.Context, name string) (int, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveType, error)
	DeleteLeaveType(ctx context.Context, name string) error

	// Request
	CreateLeaveRequest(ctx context.Context, username string, req CreateLeaveRequestRequest) (LeaveRequest, error)
	EditLeaveRequest(ctx context.Context, id string, username string, req UpdateLeaveRequestRequest) (LeaveRequest, error)
	DeleteLeaveRequest(ctx context.Context, id string, username string) error
	DecideLeaveRequest(ctx context.Context, id string, managerUsername string, decision LeaveRequestStatus) (LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, actor user.Identity, id string) (LeaveRequest, error)
	ListMyLeaveRequests(ctx context.Context, username string, query ListLeaveRequestsQuery) ([]LeaveRequest, error)
	ListDepartmentLeaveRequests(ctx context.Context, managerUsername string, query ListLeaveRequestsQuery) ([]LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, query ListLeaveRequestsQuery) ([]LeaveRequest, error)

	// Summary
	SummarizeForUser(ctx context.Context, username string) (Summary, error)
	SummarizeForDepartment(ctx context.Context, department string) (Summary, error)
	SummarizeForManager(ctx context.Context, managerUsername string) (string, Summary, error)
	Summarize(ctx context.Context, query ListLeaveRequestsQuery) (Summary, error)

	// Maintenance
	FindOrphanedRequests(ctx context.Context) ([]LeaveRequest, error)
}
