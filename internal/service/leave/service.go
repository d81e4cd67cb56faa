package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leaveTypeRepo  leave.LeaveTypeRepository
	requestRepo    leave.LeaveRequestRepository
	requestService *RequestService
	summaryService *SummaryService
}

func NewLeaveService(
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	directory department.Directory,
	notifier notification.Service,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveTypeRepo:  leaveTypeRepo,
		requestRepo:    leaveRequestRepo,
		requestService: NewRequestService(leaveTypeRepo, leaveRequestRepo, directory, notifier),
		summaryService: NewSummaryService(leaveTypeRepo, leaveRequestRepo, directory),
	}
}

// CreateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	leaveType, err := l.leaveTypeRepo.Create(ctx, leave.LeaveType{Name: req.Name, TotalDays: req.TotalDays})
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeExists) {
			return leave.LeaveType{}, err
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	slog.InfoContext(ctx, "leave type created", "leave_type", leaveType.Name, "total_days", leaveType.TotalDays)
	return leaveType, nil
}

// UpdateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateLeaveType(ctx context.Context, name string, req leave.UpdateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	leaveType, err := l.leaveTypeRepo.UpdateTotalDays(ctx, name, *req.TotalDays)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return leave.LeaveType{}, err
		}
		return leave.LeaveType{}, fmt.Errorf("failed to update leave type: %w", err)
	}

	slog.InfoContext(ctx, "leave type updated", "leave_type", leaveType.Name, "total_days", leaveType.TotalDays)
	return leaveType, nil
}

// GetLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveType(ctx context.Context, name string) (leave.LeaveType, error) {
	leaveType, err := l.leaveTypeRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return leave.LeaveType{}, err
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return leaveType, nil
}

// Entitlement implements leave.LeaveService.
func (l *LeaveServiceImpl) Entitlement(ctx context.Context, name string) (int, error) {
	leaveType, err := l.GetLeaveType(ctx, name)
	if err != nil {
		return 0, err
	}
	return leaveType.TotalDays, nil
}

// ListLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	leaveTypes, err := l.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return leaveTypes, nil
}

// DeleteLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, name string) error {
	if err := l.leaveTypeRepo.Delete(ctx, name); err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) || errors.Is(err, leave.ErrLeaveTypeInUse) {
			return err
		}
		return fmt.Errorf("failed to delete leave type: %w", err)
	}

	slog.InfoContext(ctx, "leave type deleted", "leave_type", name)
	return nil
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, username string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	return l.requestService.Create(ctx, username, req)
}

// EditLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) EditLeaveRequest(ctx context.Context, id string, username string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	return l.requestService.Edit(ctx, id, username, req)
}

// DeleteLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteLeaveRequest(ctx context.Context, id string, username string) error {
	return l.requestService.Delete(ctx, id, username)
}

// DecideLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DecideLeaveRequest(ctx context.Context, id string, managerUsername string, decision leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	return l.requestService.Decide(ctx, id, managerUsername, decision)
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, actor user.Identity, id string) (leave.LeaveRequest, error) {
	return l.requestService.Get(ctx, actor, id)
}

// ListMyLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeaveRequests(ctx context.Context, username string, query leave.ListLeaveRequestsQuery) ([]leave.LeaveRequest, error) {
	query.Username = username
	query.Department = ""
	return l.summaryService.ListRequests(ctx, query)
}

// ListDepartmentLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListDepartmentLeaveRequests(ctx context.Context, managerUsername string, query leave.ListLeaveRequestsQuery) ([]leave.LeaveRequest, error) {
	dept, err := l.summaryService.managedDepartment(ctx, managerUsername)
	if err != nil {
		return nil, err
	}
	query.Department = dept
	return l.summaryService.ListRequests(ctx, query)
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, query leave.ListLeaveRequestsQuery) ([]leave.LeaveRequest, error) {
	return l.summaryService.ListRequests(ctx, query)
}

// SummarizeForUser implements leave.LeaveService.
func (l *LeaveServiceImpl) SummarizeForUser(ctx context.Context, username string) (leave.Summary, error) {
	return l.summaryService.ForUser(ctx, username)
}

// SummarizeForDepartment implements leave.LeaveService.
func (l *LeaveServiceImpl) SummarizeForDepartment(ctx context.Context, departmentName string) (leave.Summary, error) {
	return l.summaryService.Summarize(ctx, leave.ListLeaveRequestsQuery{Department: departmentName})
}

// SummarizeForManager implements leave.LeaveService.
func (l *LeaveServiceImpl) SummarizeForManager(ctx context.Context, managerUsername string) (string, leave.Summary, error) {
	dept, err := l.summaryService.managedDepartment(ctx, managerUsername)
	if err != nil {
		return "", nil, err
	}
	summary, err := l.SummarizeForDepartment(ctx, dept)
	if err != nil {
		return "", nil, err
	}
	return dept, summary, nil
}

// Summarize implements leave.LeaveService.
func (l *LeaveServiceImpl) Summarize(ctx context.Context, query leave.ListLeaveRequestsQuery) (leave.Summary, error) {
	return l.summaryService.Summarize(ctx, query)
}

// FindOrphanedRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) FindOrphanedRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	orphans, err := l.requestRepo.ListOrphaned(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphaned leave requests: %w", err)
	}
	return orphans, nil
}
