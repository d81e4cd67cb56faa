package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"golang.org/x/sync/errgroup"
)

// SummaryService resolves request scopes through the directory and feeds
// them to leave.Summarize.
type SummaryService struct {
	leaveTypeRepo leave.LeaveTypeRepository
	requestRepo   leave.LeaveRequestRepository
	directory     department.Directory
}

func NewSummaryService(
	leaveTypeRepo leave.LeaveTypeRepository,
	requestRepo leave.LeaveRequestRepository,
	directory department.Directory,
) *SummaryService {
	return &SummaryService{
		leaveTypeRepo: leaveTypeRepo,
		requestRepo:   requestRepo,
		directory:     directory,
	}
}

// ListRequests returns the requests matching query. A department narrows the
// owners to its current members.
func (s *SummaryService) ListRequests(ctx context.Context, query leave.ListLeaveRequestsQuery) ([]leave.LeaveRequest, error) {
	filter, err := s.filterFor(ctx, query)
	if err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

// Summarize aggregates the requests matching query against the registry.
func (s *SummaryService) Summarize(ctx context.Context, query leave.ListLeaveRequestsQuery) (leave.Summary, error) {
	filter, err := s.filterFor(ctx, query)
	if err != nil {
		return nil, err
	}
	requests, leaveTypes, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return leave.Summarize(requests, leaveTypes), nil
}

// ForUser summarizes one owner and lists every registry type, including the
// ones never requested.
func (s *SummaryService) ForUser(ctx context.Context, username string) (leave.Summary, error) {
	requests, leaveTypes, err := s.load(ctx, leave.LeaveRequestFilter{Username: username})
	if err != nil {
		return nil, err
	}
	return leave.Summarize(requests, leaveTypes).WithEntitlements(username, leaveTypes), nil
}

// load fetches the registry and the filtered requests concurrently.
func (s *SummaryService) load(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, []leave.LeaveType, error) {
	var (
		requests   []leave.LeaveRequest
		leaveTypes []leave.LeaveType
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		requests, err = s.requestRepo.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		leaveTypes, err = s.leaveTypeRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list leave types: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return requests, leaveTypes, nil
}

func (s *SummaryService) filterFor(ctx context.Context, query leave.ListLeaveRequestsQuery) (leave.LeaveRequestFilter, error) {
	if err := query.Validate(); err != nil {
		return leave.LeaveRequestFilter{}, err
	}

	filter := leave.LeaveRequestFilter{
		Username:  query.Username,
		LeaveType: query.LeaveType,
		Status:    query.StatusFilter(),
	}
	if query.Department != "" {
		members, err := s.directory.MembersOf(ctx, query.Department)
		if err != nil {
			return leave.LeaveRequestFilter{}, fmt.Errorf("failed to list department members: %w", err)
		}
		if members == nil {
			members = []string{}
		}
		filter.Usernames = members
	}
	return filter, nil
}

func (s *SummaryService) managedDepartment(ctx context.Context, managerUsername string) (string, error) {
	dept, err := s.directory.ManagerDepartment(ctx, managerUsername)
	if err != nil {
		if errors.Is(err, department.ErrManagerNotAssigned) {
			return "", err
		}
		return "", fmt.Errorf("failed to resolve manager department: %w", err)
	}
	return dept.Name, nil
}
