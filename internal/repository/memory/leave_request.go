package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepositoryImpl struct {
	s *Store
}

func NewLeaveRequestRepository(s *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{s: s}
}

func (r *leaveRequestRepositoryImpl) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	request.ID = id.String()
	request.CreatedAt, request.UpdatedAt = now, now
	r.s.requests[request.ID] = request
	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var owners map[string]struct{}
	if filter.Usernames != nil {
		owners = make(map[string]struct{}, len(filter.Usernames))
		for _, u := range filter.Usernames {
			owners[u] = struct{}{}
		}
	}

	out := make([]leave.LeaveRequest, 0)
	for _, req := range r.s.requests {
		if filter.Username != "" && req.Username != filter.Username {
			continue
		}
		if owners != nil {
			if _, ok := owners[req.Username]; !ok {
				continue
			}
		}
		if filter.LeaveType != "" && req.LeaveType != filter.LeaveType {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *leaveRequestRepositoryImpl) ListOrphaned(_ context.Context) ([]leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]leave.LeaveRequest, 0)
	for _, req := range r.s.requests {
		if _, ok := r.s.leaveTypes[req.LeaveType]; !ok {
			out = append(out, req)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// pendingLocked returns the stored request if it is still pending. Callers hold the write lock.
func (r *leaveRequestRepositoryImpl) pendingLocked(id string) (leave.LeaveRequest, error) {
	req, ok := r.s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if !req.IsPending() {
		return leave.LeaveRequest{}, leave.ErrRequestNotPending
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) UpdateIfPending(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.pendingLocked(request.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	stored.LeaveType = request.LeaveType
	stored.StartDate = request.StartDate
	stored.EndDate = request.EndDate
	stored.Comments = request.Comments
	stored.UpdatedAt = r.s.now()
	r.s.requests[stored.ID] = stored
	return stored, nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatusIfPending(_ context.Context, id string, status leave.LeaveRequestStatus, decidedBy string, decidedAt time.Time) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, err := r.pendingLocked(id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	stored.Status = status
	stored.DecidedBy = &decidedBy
	stored.DecidedAt = &decidedAt
	stored.UpdatedAt = decidedAt
	r.s.requests[id] = stored
	return stored, nil
}

func (r *leaveRequestRepositoryImpl) DeleteIfPending(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, err := r.pendingLocked(id); err != nil {
		return err
	}
	delete(r.s.requests, id)
	return nil
}

func sortNewestFirst(requests []leave.LeaveRequest) {
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}
		return requests[i].ID > requests[j].ID
	})
}
