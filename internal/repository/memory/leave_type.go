package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
)

type leaveTypeRepositoryImpl struct {
	s *Store
}

func NewLeaveTypeRepository(s *Store) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{s: s}
}

func (r *leaveTypeRepositoryImpl) Create(_ context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.leaveTypes[leaveType.Name]; ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeExists
	}
	now := r.s.now()
	leaveType.CreatedAt, leaveType.UpdatedAt = now, now
	r.s.leaveTypes[leaveType.Name] = leaveType
	return leaveType, nil
}

func (r *leaveTypeRepositoryImpl) GetByName(_ context.Context, name string) (leave.LeaveType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.leaveTypes[name]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return t, nil
}

func (r *leaveTypeRepositoryImpl) List(_ context.Context) ([]leave.LeaveType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]leave.LeaveType, 0, len(r.s.leaveTypes))
	for _, t := range r.s.leaveTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *leaveTypeRepositoryImpl) UpdateTotalDays(_ context.Context, name string, totalDays int) (leave.LeaveType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.leaveTypes[name]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	t.TotalDays = totalDays
	t.UpdatedAt = r.s.now()
	r.s.leaveTypes[name] = t
	return t, nil
}

func (r *leaveTypeRepositoryImpl) Delete(_ context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.leaveTypes[name]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	for _, req := range r.s.requests {
		if req.LeaveType == name {
			return leave.ErrLeaveTypeInUse
		}
	}
	delete(r.s.leaveTypes, name)
	return nil
}
