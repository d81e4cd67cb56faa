package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

// RequestService applies the pending -> approved|rejected lifecycle. Every
// write goes through a conditional repository call so a concurrent
// transition is reported as ErrRequestNotPending instead of being overwritten.
type RequestService struct {
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	directory department.Directory
	notifier  notification.Service
	now       func() time.Time
}

func NewRequestService(
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	directory department.Directory,
	notifier notification.Service,
) *RequestService {
	return &RequestService{
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveRequestRepository: leaveRequestRepository,
		directory:              directory,
		notifier:               notifier,
		now:                    func() time.Time { return time.Now().UTC() },
	}
}

func (r *RequestService) Create(ctx context.Context, username string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := r.checkLeaveType(ctx, req.LeaveType); err != nil {
		return leave.LeaveRequest{}, err
	}

	start, end := req.Dates()
	created, err := r.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		Username:  username,
		LeaveType: req.LeaveType,
		StartDate: start,
		EndDate:   end,
		Comments:  req.Comments,
		Status:    leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.InfoContext(ctx, "leave request created",
		"request_id", created.ID,
		"username", username,
		"leave_type", created.LeaveType,
	)
	r.notifyManagers(ctx, created)

	return created, nil
}

// Edit replaces the provided fields of a pending request. Ownership and
// state are checked before the body.
func (r *RequestService) Edit(ctx context.Context, id, username string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	existing, err := r.ownedPending(ctx, id, username)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	merged := req.Merge(existing)
	if err := merged.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := r.checkLeaveType(ctx, merged.LeaveType); err != nil {
		return leave.LeaveRequest{}, err
	}

	existing.LeaveType = merged.LeaveType
	existing.StartDate, existing.EndDate = merged.Dates()
	existing.Comments = merged.Comments

	updated, err := r.LeaveRequestRepository.UpdateIfPending(ctx, existing)
	if err != nil {
		return leave.LeaveRequest{}, lifecycleError("update leave request", err)
	}

	slog.InfoContext(ctx, "leave request edited", "request_id", id, "username", username)
	return updated, nil
}

func (r *RequestService) Delete(ctx context.Context, id, username string) error {
	if _, err := r.ownedPending(ctx, id, username); err != nil {
		return err
	}

	if err := r.LeaveRequestRepository.DeleteIfPending(ctx, id); err != nil {
		return lifecycleError("delete leave request", err)
	}

	slog.InfoContext(ctx, "leave request deleted", "request_id", id, "username", username)
	return nil
}

func (r *RequestService) Decide(ctx context.Context, id, managerUsername string, decision leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	if !decision.IsDecision() {
		_, err := leave.ParseDecision(string(decision))
		return leave.LeaveRequest{}, err
	}

	request, err := r.find(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := r.authorizeManager(ctx, managerUsername, request.Username); err != nil {
		return leave.LeaveRequest{}, err
	}

	if !request.IsPending() {
		return leave.LeaveRequest{}, leave.ErrRequestNotPending
	}

	decided, err := r.LeaveRequestRepository.UpdateStatusIfPending(ctx, id, decision, managerUsername, r.now())
	if err != nil {
		return leave.LeaveRequest{}, lifecycleError("decide leave request", err)
	}

	slog.InfoContext(ctx, "leave request decided",
		"request_id", id,
		"status", decided.Status,
		"manager", managerUsername,
		"username", decided.Username,
	)
	r.notifyOwner(ctx, decided)

	return decided, nil
}

// Get returns the request when actor owns it, administers the owner's
// department, or is an admin.
func (r *RequestService) Get(ctx context.Context, actor user.Identity, id string) (leave.LeaveRequest, error) {
	request, err := r.find(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	switch {
	case actor.IsAdmin(), request.Username == actor.Username:
		return request, nil
	case actor.IsManager():
		if err := r.authorizeManager(ctx, actor.Username, request.Username); err != nil {
			return leave.LeaveRequest{}, err
		}
		return request, nil
	}
	return leave.LeaveRequest{}, leave.ErrNotRequestOwner
}

func (r *RequestService) find(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if !validator.IsValidUUID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	request, err := r.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return request, nil
}

// ownedPending loads a request for an owner mutation, checking existence,
// then ownership, then status.
func (r *RequestService) ownedPending(ctx context.Context, id, username string) (leave.LeaveRequest, error) {
	request, err := r.find(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Username != username {
		return leave.LeaveRequest{}, leave.ErrNotRequestOwner
	}
	if !request.IsPending() {
		return leave.LeaveRequest{}, leave.ErrRequestNotPending
	}
	return request, nil
}

// authorizeManager succeeds only when managerUsername administers the
// department ownerUsername currently belongs to.
func (r *RequestService) authorizeManager(ctx context.Context, managerUsername, ownerUsername string) error {
	managed, err := r.directory.ManagerDepartment(ctx, managerUsername)
	if err != nil {
		if errors.Is(err, department.ErrManagerNotAssigned) {
			return leave.ErrNotDepartmentManager
		}
		return fmt.Errorf("failed to resolve manager department: %w", err)
	}

	owner, err := r.directory.DepartmentOf(ctx, ownerUsername)
	if err != nil {
		if errors.Is(err, department.ErrMemberNotFound) {
			return leave.ErrNotDepartmentManager
		}
		return fmt.Errorf("failed to resolve owner department: %w", err)
	}

	if managed.Name != owner.Name {
		return leave.ErrNotDepartmentManager
	}
	return nil
}

func (r *RequestService) checkLeaveType(ctx context.Context, name string) error {
	if _, err := r.LeaveTypeRepository.GetByName(ctx, name); err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return validator.ValidationErrors{{Field: "leave_type", Message: "leave_type is not a registered leave type"}}
		}
		return fmt.Errorf("failed to get leave type: %w", err)
	}
	return nil
}

func (r *RequestService) notifyManagers(ctx context.Context, request leave.LeaveRequest) {
	dept, err := r.directory.DepartmentOf(ctx, request.Username)
	if err != nil {
		if !errors.Is(err, department.ErrMemberNotFound) {
			slog.ErrorContext(ctx, "resolve department for notification failed", "error", err, "username", request.Username)
		}
		return
	}
	managers, err := r.directory.ManagersOf(ctx, dept.Name)
	if err != nil {
		slog.ErrorContext(ctx, "list department managers failed", "error", err, "department", dept.Name)
		return
	}

	r.notifier.Queue(ctx, notification.Notification{
		Recipients: managers,
		Sender:     request.Username,
		Type:       notification.TypeLeaveRequest,
		Title:      "New leave request",
		Message:    fmt.Sprintf("%s requested %s leave from %s to %s", request.Username, request.LeaveType, request.StartDate.Format(validator.DateLayout), request.EndDate.Format(validator.DateLayout)),
		Data:       requestData(request),
	})
}

func (r *RequestService) notifyOwner(ctx context.Context, request leave.LeaveRequest) {
	n := notification.Notification{
		Recipients: []string{request.Username},
		Data:       requestData(request),
	}
	if request.DecidedBy != nil {
		n.Sender = *request.DecidedBy
	}
	switch request.Status {
	case leave.LeaveRequestStatusApproved:
		n.Type = notification.TypeLeaveApproved
		n.Title = "Leave request approved"
	case leave.LeaveRequestStatusRejected:
		n.Type = notification.TypeLeaveRejected
		n.Title = "Leave request rejected"
	default:
		return
	}
	n.Message = fmt.Sprintf("Your %s leave from %s was %s", request.LeaveType, request.StartDate.Format(validator.DateLayout), request.Status)

	r.notifier.Queue(ctx, n)
}

func requestData(request leave.LeaveRequest) map[string]interface{} {
	return map[string]interface{}{
		"request_id": request.ID,
		"leave_type": request.LeaveType,
		"status":     string(request.Status),
	}
}

// lifecycleError passes domain errors through and wraps the rest.
func lifecycleError(op string, err error) error {
	switch apperror.CodeOf(err) {
	case apperror.CodeNotFound, apperror.CodeInvalidState:
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
