package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	EditRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	DecideRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)

	GetMySummary(w http.ResponseWriter, r *http.Request)
	GetDepartmentSummary(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// identity returns the caller identity, writing a 401 when it is absent.
func identity(w http.ResponseWriter, r *http.Request) (user.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.HandleError(w, user.ErrIdentityMissing)
	}
	return id, ok
}

func parseListQuery(r *http.Request) leave.ListLeaveRequestsQuery {
	q := r.URL.Query()
	return leave.ListLeaveRequestsQuery{
		Username:   q.Get("username"),
		Department: q.Get("department"),
		LeaveType:  q.Get("leave_type"),
		Status:     q.Get("status"),
	}
}

func listMeta(n int) *response.Meta {
	return &response.Meta{TotalItems: int64(n)}
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveType, err := l.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leave.NewLeaveTypeResponse(leaveType))
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveType, err := l.leaveService.UpdateLeaveType(r.Context(), chi.URLParam(r, "name"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", leave.NewLeaveTypeResponse(leaveType))
}

// GetType implements LeaveHandler.
func (l *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	leaveType, err := l.leaveService.GetLeaveType(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveTypeResponse(leaveType))
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	leaveTypes, err := l.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.LeaveTypeResponse, 0, len(leaveTypes))
	for _, t := range leaveTypes {
		out = append(out, leave.NewLeaveTypeResponse(t))
	}
	response.SuccessWithMeta(w, out, listMeta(len(out)))
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.DeleteLeaveType(r.Context(), chi.URLParam(r, "name")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), caller.Username, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leave.NewLeaveRequestResponse(created))
}

// EditRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) EditRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	var req leave.UpdateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EditRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := l.leaveService.EditLeaveRequest(r.Context(), chi.URLParam(r, "id"), caller.Username, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", leave.NewLeaveRequestResponse(updated))
}

// DeleteRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	if err := l.leaveService.DeleteLeaveRequest(r.Context(), chi.URLParam(r, "id"), caller.Username); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

// DecideRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DecideRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	decision, err := leave.ParseDecision(chi.URLParam(r, "decision"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	decided, err := l.leaveService.DecideLeaveRequest(r.Context(), chi.URLParam(r, "id"), caller.Username, decision)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+string(decided.Status)+" successfully", leave.NewLeaveRequestResponse(decided))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	request, err := l.leaveService.GetLeaveRequest(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewLeaveRequestResponse(request))
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	requests, err := l.leaveService.ListMyLeaveRequests(r.Context(), caller.Username, parseListQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leave.NewLeaveRequestResponses(requests), listMeta(len(requests)))
}

// ListRequests implements LeaveHandler. Managers always get their own
// department's requests; admins may filter freely.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	var (
		requests []leave.LeaveRequest
		err      error
	)
	switch {
	case user.HasPermission(caller.Role, user.PermissionLeaveViewAll):
		requests, err = l.leaveService.ListLeaveRequests(r.Context(), parseListQuery(r))
	case user.HasPermission(caller.Role, user.PermissionLeaveViewDepartment):
		requests, err = l.leaveService.ListDepartmentLeaveRequests(r.Context(), caller.Username, parseListQuery(r))
	default:
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leave.NewLeaveRequestResponses(requests), listMeta(len(requests)))
}

// GetMySummary implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	summary, err := l.leaveService.SummarizeForUser(r.Context(), caller.Username)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewSummaryResponse("", summary))
}

// GetDepartmentSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) GetDepartmentSummary(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	dept, summary, err := l.leaveService.SummarizeForManager(r.Context(), caller.Username)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewSummaryResponse(dept, summary))
}

// GetSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r)
	summary, err := l.leaveService.Summarize(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewSummaryResponse(query.Department, summary))
}
