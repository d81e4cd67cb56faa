package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DepartmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	AssignMember(w http.ResponseWriter, r *http.Request)
	AssignManager(w http.ResponseWriter, r *http.Request)
}

type departmentHandlerImpl struct {
	departmentService department.DepartmentService
}

func NewDepartmentHandler(departmentService department.DepartmentService) DepartmentHandler {
	return &departmentHandlerImpl{departmentService: departmentService}
}

func (h *departmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateDepartment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	d, err := h.departmentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", department.NewDepartmentResponse(d))
}

func (h *departmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, department.NewDepartmentResponse(d))
	}
	response.SuccessWithMeta(w, out, listMeta(len(out)))
}

func (h *departmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.departmentService.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, department.NewDetailResponse(detail))
}

func (h *departmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.departmentService.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

func (h *departmentHandlerImpl) Mine(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	d, err := h.departmentService.Mine(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, department.NewDepartmentResponse(d))
}

func (h *departmentHandlerImpl) AssignMember(w http.ResponseWriter, r *http.Request) {
	name, username := chi.URLParam(r, "name"), chi.URLParam(r, "username")
	if err := h.departmentService.AssignMember(r.Context(), name, username); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member assigned successfully", nil)
}

func (h *departmentHandlerImpl) AssignManager(w http.ResponseWriter, r *http.Request) {
	name, username := chi.URLParam(r, "name"), chi.URLParam(r, "username")
	if err := h.departmentService.AssignManager(r.Context(), name, username); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager assigned successfully", nil)
}
