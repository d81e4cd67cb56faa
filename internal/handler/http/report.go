package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// GET /reports/department.pdf
	ExportDepartmentSummary(w http.ResponseWriter, r *http.Request)

	// GET /reports/archive?key=
	GetArchived(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportDepartmentSummary handles GET /reports/department.pdf
func (h *reportHandlerImpl) ExportDepartmentSummary(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.ExportDepartmentSummary(r.Context(), caller.Username)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	if result.Key != "" {
		w.Header().Set("X-Report-Key", result.Key)
		w.Header().Set("X-Report-URL", result.URL)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		slog.Error("write department report failed", "error", err)
	}
}

// GetArchived handles GET /reports/archive?key=
func (h *reportHandlerImpl) GetArchived(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		response.BadRequest(w, "key query parameter is required", nil)
		return
	}

	rc, err := h.reportService.OpenArchived(r.Context(), caller.Username, key)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("stream archived report failed", "error", err, "key", key)
	}
}
