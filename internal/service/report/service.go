package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/report"
	pdfreport "github.com/cmlabs-hris/leave-backend-go/internal/pkg/report"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/storage"
)

type ReportServiceImpl struct {
	leaveService leave.LeaveService
	directory    department.Directory
	storage      storage.FileStorage
	now          func() time.Time
}

func NewReportService(leaveService leave.LeaveService, directory department.Directory, fileStorage storage.FileStorage) report.ReportService {
	return &ReportServiceImpl{
		leaveService: leaveService,
		directory:    directory,
		storage:      fileStorage,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ExportDepartmentSummary implements report.ReportService.
func (s *ReportServiceImpl) ExportDepartmentSummary(ctx context.Context, managerUsername string) (report.DepartmentReport, error) {
	dept, summary, err := s.leaveService.SummarizeForManager(ctx, managerUsername)
	if err != nil {
		return report.DepartmentReport{}, err
	}
	requests, err := s.leaveService.ListLeaveRequests(ctx, leave.ListLeaveRequestsQuery{Department: dept})
	if err != nil {
		return report.DepartmentReport{}, err
	}

	generatedAt := s.now()
	var buf bytes.Buffer
	err = pdfreport.RenderDepartmentSummary(&buf, pdfreport.DepartmentSummary{
		Department:  dept,
		GeneratedBy: managerUsername,
		GeneratedAt: generatedAt,
		Balances:    summary.Rows(),
		Requests:    requests,
	})
	if err != nil {
		return report.DepartmentReport{}, fmt.Errorf("failed to render department report: %w", err)
	}

	out := report.DepartmentReport{
		Department:  dept,
		GeneratedAt: generatedAt,
		Content:     buf.Bytes(),
	}

	key, err := s.storage.Save(ctx, bytes.NewReader(out.Content), archivePath(dept, generatedAt))
	if err != nil {
		// the caller still gets the document
		slog.ErrorContext(ctx, "archive department report failed", "error", err, "department", dept)
		return out, nil
	}
	out.Key = key
	out.URL = s.storage.URL(key)

	slog.InfoContext(ctx, "department report exported",
		"department", dept,
		"manager", managerUsername,
		"key", key,
		"bytes", len(out.Content),
	)
	return out, nil
}

// OpenArchived implements report.ReportService.
func (s *ReportServiceImpl) OpenArchived(ctx context.Context, managerUsername, key string) (io.ReadCloser, error) {
	dept, err := s.directory.ManagerDepartment(ctx, managerUsername)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(path.Clean("/"+key), "/"+archiveDir(dept.Name)+"/") {
		return nil, report.ErrReportNotFound
	}

	rc, err := s.storage.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, report.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to open archived report: %w", err)
	}
	return rc, nil
}

func archiveDir(dept string) string {
	return path.Join("reports", report.Slug(dept))
}

func archivePath(dept string, at time.Time) string {
	return path.Join(archiveDir(dept), at.Format("20060102T150405.000000000Z")+".pdf")
}
