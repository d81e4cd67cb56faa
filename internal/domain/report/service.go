package report

import (
	"context"
	"io"
)

type ReportService interface {
	// ExportDepartmentSummary renders the summary of the department
	// managerUsername administers and archives it.
	ExportDepartmentSummary(ctx context.Context, managerUsername string) (DepartmentReport, error)

	// OpenArchived streams a previously exported report of the manager's
	// department.
	OpenArchived(ctx context.Context, managerUsername, key string) (io.ReadCloser, error)
}
