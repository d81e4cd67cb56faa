package report

import "github.com/cmlabs-hris/leave-backend-go/internal/pkg/apperror"

var (
	ErrReportNotFound = apperror.NotFound("report not found")
)
