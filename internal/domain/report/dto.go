package report

import (
	"strings"
	"time"
)

// DepartmentReport is an exported department leave summary.
type DepartmentReport struct {
	Department  string
	Key         string
	URL         string
	GeneratedAt time.Time
	Content     []byte
}

// FileName is the download name offered to the client.
func (r DepartmentReport) FileName() string {
	return "leave-summary-" + Slug(r.Department) + "-" + r.GeneratedAt.UTC().Format("20060102") + ".pdf"
}

// Slug turns a department name into a file name fragment.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

type ArchivedReportResponse struct {
	Department  string    `json:"department"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	GeneratedAt time.Time `json:"generated_at"`
}

func NewArchivedReportResponse(r DepartmentReport) ArchivedReportResponse {
	return ArchivedReportResponse{
		Department:  r.Department,
		Key:         r.Key,
		URL:         r.URL,
		GeneratedAt: r.GeneratedAt,
	}
}
