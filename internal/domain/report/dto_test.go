package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDepartmentReport_FileName(t *testing.T) {
	r := DepartmentReport{
		Department:  "R&D Team",
		GeneratedAt: time.Date(2024, 5, 2, 23, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "leave-summary-r_d_team-20240502.pdf", r.FileName())
	assert.Equal(t, "engineering", Slug("Engineering"))
}
