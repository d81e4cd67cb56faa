package report

import (
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// DepartmentSummary is the content of an exported department leave report.
type DepartmentSummary struct {
	Department  string
	GeneratedBy string
	GeneratedAt time.Time
	Balances    []leave.Balance
	Requests    []leave.LeaveRequest
}

var balanceColumns = []struct {
	title string
	width float64
}{
	{"Employee", 40},
	{"Leave type", 35},
	{"Approved", 20},
	{"Pending", 20},
	{"Rejected", 20},
	{"Total", 15},
	{"Remaining", 20},
	{"Used %", 20},
}

var requestColumns = []struct {
	title string
	width float64
}{
	{"Employee", 35},
	{"Leave type", 30},
	{"From", 25},
	{"To", 25},
	{"Days", 12},
	{"Status", 22},
	{"Comments", 41},
}

// RenderDepartmentSummary writes the report as a PDF document.
func RenderDepartmentSummary(w io.Writer, s DepartmentSummary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Leave summary - %s", s.Department), true)
	pdf.SetCreator("leave-backend-go", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Leave Summary: %s", s.Department)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Generated %s by %s", s.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), s.GeneratedBy)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Balances")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range balanceColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(s.Balances) == 0 {
		pdf.CellFormat(190, 7, "No leave requests", "1", 1, "C", false, 0, "")
	}
	for _, b := range s.Balances {
		cells := []string{
			b.Username,
			b.LeaveType,
			fmt.Sprint(b.Approved),
			fmt.Sprint(b.Pending),
			fmt.Sprint(b.Rejected),
			fmt.Sprint(b.Total),
			fmt.Sprint(b.Remaining),
			Utilization(b),
		}
		for i, c := range balanceColumns {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(c.width, 6, tr(truncate(cells[i], 28)), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Requests")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 9)
	for _, c := range requestColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, r := range s.Requests {
		cells := []string{
			r.Username,
			r.LeaveType,
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
			fmt.Sprint(r.Days()),
			string(r.Status),
			r.Comments,
		}
		for i, c := range requestColumns {
			pdf.CellFormat(c.width, 6, tr(truncate(cells[i], 26)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// Utilization returns approved requests as a percentage of the entitlement,
// or "-" when the entitlement is zero.
func Utilization(b leave.Balance) string {
	if b.Total <= 0 {
		return "-"
	}
	pct := decimal.NewFromInt(int64(b.Approved)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(b.Total)))
	return pct.StringFixed(1)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "~"
}
