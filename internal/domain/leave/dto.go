package leave

import (
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name      string `json:"leave_type"`
	TotalDays int    `json:"total_days"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("leave_type", "leave_type is required")
	} else if len(r.Name) > 100 {
		errs.Add("leave_type", "leave_type must not exceed 100 characters")
	}
	if r.TotalDays < 0 {
		errs.Add("total_days", "total_days must not be negative")
	}

	return errs.Err()
}

type UpdateLeaveTypeRequest struct {
	TotalDays *int `json:"total_days"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TotalDays == nil {
		errs.Add("total_days", "total_days is required")
	} else if *r.TotalDays < 0 {
		errs.Add("total_days", "total_days must not be negative")
	}

	return errs.Err()
}

type CreateLeaveRequestRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Comments  string `json:"comments"`
}

// Validate checks the field rules shared by create and edit. It does not
// consult the leave type registry.
func (r *CreateLeaveRequestRequest) Validate() error {
	_, _, err := r.parse()
	return err
}

// Dates returns the parsed start and end date. Call after Validate.
func (r *CreateLeaveRequestRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

func (r *CreateLeaveRequestRequest) parse() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	}

	var start, end time.Time
	startOK, endOK := false, false
	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	} else if start, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	} else if end, endOK = validator.IsValidDate(r.EndDate); !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if startOK && endOK && start.After(end) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if validator.IsEmpty(r.Comments) {
		errs.Add("comments", "comments is required")
	}

	return start, end, errs.Err()
}

// UpdateLeaveRequestRequest carries the fields an owner wants to change.
// Nil fields keep their stored value.
type UpdateLeaveRequestRequest struct {
	LeaveType *string `json:"leave_type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Comments  *string `json:"comments,omitempty"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LeaveType == nil && r.StartDate == nil && r.EndDate == nil && r.Comments == nil {
		errs.Add("body", "at least one field must be provided")
	}

	return errs.Err()
}

// Merge overlays the provided fields on the stored request. The result must
// be validated like a new request.
func (r *UpdateLeaveRequestRequest) Merge(existing LeaveRequest) CreateLeaveRequestRequest {
	merged := CreateLeaveRequestRequest{
		LeaveType: existing.LeaveType,
		StartDate: existing.StartDate.Format(validator.DateLayout),
		EndDate:   existing.EndDate.Format(validator.DateLayout),
		Comments:  existing.Comments,
	}
	if r.LeaveType != nil {
		merged.LeaveType = *r.LeaveType
	}
	if r.StartDate != nil {
		merged.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		merged.EndDate = *r.EndDate
	}
	if r.Comments != nil {
		merged.Comments = *r.Comments
	}
	return merged
}

// ParseDecision maps the decision path segment to a terminal status.
func ParseDecision(raw string) (LeaveRequestStatus, error) {
	status := LeaveRequestStatus(raw)
	if !status.IsDecision() {
		return "", validator.ValidationErrors{{
			Field:   "decision",
			Message: "decision must be approved or rejected",
		}}
	}
	return status, nil
}

// LeaveRequestFilter narrows a request listing. Usernames, when non-nil,
// restricts results to those owners; an empty non-nil slice matches nothing.
type LeaveRequestFilter struct {
	Username  string
	Usernames []string
	LeaveType string
	Status    *LeaveRequestStatus
}

// ListLeaveRequestsQuery is the caller-facing filter parsed from the query string.
type ListLeaveRequestsQuery struct {
	Username   string
	Department string
	LeaveType  string
	Status     string
}

func (q *ListLeaveRequestsQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Status != "" && !LeaveRequestStatus(q.Status).IsValid() {
		errs.Add("status", "status must be one of pending, approved, rejected")
	}

	return errs.Err()
}

// StatusFilter returns the parsed status, or nil when unset.
func (q *ListLeaveRequestsQuery) StatusFilter() *LeaveRequestStatus {
	if q.Status == "" {
		return nil
	}
	s := LeaveRequestStatus(q.Status)
	return &s
}

type LeaveTypeResponse struct {
	Name      string `json:"leave_type"`
	TotalDays int    `json:"total_days"`
}

func NewLeaveTypeResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{Name: t.Name, TotalDays: t.TotalDays}
}

type LeaveRequestResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	LeaveType string     `json:"leave_type"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Days      int        `json:"days"`
	Comments  string     `json:"comments"`
	Status    string     `json:"status"`
	DecidedBy *string    `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:        r.ID,
		Username:  r.Username,
		LeaveType: r.LeaveType,
		StartDate: r.StartDate.Format(validator.DateLayout),
		EndDate:   r.EndDate.Format(validator.DateLayout),
		Days:      r.Days(),
		Comments:  r.Comments,
		Status:    string(r.Status),
		DecidedBy: r.DecidedBy,
		DecidedAt: r.DecidedAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewLeaveRequestResponses(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, NewLeaveRequestResponse(r))
	}
	return out
}

type BalanceResponse struct {
	Username     string `json:"username"`
	LeaveType    string `json:"leave_type"`
	Approved     int    `json:"approved"`
	Pending      int    `json:"pending"`
	Rejected     int    `json:"rejected"`
	Total        int    `json:"total"`
	Remaining    int    `json:"remaining"`
	ApprovedDays int    `json:"approved_days"`
}

type SummaryResponse struct {
	Department string            `json:"department,omitempty"`
	Balances   []BalanceResponse `json:"balances"`
}

func NewSummaryResponse(department string, s Summary) SummaryResponse {
	rows := s.Rows()
	out := SummaryResponse{Department: department, Balances: make([]BalanceResponse, 0, len(rows))}
	for _, b := range rows {
		out.Balances = append(out.Balances, BalanceResponse{
			Username:     b.Username,
			LeaveType:    b.LeaveType,
			Approved:     b.Approved,
			Pending:      b.Pending,
			Rejected:     b.Rejected,
			Total:        b.Total,
			Remaining:    b.Remaining,
			ApprovedDays: b.ApprovedDays,
		})
	}
	return out
}
