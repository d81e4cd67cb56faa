package leave

import (
	"time"
)

// LeaveType is a registry entry: a named category with its annual entitlement.
type LeaveType struct {
	Name      string
	TotalDays int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a status a manager may move a pending request to.
func (s LeaveRequestStatus) IsDecision() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected
}

// LeaveRequest entity
type LeaveRequest struct {
	ID        string
	Username  string
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Comments  string
	Status    LeaveRequestStatus

	DecidedBy *string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r LeaveRequest) IsPending() bool {
	return r.Status == LeaveRequestStatusPending
}

// Days returns the inclusive number of calendar days covered by the request.
func (r LeaveRequest) Days() int {
	if r.EndDate.Before(r.StartDate) {
		return 0
	}
	return int(truncateDay(r.EndDate).Sub(truncateDay(r.StartDate)).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
