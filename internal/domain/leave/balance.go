package leave

import "sort"

// BalanceKey identifies one aggregation group.
type BalanceKey struct {
	Username  string
	LeaveType string
}

// Balance is the per-(user, leave type) tally. Remaining is Total minus the
// number of approved requests and may be negative.
type Balance struct {
	Username     string
	LeaveType    string
	Approved     int
	Pending      int
	Rejected     int
	Total        int
	Remaining    int
	ApprovedDays int
}

// Count returns the number of requests that landed in the group.
func (b Balance) Count() int {
	return b.Approved + b.Pending + b.Rejected
}

type Summary map[BalanceKey]Balance

// Summarize groups requests by (username, leave type) and counts them per
// status. Entitlements come from leaveTypes; names missing from the registry
// get a total of zero. It does not modify its inputs.
func Summarize(requests []LeaveRequest, leaveTypes []LeaveType) Summary {
	totals := make(map[string]int, len(leaveTypes))
	for _, t := range leaveTypes {
		totals[t.Name] = t.TotalDays
	}

	summary := make(Summary)
	for _, r := range requests {
		key := BalanceKey{Username: r.Username, LeaveType: r.LeaveType}
		b, ok := summary[key]
		if !ok {
			b = Balance{Username: r.Username, LeaveType: r.LeaveType, Total: totals[r.LeaveType]}
		}
		switch r.Status {
		case LeaveRequestStatusApproved:
			b.Approved++
			b.ApprovedDays += r.Days()
		case LeaveRequestStatusPending:
			b.Pending++
		case LeaveRequestStatusRejected:
			b.Rejected++
		}
		b.Remaining = b.Total - b.Approved
		summary[key] = b
	}
	return summary
}

// WithEntitlements adds an empty group for every registry type the user has
// no request for.
func (s Summary) WithEntitlements(username string, leaveTypes []LeaveType) Summary {
	out := make(Summary, len(s)+len(leaveTypes))
	for k, v := range s {
		out[k] = v
	}
	for _, t := range leaveTypes {
		key := BalanceKey{Username: username, LeaveType: t.Name}
		if _, ok := out[key]; !ok {
			out[key] = Balance{Username: username, LeaveType: t.Name, Total: t.TotalDays, Remaining: t.TotalDays}
		}
	}
	return out
}

// Rows returns the groups ordered by username, then leave type.
func (s Summary) Rows() []Balance {
	rows := make([]Balance, 0, len(s))
	for _, b := range s {
		rows = append(rows, b)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Username != rows[j].Username {
			return rows[i].Username < rows[j].Username
		}
		return rows[i].LeaveType < rows[j].LeaveType
	})
	return rows
}
