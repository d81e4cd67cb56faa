package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func req(username, leaveType string, status LeaveRequestStatus, start, end string) LeaveRequest {
	return LeaveRequest{
		Username:  username,
		LeaveType: leaveType,
		Status:    status,
		StartDate: day(start),
		EndDate:   day(end),
		Comments:  "c",
	}
}

func TestSummarize_CountsPerStatus(t *testing.T) {
	types := []LeaveType{{Name: "Sick", TotalDays: 10}, {Name: "Annual", TotalDays: 12}}
	requests := []LeaveRequest{
		req("alice", "Sick", LeaveRequestStatusApproved, "2024-01-10", "2024-01-12"),
		req("alice", "Sick", LeaveRequestStatusPending, "2024-02-01", "2024-02-01"),
		req("alice", "Sick", LeaveRequestStatusRejected, "2024-03-01", "2024-03-02"),
		req("alice", "Annual", LeaveRequestStatusApproved, "2024-04-01", "2024-04-05"),
		req("bob", "Sick", LeaveRequestStatusApproved, "2024-01-01", "2024-01-01"),
	}

	summary := Summarize(requests, types)
	require.Len(t, summary, 3)

	aliceSick := summary[BalanceKey{"alice", "Sick"}]
	assert.Equal(t, 1, aliceSick.Approved)
	assert.Equal(t, 1, aliceSick.Pending)
	assert.Equal(t, 1, aliceSick.Rejected)
	assert.Equal(t, 10, aliceSick.Total)
	assert.Equal(t, 9, aliceSick.Remaining)
	assert.Equal(t, 3, aliceSick.ApprovedDays)

	aliceAnnual := summary[BalanceKey{"alice", "Annual"}]
	assert.Equal(t, 11, aliceAnnual.Remaining)
	assert.Equal(t, 5, aliceAnnual.ApprovedDays)

	bobSick := summary[BalanceKey{"bob", "Sick"}]
	assert.Equal(t, 1, bobSick.Approved)
	assert.Equal(t, 9, bobSick.Remaining)
}

func TestSummarize_PartitionIsExhaustive(t *testing.T) {
	statuses := []LeaveRequestStatus{LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected}
	var requests []LeaveRequest
	perGroup := map[BalanceKey]int{}
	for i := 0; i < 60; i++ {
		username := []string{"alice", "bob", "carol"}[i%3]
		leaveType := []string{"Sick", "Annual"}[i%2]
		requests = append(requests, req(username, leaveType, statuses[i%len(statuses)], "2024-05-01", "2024-05-02"))
		perGroup[BalanceKey{username, leaveType}]++
	}

	summary := Summarize(requests, nil)
	total := 0
	for key, b := range summary {
		assert.Equal(t, perGroup[key], b.Count(), "group %v", key)
		total += b.Count()
	}
	assert.Equal(t, len(requests), total)
}

func TestSummarize_UnknownTypeHasZeroTotal(t *testing.T) {
	requests := []LeaveRequest{req("alice", "Sabbatical", LeaveRequestStatusApproved, "2024-01-01", "2024-01-01")}

	summary := Summarize(requests, []LeaveType{{Name: "Sick", TotalDays: 10}})

	b := summary[BalanceKey{"alice", "Sabbatical"}]
	assert.Equal(t, 0, b.Total)
	assert.Equal(t, -1, b.Remaining)
}

func TestSummarize_RemainingIsNotClamped(t *testing.T) {
	var requests []LeaveRequest
	for i := 0; i < 4; i++ {
		requests = append(requests, req("alice", "Sick", LeaveRequestStatusApproved, "2024-01-01", "2024-01-01"))
	}

	summary := Summarize(requests, []LeaveType{{Name: "Sick", TotalDays: 2}})

	assert.Equal(t, -2, summary[BalanceKey{"alice", "Sick"}].Remaining)
}

func TestSummarize_Idempotent(t *testing.T) {
	types := []LeaveType{{Name: "Sick", TotalDays: 10}}
	requests := []LeaveRequest{
		req("alice", "Sick", LeaveRequestStatusApproved, "2024-01-10", "2024-01-12"),
		req("bob", "Sick", LeaveRequestStatusPending, "2024-01-10", "2024-01-12"),
	}
	snapshot := append([]LeaveRequest(nil), requests...)

	first := Summarize(requests, types)
	second := Summarize(requests, types)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, requests)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, []LeaveType{{Name: "Sick", TotalDays: 10}})
	assert.Empty(t, summary)
	assert.Empty(t, summary.Rows())
}

func TestSummary_WithEntitlements(t *testing.T) {
	types := []LeaveType{{Name: "Sick", TotalDays: 10}, {Name: "Annual", TotalDays: 12}}
	summary := Summarize([]LeaveRequest{
		req("alice", "Sick", LeaveRequestStatusApproved, "2024-01-10", "2024-01-10"),
	}, types).WithEntitlements("alice", types)

	rows := summary.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, Balance{Username: "alice", LeaveType: "Annual", Total: 12, Remaining: 12}, rows[0])
	assert.Equal(t, 9, rows[1].Remaining)
}

func TestSummary_RowsOrdered(t *testing.T) {
	summary := Summarize([]LeaveRequest{
		req("carol", "Sick", LeaveRequestStatusPending, "2024-01-01", "2024-01-01"),
		req("alice", "Sick", LeaveRequestStatusPending, "2024-01-01", "2024-01-01"),
		req("alice", "Annual", LeaveRequestStatusPending, "2024-01-01", "2024-01-01"),
	}, nil)

	rows := summary.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, BalanceKey{"alice", "Annual"}, BalanceKey{rows[0].Username, rows[0].LeaveType})
	assert.Equal(t, BalanceKey{"alice", "Sick"}, BalanceKey{rows[1].Username, rows[1].LeaveType})
	assert.Equal(t, BalanceKey{"carol", "Sick"}, BalanceKey{rows[2].Username, rows[2].LeaveType})
}

func TestLeaveRequest_Days(t *testing.T) {
	assert.Equal(t, 3, req("a", "Sick", LeaveRequestStatusPending, "2024-01-10", "2024-01-12").Days())
	assert.Equal(t, 1, req("a", "Sick", LeaveRequestStatusPending, "2024-01-10", "2024-01-10").Days())
	assert.Equal(t, 2, req("a", "Sick", LeaveRequestStatusPending, "2024-02-28", "2024-02-29").Days())
	assert.Equal(t, 0, req("a", "Sick", LeaveRequestStatusPending, "2024-01-12", "2024-01-10").Days())
}
