package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.Stop()
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler()
	assert.NotPanics(t, s.Stop)
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	s := NewScheduler()
	var second bool
	s.AddJob("fails", time.Hour, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("succeeds", time.Hour, func(ctx context.Context) error { second = true; return nil })

	s.RunOnce(context.Background())
	assert.True(t, second)
}

type stubFinder struct {
	orphans []leave.LeaveRequest
	err     error
}

func (f stubFinder) FindOrphanedRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	return f.orphans, f.err
}

func TestLeaveJobs_ScanOrphanedRequests(t *testing.T) {
	jobs := NewLeaveJobs(stubFinder{orphans: []leave.LeaveRequest{
		{ID: "1", Username: "alice", LeaveType: "Sabbatical", Status: leave.LeaveRequestStatusApproved},
		{ID: "2", Username: "bob", LeaveType: "Sabbatical", Status: leave.LeaveRequestStatusPending},
	}})

	n, err := jobs.ScanOrphanedRequests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	failing := NewLeaveJobs(stubFinder{err: errors.New("db down")})
	_, err = failing.ScanOrphanedRequests(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestLeaveJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler()
	NewLeaveJobs(stubFinder{}).RegisterJobs(s, time.Minute)

	require.Len(t, s.jobs, 1)
	assert.Equal(t, "scan_orphaned_leave_requests", s.jobs[0].Name)
	assert.Equal(t, time.Minute, s.jobs[0].Interval)
}
