package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
)

// OrphanFinder lists leave requests whose leave type is missing from the registry.
type OrphanFinder interface {
	FindOrphanedRequests(ctx context.Context) ([]leave.LeaveRequest, error)
}

type LeaveJobs struct {
	finder OrphanFinder
}

func NewLeaveJobs(finder OrphanFinder) *LeaveJobs {
	return &LeaveJobs{finder: finder}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler, orphanScanInterval time.Duration) {
	scheduler.AddJob("scan_orphaned_leave_requests", orphanScanInterval, func(ctx context.Context) error {
		_, err := j.ScanOrphanedRequests(ctx)
		return err
	})
}

// ScanOrphanedRequests logs every request that references an unknown leave
// type and returns how many were found. Such requests still aggregate with a
// zero entitlement.
func (j *LeaveJobs) ScanOrphanedRequests(ctx context.Context) (int, error) {
	orphans, err := j.finder.FindOrphanedRequests(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to find orphaned leave requests: %w", err)
	}

	byType := make(map[string]int)
	for _, r := range orphans {
		byType[r.LeaveType]++
		slog.Warn("Cron: leave request references unknown leave type",
			"request_id", r.ID,
			"username", r.Username,
			"leave_type", r.LeaveType,
			"status", r.Status,
		)
	}
	if len(orphans) > 0 {
		slog.Warn("Cron: orphaned leave requests found", "count", len(orphans), "by_type", byType)
	}

	return len(orphans), nil
}
