package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createPending(t *testing.T, repo leave.LeaveRequestRepository, username, leaveType string) leave.LeaveRequest {
	t.Helper()
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(context.Background(), leave.LeaveRequest{
		Username:  username,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 1),
		Comments:  "dentist",
		Status:    leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)
	return created
}

func TestLeaveTypeRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	types := NewLeaveTypeRepository(db)
	requests := NewLeaveRequestRepository(db)

	created, err := types.Create(ctx, leave.LeaveType{Name: "Sick", TotalDays: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, created.TotalDays)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = types.Create(ctx, leave.LeaveType{Name: "Sick", TotalDays: 3})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeExists)

	updated, err := types.UpdateTotalDays(ctx, "Sick", 12)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.TotalDays)

	_, err = types.UpdateTotalDays(ctx, "Vacation", 1)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)

	createPending(t, requests, "alice", "Sick")
	assert.ErrorIs(t, types.Delete(ctx, "Sick"), leave.ErrLeaveTypeInUse)
	assert.ErrorIs(t, types.Delete(ctx, "Vacation"), leave.ErrLeaveTypeNotFound)

	_, err = types.Create(ctx, leave.LeaveType{Name: "Vacation", TotalDays: 20})
	require.NoError(t, err)
	require.NoError(t, types.Delete(ctx, "Vacation"))

	list, err := types.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sick", list[0].Name)
}

func TestLeaveRequestRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository(openTestDB(t))

	created := createPending(t, repo, "alice", "Sick")
	assert.True(t, validator.IsValidUUID(created.ID))
	assert.Equal(t, 2, created.Days())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.StartDate, got.StartDate)
	assert.Nil(t, got.DecidedBy)

	got.Comments = "orthodontist"
	edited, err := repo.UpdateIfPending(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "orthodontist", edited.Comments)

	decidedAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	decided, err := repo.UpdateStatusIfPending(ctx, created.ID, leave.LeaveRequestStatusRejected, "mgr", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, decided.Status)
	require.NotNil(t, decided.DecidedAt)
	assert.True(t, decidedAt.Equal(*decided.DecidedAt))

	_, err = repo.UpdateStatusIfPending(ctx, created.ID, leave.LeaveRequestStatusApproved, "mgr", time.Now())
	assert.ErrorIs(t, err, leave.ErrRequestNotPending)
	assert.ErrorIs(t, repo.DeleteIfPending(ctx, created.ID), leave.ErrRequestNotPending)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	assert.ErrorIs(t, repo.DeleteIfPending(ctx, "missing"), leave.ErrLeaveRequestNotFound)

	other := createPending(t, repo, "bob", "Sick")
	require.NoError(t, repo.DeleteIfPending(ctx, other.ID))
	_, err = repo.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRequestRepository_ConcurrentDecisionsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository(openTestDB(t))
	created := createPending(t, repo, "alice", "Sick")

	const racers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpdateStatusIfPending(ctx, created.ID, leave.LeaveRequestStatusApproved, "mgr", time.Now())
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, leave.ErrRequestNotPending)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestLeaveRequestRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	types := NewLeaveTypeRepository(db)
	repo := NewLeaveRequestRepository(db)

	_, err := types.Create(ctx, leave.LeaveType{Name: "Sick", TotalDays: 10})
	require.NoError(t, err)

	a := createPending(t, repo, "alice", "Sick")
	createPending(t, repo, "bob", "Sick")
	orphan := createPending(t, repo, "carol", "Sabbatical")
	_, err = repo.UpdateStatusIfPending(ctx, a.ID, leave.LeaveRequestStatusApproved, "mgr", time.Now())
	require.NoError(t, err)

	all, err := repo.List(ctx, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	approved := leave.LeaveRequestStatusApproved
	got, err := repo.List(ctx, leave.LeaveRequestFilter{Status: &approved})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	got, err = repo.List(ctx, leave.LeaveRequestFilter{Usernames: []string{"bob", "carol"}, LeaveType: "Sick"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].Username)

	got, err = repo.List(ctx, leave.LeaveRequestFilter{Usernames: []string{}})
	require.NoError(t, err)
	assert.Empty(t, got)

	orphans, err := repo.ListOrphaned(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, orphan.ID, orphans[0].ID)
}

func TestDepartmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDepartmentRepository(openTestDB(t))

	_, err := repo.Create(ctx, department.Department{Name: "Engineering"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, department.Department{Name: "Engineering"})
	assert.ErrorIs(t, err, department.ErrDepartmentExists)
	_, err = repo.Create(ctx, department.Department{Name: "Sales"})
	require.NoError(t, err)

	require.NoError(t, repo.AssignMember(ctx, "alice", "Engineering"))
	require.NoError(t, repo.AssignMember(ctx, "bob", "Engineering"))
	require.NoError(t, repo.AssignManager(ctx, "mgr", "Engineering"))
	assert.ErrorIs(t, repo.AssignMember(ctx, "zed", "Nowhere"), department.ErrDepartmentNotFound)

	d, err := repo.DepartmentOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", d.Name)
	_, err = repo.DepartmentOf(ctx, "nobody")
	assert.ErrorIs(t, err, department.ErrMemberNotFound)

	d, err = repo.ManagerDepartment(ctx, "mgr")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", d.Name)
	_, err = repo.ManagerDepartment(ctx, "alice")
	assert.ErrorIs(t, err, department.ErrManagerNotAssigned)

	require.NoError(t, repo.AssignMember(ctx, "bob", "Sales"))
	members, err := repo.MembersOf(ctx, "Engineering")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, members)

	managers, err := repo.ManagersOf(ctx, "Engineering")
	require.NoError(t, err)
	assert.Equal(t, []string{"mgr"}, managers)

	assert.ErrorIs(t, repo.Delete(ctx, "Sales"), department.ErrDepartmentNotEmpty)
	assert.ErrorIs(t, repo.Delete(ctx, "Nowhere"), department.ErrDepartmentNotFound)

	_, err = repo.Create(ctx, department.Department{Name: "Legal"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "Legal"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
