package leave

import (
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateLeaveRequestRequest
		wantField string
	}{
		{
			name: "valid",
			req:  CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-01-10", EndDate: "2024-01-12", Comments: "flu"},
		},
		{
			name: "single day",
			req:  CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-01-10", EndDate: "2024-01-10", Comments: "flu"},
		},
		{
			name:      "start after end",
			req:       CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-02-05", EndDate: "2024-02-01", Comments: "flu"},
			wantField: "end_date",
		},
		{
			name:      "missing leave type",
			req:       CreateLeaveRequestRequest{StartDate: "2024-01-10", EndDate: "2024-01-12", Comments: "flu"},
			wantField: "leave_type",
		},
		{
			name:      "blank comments",
			req:       CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-01-10", EndDate: "2024-01-12", Comments: "   "},
			wantField: "comments",
		},
		{
			name:      "missing start",
			req:       CreateLeaveRequestRequest{LeaveType: "Sick", EndDate: "2024-01-12", Comments: "flu"},
			wantField: "start_date",
		},
		{
			name:      "malformed end",
			req:       CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-01-10", EndDate: "12/01/2024", Comments: "flu"},
			wantField: "end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.wantField)
		})
	}
}

func TestCreateLeaveRequestRequest_Dates(t *testing.T) {
	r := CreateLeaveRequestRequest{LeaveType: "Sick", StartDate: "2024-01-10", EndDate: "2024-01-12", Comments: "flu"}
	require.NoError(t, r.Validate())

	start, end := r.Dates()
	assert.Equal(t, day("2024-01-10"), start)
	assert.Equal(t, day("2024-01-12"), end)
}

func TestUpdateLeaveRequestRequest_Merge(t *testing.T) {
	existing := req("alice", "Sick", LeaveRequestStatusPending, "2024-01-10", "2024-01-12")
	existing.Comments = "flu"

	update := UpdateLeaveRequestRequest{EndDate: strPtr("2024-01-15"), Comments: strPtr("still flu")}
	require.NoError(t, update.Validate())

	merged := update.Merge(existing)
	assert.Equal(t, CreateLeaveRequestRequest{
		LeaveType: "Sick",
		StartDate: "2024-01-10",
		EndDate:   "2024-01-15",
		Comments:  "still flu",
	}, merged)
	assert.NoError(t, merged.Validate())

	backwards := UpdateLeaveRequestRequest{StartDate: strPtr("2024-01-20")}
	merged = backwards.Merge(existing)
	assert.Error(t, merged.Validate())
}

func TestUpdateLeaveRequestRequest_ValidateRequiresAField(t *testing.T) {
	var empty UpdateLeaveRequestRequest
	assert.Error(t, empty.Validate())
}

func TestParseDecision(t *testing.T) {
	status, err := ParseDecision("approved")
	require.NoError(t, err)
	assert.Equal(t, LeaveRequestStatusApproved, status)

	status, err = ParseDecision("rejected")
	require.NoError(t, err)
	assert.Equal(t, LeaveRequestStatusRejected, status)

	_, err = ParseDecision("pending")
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
}

func TestLeaveTypeRequests_Validate(t *testing.T) {
	assert.NoError(t, (&CreateLeaveTypeRequest{Name: "Sick", TotalDays: 0}).Validate())
	assert.Error(t, (&CreateLeaveTypeRequest{Name: "", TotalDays: 5}).Validate())
	assert.Error(t, (&CreateLeaveTypeRequest{Name: "Sick", TotalDays: -1}).Validate())

	neg := -3
	assert.Error(t, (&UpdateLeaveTypeRequest{TotalDays: &neg}).Validate())
	assert.Error(t, (&UpdateLeaveTypeRequest{}).Validate())
}

func TestListLeaveRequestsQuery_Validate(t *testing.T) {
	q := ListLeaveRequestsQuery{Status: "pending"}
	require.NoError(t, q.Validate())
	require.NotNil(t, q.StatusFilter())
	assert.Equal(t, LeaveRequestStatusPending, *q.StatusFilter())

	assert.Error(t, (&ListLeaveRequestsQuery{Status: "cancelled"}).Validate())
	assert.Nil(t, (&ListLeaveRequestsQuery{}).StatusFilter())
}
