package user

import (
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleEmployee, PermissionLeaveCreate))
	assert.False(t, HasPermission(RoleEmployee, PermissionLeaveApprove))
	assert.True(t, HasPermission(RoleManager, PermissionLeaveApprove))
	assert.True(t, HasPermission(RoleManager, PermissionReportsView))
	assert.False(t, HasPermission(RoleManager, PermissionLeaveManageTypes))
	assert.True(t, HasPermission(RoleAdmin, PermissionDepartmentManage))
	assert.False(t, HasPermission(RoleAdmin, PermissionLeaveApprove))
	assert.False(t, HasPermission(Role("owner"), PermissionLeaveViewOwn))
}

func TestIdentityValidate(t *testing.T) {
	assert.NoError(t, Identity{Username: "alice", Role: RoleEmployee}.Validate())

	err := Identity{Username: "", Role: "ceo"}.Validate()
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
	assert.Contains(t, err.Error(), "username")
	assert.Contains(t, err.Error(), "role")
}
