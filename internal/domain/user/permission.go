package user

type Permission string

const (
	// Leave requests
	PermissionLeaveViewOwn        Permission = "leave.view_own"
	PermissionLeaveCreate         Permission = "leave.create"
	PermissionLeaveViewDepartment Permission = "leave.view_department"
	PermissionLeaveViewAll        Permission = "leave.view_all"
	PermissionLeaveApprove        Permission = "leave.approve"

	// Registry and directory
	PermissionLeaveManageTypes  Permission = "leave.manage_types"
	PermissionDepartmentManage  Permission = "department.manage"
	PermissionDepartmentViewAll Permission = "department.view_all"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionLeaveViewOwn,
		PermissionLeaveViewAll,
		PermissionLeaveManageTypes,
		PermissionDepartmentManage,
		PermissionDepartmentViewAll,
	},
	RoleManager: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewDepartment,
		PermissionLeaveApprove,
		PermissionDepartmentViewAll,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
