package department

import "github.com/cmlabs-hris/leave-backend-go/internal/pkg/apperror"

var (
	ErrDepartmentNotFound = apperror.NotFound("department not found")
	ErrDepartmentExists   = apperror.Conflict("department already exists")
	ErrDepartmentNotEmpty = apperror.Conflict("department still has members or managers")
	ErrMemberNotFound     = apperror.NotFound("user is not assigned to a department")
	ErrManagerNotAssigned = apperror.NotFound("manager is not assigned to a department")
)
