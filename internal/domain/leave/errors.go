package leave

import "github.com/cmlabs-hris/leave-backend-go/internal/pkg/apperror"

var (
	ErrLeaveRequestNotFound = apperror.NotFound("leave request not found")
	ErrNotRequestOwner      = apperror.Forbidden("only the owner can modify this leave request")
	ErrNotDepartmentManager = apperror.Forbidden("leave request belongs to another department")
	ErrRequestNotPending    = apperror.InvalidState("leave request is no longer pending")

	ErrLeaveTypeNotFound = apperror.NotFound("leave type not found")
	ErrLeaveTypeExists   = apperror.Conflict("leave type already exists")
	ErrLeaveTypeInUse    = apperror.Conflict("leave type is referenced by leave requests")
)
