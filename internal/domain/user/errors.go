package user

import "github.com/cmlabs-hris/leave-backend-go/internal/pkg/apperror"

var (
	ErrInvalidToken            = apperror.Unauthorized("invalid or missing access token")
	ErrIdentityMissing         = apperror.Unauthorized("identity missing from token")
	ErrManagerAccessRequired   = apperror.Forbidden("manager access required")
	ErrInsufficientPermissions = apperror.Forbidden("insufficient permissions")
)
