package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
)

// RequireManager requires manager role
func RequireManager(next http.Handler) http.Handler {
	return requireRole(user.ErrManagerAccessRequired, user.RoleManager)(next)
}

// RequireRole admits callers holding any of roles.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return requireRole(user.ErrInsufficientPermissions, roles...)
}

func requireRole(denied error, roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				response.HandleError(w, user.ErrIdentityMissing)
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.HandleError(w, denied)
		})
	}
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				response.HandleError(w, user.ErrIdentityMissing)
				return
			}

			if !user.HasPermission(identity.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, identity.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
