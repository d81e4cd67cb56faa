package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type identityKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the caller identity in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			identity, err := jwt.IdentityFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			httplog.SetAttrs(r.Context(), slog.String("user.name", identity.Username), slog.String("user.roles", string(identity.Role)))
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		}
		return http.HandlerFunc(hfn)
	}
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity user.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity stored by AuthRequired.
func IdentityFrom(ctx context.Context) (user.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(user.Identity)
	return identity, ok
}
