package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) Service {
	t.Helper()
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)
	return svc
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := newService(t)

	tokenString, expiresAt, err := svc.GenerateAccessToken(user.Identity{Username: "alice", Role: user.RoleEmployee})
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	identity, err := IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.Identity{Username: "alice", Role: user.RoleEmployee}, identity)
}

func TestGenerateAccessToken_RejectsInvalidIdentity(t *testing.T) {
	svc := newService(t)
	_, _, err := svc.GenerateAccessToken(user.Identity{Username: "alice", Role: "owner"})
	assert.Error(t, err)
}

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("s", "forever")
	assert.Error(t, err)
}

func TestSSEToken(t *testing.T) {
	svc := newService(t)

	token, expiresIn, err := svc.GenerateSSEToken("bob")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	username, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", username)

	access, _, err := svc.GenerateAccessToken(user.Identity{Username: "bob", Role: user.RoleManager})
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)

	_, err = svc.ValidateSSEToken("not-a-token")
	assert.Error(t, err)
}

func TestIdentityFromClaims(t *testing.T) {
	_, err := IdentityFromClaims(map[string]interface{}{"type": "sse", "sub": "alice", "role": "employee"})
	assert.ErrorIs(t, err, user.ErrInvalidToken)

	_, err = IdentityFromClaims(map[string]interface{}{"type": "access", "role": "employee"})
	assert.ErrorIs(t, err, user.ErrIdentityMissing)
}
