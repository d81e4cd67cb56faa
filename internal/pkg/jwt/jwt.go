package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"

	sseTokenLifetime = 5 * time.Minute
)

type Service interface {
	GenerateAccessToken(identity user.Identity) (token string, expiresAt int64, err error)
	GenerateSSEToken(username string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (username string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpirationTime: exp,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(identity user.Identity) (token string, expiresAt int64, err error) {
	if err := identity.Validate(); err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  identity.Username,
		"role": string(identity.Role),
		"type": TokenTypeAccess,
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken issues a short-lived token that EventSource clients pass
// as a query parameter.
func (j *JWTService) GenerateSSEToken(username string) (token string, expiresIn int, err error) {
	expiresAt := time.Now().Add(sseTokenLifetime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  username,
		"type": TokenTypeSSE,
		"exp":  expiresAt,
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int(sseTokenLifetime.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (username string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeSSE {
		return "", jwt.ErrInvalidJWT()
	}
	if token.Subject() == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return token.Subject(), nil
}

// IdentityFromClaims extracts the caller identity from verified access token claims.
func IdentityFromClaims(claims map[string]interface{}) (user.Identity, error) {
	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeAccess {
		return user.Identity{}, user.ErrInvalidToken
	}
	username, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)

	identity := user.Identity{Username: username, Role: user.Role(role)}
	if err := identity.Validate(); err != nil {
		return user.Identity{}, user.ErrIdentityMissing
	}
	return identity, nil
}
