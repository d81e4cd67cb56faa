// Command issue-token mints an access token for local testing. Identities
// are issued by an external provider in production.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/config"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
)

func main() {
	username := flag.String("username", "", "username to embed in the token")
	role := flag.String("role", string(user.RoleEmployee), "role: admin, manager or employee")
	ttl := flag.String("ttl", "", "token lifetime, defaults to JWT_ACCESS_EXPIRATION_TIME")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	identity := user.Identity{Username: *username, Role: user.Role(*role)}
	if err := identity.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid identity:", err)
		os.Exit(2)
	}

	expiration := cfg.JWT.AccessExpiration
	if *ttl != "" {
		expiration = *ttl
	}

	svc, err := jwt.NewJWTService(cfg.JWT.Secret, expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating JWT service:", err)
		os.Exit(1)
	}

	token, expiresAt, err := svc.GenerateAccessToken(identity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error signing token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
}
