package user

import "github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"

type Role string

const (
	RoleAdmin    Role = "admin"    // Maintains leave types and departments
	RoleManager  Role = "manager"  // Decides requests of one department
	RoleEmployee Role = "employee" // Files own leave requests
)

// Identity is the verified caller handed over by the identity provider.
type Identity struct {
	Username string
	Role     Role
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Validate checks that the identity carries a usable username and a known role.
func (i Identity) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidName(i.Username) {
		errs.Add("username", "username is invalid")
	}
	if !i.Role.IsValid() {
		errs.Add("role", "role must be one of admin, manager, employee")
	}
	return errs.Err()
}

func (i Identity) IsManager() bool {
	return i.Role == RoleManager
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
