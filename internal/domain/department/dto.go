package department

import (
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if !validator.IsValidName(r.Name) {
		errs.Add("name", "name may only contain letters, digits, spaces and . _ - @")
	}

	return errs.Err()
}

// ValidateAssignment checks the path parameters of a membership change.
func ValidateAssignment(departmentName, username string) error {
	var errs validator.ValidationErrors

	if !validator.IsValidName(departmentName) {
		errs.Add("department", "department is invalid")
	}
	if !validator.IsValidName(username) {
		errs.Add("username", "username is invalid")
	}

	return errs.Err()
}

type DepartmentResponse struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Members   []string  `json:"members,omitempty"`
	Managers  []string  `json:"managers,omitempty"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{Name: d.Name, CreatedAt: d.CreatedAt}
}

func NewDetailResponse(d Detail) DepartmentResponse {
	resp := NewDepartmentResponse(d.Department)
	resp.Members = d.Members
	resp.Managers = d.Managers
	return resp
}
