package department

import (
	"context"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
)

type DepartmentService interface {
	Directory

	Create(ctx context.Context, req CreateDepartmentRequest) (Department, error)
	List(ctx context.Context) ([]Department, error)
	Get(ctx context.Context, name string) (Detail, error)
	Delete(ctx context.Context, name string) error
	AssignMember(ctx context.Context, departmentName, username string) error
	AssignManager(ctx context.Context, departmentName, username string) error

	// Mine resolves the caller's department: the administered one for
	// managers, the member one otherwise.
	Mine(ctx context.Context, actor user.Identity) (Department, error)
}
