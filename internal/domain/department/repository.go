package department

import "context"

// Directory resolves department membership at query time.
type Directory interface {
	// DepartmentOf returns ErrMemberNotFound when username has no department.
	DepartmentOf(ctx context.Context, username string) (Department, error)
	// ManagerDepartment returns ErrManagerNotAssigned when username administers none.
	ManagerDepartment(ctx context.Context, managerUsername string) (Department, error)
	MembersOf(ctx context.Context, department string) ([]string, error)
	ManagersOf(ctx context.Context, department string) ([]string, error)
}

// DepartmentRepository - interface for departments and their membership tables
type DepartmentRepository interface {
	Directory

	Create(ctx context.Context, department Department) (Department, error)
	GetByName(ctx context.Context, name string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	Delete(ctx context.Context, name string) error

	// AssignMember and AssignManager replace any previous assignment of username.
	AssignMember(ctx context.Context, username, department string) error
	AssignManager(ctx context.Context, username, department string) error
}
