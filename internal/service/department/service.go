package department

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/apperror"
)

type departmentServiceImpl struct {
	department.Directory
	repo department.DepartmentRepository
}

func NewDepartmentService(repo department.DepartmentRepository) department.DepartmentService {
	return &departmentServiceImpl{
		Directory: repo,
		repo:      repo,
	}
}

func (s *departmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}

	d, err := s.repo.Create(ctx, department.Department{Name: req.Name})
	if err != nil {
		return department.Department{}, passthrough("create department", err)
	}

	slog.InfoContext(ctx, "department created", "department", d.Name)
	return d, nil
}

func (s *departmentServiceImpl) List(ctx context.Context) ([]department.Department, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

func (s *departmentServiceImpl) Get(ctx context.Context, name string) (department.Detail, error) {
	d, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return department.Detail{}, passthrough("get department", err)
	}

	members, err := s.repo.MembersOf(ctx, name)
	if err != nil {
		return department.Detail{}, fmt.Errorf("failed to list department members: %w", err)
	}
	managers, err := s.repo.ManagersOf(ctx, name)
	if err != nil {
		return department.Detail{}, fmt.Errorf("failed to list department managers: %w", err)
	}

	return department.Detail{Department: d, Members: members, Managers: managers}, nil
}

func (s *departmentServiceImpl) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return passthrough("delete department", err)
	}

	slog.InfoContext(ctx, "department deleted", "department", name)
	return nil
}

func (s *departmentServiceImpl) AssignMember(ctx context.Context, departmentName, username string) error {
	if err := department.ValidateAssignment(departmentName, username); err != nil {
		return err
	}
	if err := s.repo.AssignMember(ctx, username, departmentName); err != nil {
		return passthrough("assign member", err)
	}

	slog.InfoContext(ctx, "department member assigned", "department", departmentName, "username", username)
	return nil
}

func (s *departmentServiceImpl) AssignManager(ctx context.Context, departmentName, username string) error {
	if err := department.ValidateAssignment(departmentName, username); err != nil {
		return err
	}
	if err := s.repo.AssignManager(ctx, username, departmentName); err != nil {
		return passthrough("assign manager", err)
	}

	slog.InfoContext(ctx, "department manager assigned", "department", departmentName, "username", username)
	return nil
}

func (s *departmentServiceImpl) Mine(ctx context.Context, actor user.Identity) (department.Department, error) {
	var (
		d   department.Department
		err error
	)
	if actor.IsManager() {
		d, err = s.repo.ManagerDepartment(ctx, actor.Username)
	} else {
		d, err = s.repo.DepartmentOf(ctx, actor.Username)
	}
	if err != nil {
		return department.Department{}, passthrough("resolve department", err)
	}
	return d, nil
}

// passthrough keeps classified domain errors intact and wraps the rest.
func passthrough(op string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
