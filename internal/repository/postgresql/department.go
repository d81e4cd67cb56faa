package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO departments (name, created_at)
		VALUES ($1, NOW())
		RETURNING created_at
	`, d.Name).Scan(&d.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return department.Department{}, department.ErrDepartmentExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) GetByName(ctx context.Context, name string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	var d department.Department
	err := q.QueryRow(ctx, `SELECT name, created_at FROM departments WHERE name = $1`, name).Scan(&d.Name, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT name, created_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	out := make([]department.Department, 0)
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return out, nil
}

func (r *departmentRepositoryImpl) Delete(ctx context.Context, name string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE name = $1`, name)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return department.ErrDepartmentNotEmpty
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) AssignMember(ctx context.Context, username, departmentName string) error {
	return r.assign(ctx, "department_members", username, departmentName)
}

func (r *departmentRepositoryImpl) AssignManager(ctx context.Context, username, departmentName string) error {
	return r.assign(ctx, "department_managers", username, departmentName)
}

func (r *departmentRepositoryImpl) assign(ctx context.Context, table, username, departmentName string) error {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO %s (username, department)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET department = EXCLUDED.department
	`, table)
	if _, err := q.Exec(ctx, query, username, departmentName); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return department.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to assign %s to department: %w", username, err)
	}
	return nil
}

func (r *departmentRepositoryImpl) DepartmentOf(ctx context.Context, username string) (department.Department, error) {
	return r.lookup(ctx, "department_members", username, department.ErrMemberNotFound)
}

func (r *departmentRepositoryImpl) ManagerDepartment(ctx context.Context, managerUsername string) (department.Department, error) {
	return r.lookup(ctx, "department_managers", managerUsername, department.ErrManagerNotAssigned)
}

func (r *departmentRepositoryImpl) lookup(ctx context.Context, table, username string, notFound error) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	var d department.Department
	query := fmt.Sprintf(`
		SELECT d.name, d.created_at
		FROM %s m
		INNER JOIN departments d ON d.name = m.department
		WHERE m.username = $1
	`, table)
	if err := q.QueryRow(ctx, query, username).Scan(&d.Name, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, notFound
		}
		return department.Department{}, fmt.Errorf("failed to resolve department of %s: %w", username, err)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) MembersOf(ctx context.Context, departmentName string) ([]string, error) {
	return r.usersOf(ctx, "department_members", departmentName)
}

func (r *departmentRepositoryImpl) ManagersOf(ctx context.Context, departmentName string) ([]string, error) {
	return r.usersOf(ctx, "department_managers", departmentName)
}

func (r *departmentRepositoryImpl) usersOf(ctx context.Context, table, departmentName string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, fmt.Sprintf(`SELECT username FROM %s WHERE department = $1 ORDER BY username`, table), departmentName)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	usernames, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", table, err)
	}
	if usernames == nil {
		usernames = []string{}
	}
	return usernames, nil
}
