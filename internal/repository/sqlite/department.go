package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
)

type departmentRepositoryImpl struct {
	db *DB
}

func NewDepartmentRepository(db *DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func scanDepartment(row interface{ Scan(...interface{}) error }) (department.Department, error) {
	var (
		d         department.Department
		createdAt string
	)
	if err := row.Scan(&d.Name, &createdAt); err != nil {
		return department.Department{}, err
	}
	var err error
	if d.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return department.Department{}, fmt.Errorf("invalid created_at: %w", err)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	created, err := scanDepartment(r.db.QueryRowContext(ctx, `
		INSERT INTO departments (name, created_at) VALUES (?, ?)
		RETURNING name, created_at
	`, d.Name, now()))
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	return created, nil
}

func (r *departmentRepositoryImpl) GetByName(ctx context.Context, name string) (department.Department, error) {
	d, err := scanDepartment(r.db.QueryRowContext(ctx, `SELECT name, created_at FROM departments WHERE name = ?`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	return d, nil
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, created_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	out := make([]department.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE name = ?`, name)
	if err != nil {
		if isForeignKeyViolation(err) {
			return department.ErrDepartmentNotEmpty
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
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
	query := fmt.Sprintf(`
		INSERT INTO %s (username, department) VALUES (?, ?)
		ON CONFLICT (username) DO UPDATE SET department = excluded.department
	`, table)
	if _, err := r.db.ExecContext(ctx, query, username, departmentName); err != nil {
		if isForeignKeyViolation(err) {
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
	query := fmt.Sprintf(`
		SELECT d.name, d.created_at
		FROM %s m
		INNER JOIN departments d ON d.name = m.department
		WHERE m.username = ?
	`, table)
	d, err := scanDepartment(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`SELECT username FROM %s WHERE department = ? ORDER BY username`, table), departmentName)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	usernames := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		usernames = append(usernames, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return usernames, nil
}
