package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
)

type departmentRepositoryImpl struct {
	s *Store
}

func NewDepartmentRepository(s *Store) department.DepartmentRepository {
	return &departmentRepositoryImpl{s: s}
}

func (r *departmentRepositoryImpl) Create(_ context.Context, d department.Department) (department.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.departments[d.Name]; ok {
		return department.Department{}, department.ErrDepartmentExists
	}
	d.CreatedAt = r.s.now()
	r.s.departments[d.Name] = d
	return d, nil
}

func (r *departmentRepositoryImpl) GetByName(_ context.Context, name string) (department.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.departments[name]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (r *departmentRepositoryImpl) List(_ context.Context) ([]department.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]department.Department, 0, len(r.s.departments))
	for _, d := range r.s.departments {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *departmentRepositoryImpl) Delete(_ context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.departments[name]; !ok {
		return department.ErrDepartmentNotFound
	}
	for _, dept := range r.s.members {
		if dept == name {
			return department.ErrDepartmentNotEmpty
		}
	}
	for _, dept := range r.s.managers {
		if dept == name {
			return department.ErrDepartmentNotEmpty
		}
	}
	delete(r.s.departments, name)
	return nil
}

func (r *departmentRepositoryImpl) AssignMember(_ context.Context, username, departmentName string) error {
	return r.assign(r.s.members, username, departmentName)
}

func (r *departmentRepositoryImpl) AssignManager(_ context.Context, username, departmentName string) error {
	return r.assign(r.s.managers, username, departmentName)
}

func (r *departmentRepositoryImpl) assign(table map[string]string, username, departmentName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.departments[departmentName]; !ok {
		return department.ErrDepartmentNotFound
	}
	table[username] = departmentName
	return nil
}

func (r *departmentRepositoryImpl) DepartmentOf(_ context.Context, username string) (department.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	name, ok := r.s.members[username]
	if !ok {
		return department.Department{}, department.ErrMemberNotFound
	}
	return r.s.departments[name], nil
}

func (r *departmentRepositoryImpl) ManagerDepartment(_ context.Context, managerUsername string) (department.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	name, ok := r.s.managers[managerUsername]
	if !ok {
		return department.Department{}, department.ErrManagerNotAssigned
	}
	return r.s.departments[name], nil
}

func (r *departmentRepositoryImpl) MembersOf(_ context.Context, departmentName string) ([]string, error) {
	return r.usersOf(r.s.members, departmentName), nil
}

func (r *departmentRepositoryImpl) ManagersOf(_ context.Context, departmentName string) ([]string, error) {
	return r.usersOf(r.s.managers, departmentName), nil
}

func (r *departmentRepositoryImpl) usersOf(table map[string]string, departmentName string) []string {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]string, 0)
	for username, dept := range table {
		if dept == departmentName {
			out = append(out, username)
		}
	}
	sort.Strings(out)
	return out
}
