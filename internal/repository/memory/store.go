// Package memory provides mutex-guarded in-memory repositories, used by
// DB_DRIVER=memory and by service tests.
package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
)

// Store holds all tables behind one lock so that cross-table reads such as
// the orphan scan see a consistent snapshot.
type Store struct {
	mu sync.RWMutex

	leaveTypes  map[string]leave.LeaveType
	requests    map[string]leave.LeaveRequest
	departments map[string]department.Department
	members     map[string]string // username -> department
	managers    map[string]string // manager username -> department

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		leaveTypes:  make(map[string]leave.LeaveType),
		requests:    make(map[string]leave.LeaveRequest),
		departments: make(map[string]department.Department),
		members:     make(map[string]string),
		managers:    make(map[string]string),
		now:         func() time.Time { return time.Now().UTC() },
	}
}
