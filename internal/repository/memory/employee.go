package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/timelog-hq/timelog-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu   sync.RWMutex
	rows map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		rows: make(map[string]employee.Employee),
	}
}

// Add stores an employee, assigning an id when none is set, and returns the
// stored record.
func (r *EmployeeRepository) Add(emp employee.Employee) employee.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()

	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	r.rows[emp.ID] = emp
	return emp
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepository) SetDefaultOverviewQuery(_ context.Context, employeeID, query string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.rows[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.DefaultOverviewQuery = &query
	r.rows[employeeID] = emp
	return nil
}
