package employee

import "context"

// EmployeeRepository defines the interface for employee data access.
type EmployeeRepository interface {
	// GetByID returns the employee with the given id, or
	// ErrEmployeeNotFound.
	GetByID(ctx context.Context, id string) (Employee, error)

	// SetDefaultOverviewQuery stores the overview query string the employee
	// wants replayed as their default. Last writer wins.
	SetDefaultOverviewQuery(ctx context.Context, employeeID, query string) error
}
