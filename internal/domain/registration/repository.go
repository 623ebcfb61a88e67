package registration

import (
	"context"
	"time"
)

// RegistrationRepository defines the interface for registration data access.
// Both range queries match on the registration's own start instant, bounds
// inclusive.
type RegistrationRepository interface {
	// GetInRange returns the original registrations (CorrectionOfID == nil)
	// of the given type for one employee.
	GetInRange(ctx context.Context, employeeID string, t Type, start, end time.Time) ([]Registration, error)

	// GetCorrectionsInRange returns the correction records
	// (CorrectionOfID != nil) of the given type for one employee.
	GetCorrectionsInRange(ctx context.Context, employeeID string, t Type, start, end time.Time) ([]Registration, error)
}
