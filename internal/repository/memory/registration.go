// Package memory provides in-memory implementations of the collaborator
// contracts, used by the test suite and as a seam for hosts without a
// database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timelog-hq/timelog-backend-go/internal/domain/registration"
)

type RegistrationRepository struct {
	mu   sync.RWMutex
	rows map[string]registration.Registration
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{
		rows: make(map[string]registration.Registration),
	}
}

// Add stores a registration, assigning an id when none is set, and returns
// the stored record.
func (r *RegistrationRepository) Add(reg registration.Registration) registration.Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	r.rows[reg.ID] = reg
	return reg
}

// GetByID returns the registration with the given id, or
// registration.ErrRegistrationNotFound.
func (r *RegistrationRepository) GetByID(_ context.Context, id string) (registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.rows[id]
	if !ok {
		return registration.Registration{}, registration.ErrRegistrationNotFound
	}
	return reg, nil
}

// GetInRange returns the original registrations (no CorrectionOfID) of the
// given type for one employee whose start falls inside [start, end].
func (r *RegistrationRepository) GetInRange(_ context.Context, employeeID string, t registration.Type, start, end time.Time) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []registration.Registration
	for _, reg := range r.rows {
		if reg.IsCorrection() {
			continue
		}
		if matchesRange(reg, employeeID, t, start, end) {
			result = append(result, reg)
		}
	}
	return result, nil
}

// GetCorrectionsInRange returns the correction records of the given type for
// one employee whose start falls inside [start, end].
func (r *RegistrationRepository) GetCorrectionsInRange(_ context.Context, employeeID string, t registration.Type, start, end time.Time) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []registration.Registration
	for _, reg := range r.rows {
		if !reg.IsCorrection() {
			continue
		}
		if matchesRange(reg, employeeID, t, start, end) {
			result = append(result, reg)
		}
	}
	return result, nil
}

func matchesRange(reg registration.Registration, employeeID string, t registration.Type, start, end time.Time) bool {
	if reg.EmployeeID != employeeID || reg.Type != t {
		return false
	}
	return !reg.Start.Before(start) && !reg.Start.After(end)
}
