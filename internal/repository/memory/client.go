package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/timelog-hq/timelog-backend-go/internal/domain/client"
)

type ClientRepository struct {
	mu     sync.RWMutex
	rows   map[string]client.Client
	access map[string][]string
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{
		rows:   make(map[string]client.Client),
		access: make(map[string][]string),
	}
}

// Add stores a client, assigning an id when none is set, and returns the
// stored record.
func (r *ClientRepository) Add(c client.Client) client.Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.rows[c.ID] = c
	return c
}

// Grant makes a client visible to an employee.
func (r *ClientRepository) Grant(employeeID, clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.access[employeeID] = append(r.access[employeeID], clientID)
}

func (r *ClientRepository) GetByID(_ context.Context, id string) (client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.rows[id]
	if !ok {
		return client.Client{}, client.ErrClientNotFound
	}
	return c, nil
}

func (r *ClientRepository) AccessibleClientIDs(_ context.Context, employeeID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.access[employeeID]
	result := make([]string, len(ids))
	copy(result, ids)
	return result, nil
}
