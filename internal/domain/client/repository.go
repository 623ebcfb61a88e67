package client

import "context"

// ClientRepository defines the interface for client data access.
type ClientRepository interface {
	// GetByID returns the client with the given id, or ErrClientNotFound.
	GetByID(ctx context.Context, id string) (Client, error)

	// AccessibleClientIDs returns the ids of the clients the employee is
	// allowed to see registrations for.
	AccessibleClientIDs(ctx context.Context, employeeID string) ([]string, error)
}
