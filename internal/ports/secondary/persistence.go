// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a client id does not resolve to a record.
// Adapters wrap it with detail; callers match with errors.Is.
var ErrNotFound = errors.New("client not found")

// ClientRepository defines the secondary port for client persistence.
type ClientRepository interface {
	// Create persists a new client and fills in its generated ID.
	Create(ctx context.Context, client *ClientRecord) error

	// GetAll retrieves every client, ordered by lane then priority.
	GetAll(ctx context.Context) ([]*ClientRecord, error)

	// GetByID retrieves a client by its ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int) (*ClientRecord, error)

	// GetByLane retrieves the clients of one lane ordered by priority ascending.
	GetByLane(ctx context.Context, status string) ([]*ClientRecord, error)

	// ApplyUpdates applies the given status/priority updates as a single
	// atomic transaction: either every listed record updates or none do.
	// If any listed id does not exist the whole batch fails with ErrNotFound.
	ApplyUpdates(ctx context.Context, updates []ClientUpdate) error

	// UpdateFields updates name and/or description. Returns ErrNotFound if absent.
	UpdateFields(ctx context.Context, id int, name, description *string) error

	// Delete removes a client. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int) error
}

// ClientRecord represents a client as stored in persistence.
type ClientRecord struct {
	ID          int
	Name        string
	Description string
	Status      string
	Priority    int
	CreatedAt   string
	UpdatedAt   string
}

// ClientUpdate is one entry of an ApplyUpdates batch. Nil fields are left
// untouched.
type ClientUpdate struct {
	ID       int
	Status   *string
	Priority *int
}
