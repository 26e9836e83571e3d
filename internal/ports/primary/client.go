// Package primary defines the primary ports (driving adapters) for the application.
// The HTTP API and the CLI both drive the application through these interfaces.
package primary

import "context"

// ClientService defines the primary port for client operations.
type ClientService interface {
	// ListClients retrieves every client, ordered by lane then priority.
	ListClients(ctx context.Context) ([]Client, error)

	// GetClient retrieves a client by ID.
	GetClient(ctx context.Context, id int) (*Client, error)

	// LaneClients retrieves one lane ordered by priority ascending.
	LaneClients(ctx context.Context, status string) ([]Client, error)

	// CreateClient creates a new client, appended to the bottom of its lane
	// unless an explicit priority is requested.
	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)

	// UpdateClient updates a client's name and/or description.
	UpdateClient(ctx context.Context, req UpdateClientRequest) (*Client, error)

	// Reorder moves a client to a new lane and/or priority, renumbering the
	// affected lanes so every lane keeps a dense 1..n priority sequence.
	// Returns the full updated record set.
	Reorder(ctx context.Context, req ReorderRequest) ([]Client, error)

	// DeleteClient removes a client and compacts the lane it leaves.
	// Returns the full updated record set.
	DeleteClient(ctx context.Context, id int) ([]Client, error)
}

// Client is the client representation exposed to callers.
type Client struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    int    `json:"priority"`
}

// CreateClientRequest contains parameters for creating a client.
type CreateClientRequest struct {
	Name        string
	Description string
	Status      string // Optional, defaults to backlog
	Priority    *int   // Optional, defaults to bottom of lane
}

// UpdateClientRequest contains parameters for editing client fields.
type UpdateClientRequest struct {
	ID          int
	Name        *string
	Description *string
}

// ReorderRequest contains parameters for a lane/priority move.
// Nil fields mean "unchanged".
type ReorderRequest struct {
	ID       int
	Status   *string
	Priority *int
}
