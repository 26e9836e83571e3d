// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/laneboard/internal/ports/secondary"
)

// ClientRepository implements secondary.ClientRepository with SQLite.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new SQLite client repository.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientSelectCols = "id, name, description, status, priority, created_at, updated_at"

// scanClient scans a client row into a ClientRecord.
func scanClient(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ClientRecord, error) {
	record := &secondary.ClientRecord{}
	err := scanner.Scan(
		&record.ID, &record.Name, &record.Description,
		&record.Status, &record.Priority,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Create persists a new client and fills in its generated ID.
func (r *ClientRepository) Create(ctx context.Context, client *secondary.ClientRecord) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO clients (name, description, status, priority) VALUES (?, ?, ?, ?)",
		client.Name, client.Description, client.Status, client.Priority,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated client id: %w", err)
	}
	client.ID = int(id)

	return nil
}

// GetAll retrieves every client, ordered by lane then priority.
func (r *ClientRepository) GetAll(ctx context.Context) ([]*secondary.ClientRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+clientSelectCols+" FROM clients ORDER BY status ASC, priority ASC, id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

// GetByID retrieves a client by its ID.
func (r *ClientRepository) GetByID(ctx context.Context, id int) (*secondary.ClientRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+clientSelectCols+" FROM clients WHERE id = ?",
		id,
	)

	record, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return record, nil
}

// GetByLane retrieves the clients of one lane ordered by the priority
// column's integer value ascending.
func (r *ClientRepository) GetByLane(ctx context.Context, status string) ([]*secondary.ClientRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+clientSelectCols+" FROM clients WHERE status = ? ORDER BY priority ASC, id ASC",
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list lane %s: %w", status, err)
	}
	defer rows.Close()

	return collectClients(rows)
}

// ApplyUpdates applies the batch as a single transaction. If any listed id
// does not exist, the whole batch rolls back and no records change.
func (r *ClientRepository) ApplyUpdates(ctx context.Context, updates []secondary.ClientUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, u := range updates {
		query := "UPDATE clients SET updated_at = CURRENT_TIMESTAMP"
		args := []any{}

		if u.Status != nil {
			query += ", status = ?"
			args = append(args, *u.Status)
		}
		if u.Priority != nil {
			query += ", priority = ?"
			args = append(args, *u.Priority)
		}

		query += " WHERE id = ?"
		args = append(args, u.ID)

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update client %d: %w", u.ID, err)
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			return fmt.Errorf("client %d: %w", u.ID, secondary.ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit updates: %w", err)
	}

	return nil
}

// UpdateFields updates name and/or description.
func (r *ClientRepository) UpdateFields(ctx context.Context, id int, name, description *string) error {
	query := "UPDATE clients SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if name != nil {
		query += ", name = ?"
		args = append(args, *name)
	}
	if description != nil {
		query += ", description = ?"
		args = append(args, *description)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("client %d: %w", id, secondary.ErrNotFound)
	}

	return nil
}

// Delete removes a client from persistence.
func (r *ClientRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("client %d: %w", id, secondary.ErrNotFound)
	}

	return nil
}

func collectClients(rows *sql.Rows) ([]*secondary.ClientRecord, error) {
	var clients []*secondary.ClientRecord
	for rows.Next() {
		record, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}
	return clients, nil
}

// Ensure ClientRepository implements the interface
var _ secondary.ClientRepository = (*ClientRepository)(nil)
