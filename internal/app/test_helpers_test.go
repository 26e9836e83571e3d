package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/laneboard/internal/ports/secondary"
)

// mockClientRepository is an in-memory ClientRepository. ApplyUpdates is
// all-or-nothing like the real adapter: every referenced ID is checked
// before any record changes.
type mockClientRepository struct {
	clients map[int]*secondary.ClientRecord
	nextID  int

	// applyErr, when set, makes ApplyUpdates fail without touching state.
	applyErr error
}

func newMockClientRepository() *mockClientRepository {
	return &mockClientRepository{
		clients: make(map[int]*secondary.ClientRecord),
		nextID:  1,
	}
}

// add seeds a client directly, bypassing the service layer.
func (m *mockClientRepository) add(name, status string, priority int) int {
	id := m.nextID
	m.nextID++
	m.clients[id] = &secondary.ClientRecord{
		ID:       id,
		Name:     name,
		Status:   status,
		Priority: priority,
	}
	return id
}

// snapshot returns id -> "status/priority" for whole-state assertions.
func (m *mockClientRepository) snapshot() map[int]string {
	out := make(map[int]string, len(m.clients))
	for id, c := range m.clients {
		out[id] = fmt.Sprintf("%s/%d", c.Status, c.Priority)
	}
	return out
}

func (m *mockClientRepository) Create(ctx context.Context, record *secondary.ClientRecord) error {
	record.ID = m.nextID
	m.nextID++
	clone := *record
	m.clients[record.ID] = &clone
	return nil
}

func (m *mockClientRepository) GetAll(ctx context.Context) ([]*secondary.ClientRecord, error) {
	records := make([]*secondary.ClientRecord, 0, len(m.clients))
	for _, c := range m.clients {
		clone := *c
		records = append(records, &clone)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Status != records[j].Status {
			return records[i].Status < records[j].Status
		}
		if records[i].Priority != records[j].Priority {
			return records[i].Priority < records[j].Priority
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (m *mockClientRepository) GetByID(ctx context.Context, id int) (*secondary.ClientRecord, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %d: %w", id, secondary.ErrNotFound)
	}
	clone := *c
	return &clone, nil
}

func (m *mockClientRepository) GetByLane(ctx context.Context, status string) ([]*secondary.ClientRecord, error) {
	var records []*secondary.ClientRecord
	for _, c := range m.clients {
		if c.Status == status {
			clone := *c
			records = append(records, &clone)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Priority != records[j].Priority {
			return records[i].Priority < records[j].Priority
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (m *mockClientRepository) ApplyUpdates(ctx context.Context, updates []secondary.ClientUpdate) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	for _, u := range updates {
		if _, ok := m.clients[u.ID]; !ok {
			return fmt.Errorf("client %d: %w", u.ID, secondary.ErrNotFound)
		}
	}
	for _, u := range updates {
		c := m.clients[u.ID]
		if u.Status != nil {
			c.Status = *u.Status
		}
		if u.Priority != nil {
			c.Priority = *u.Priority
		}
	}
	return nil
}

func (m *mockClientRepository) UpdateFields(ctx context.Context, id int, name, description *string) error {
	c, ok := m.clients[id]
	if !ok {
		return fmt.Errorf("client %d: %w", id, secondary.ErrNotFound)
	}
	if name != nil {
		c.Name = *name
	}
	if description != nil {
		c.Description = *description
	}
	return nil
}

func (m *mockClientRepository) Delete(ctx context.Context, id int) error {
	if _, ok := m.clients[id]; !ok {
		return fmt.Errorf("client %d: %w", id, secondary.ErrNotFound)
	}
	delete(m.clients, id)
	return nil
}

var _ secondary.ClientRepository = (*mockClientRepository)(nil)
