package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/example/laneboard/internal/core/lane"
	"github.com/example/laneboard/internal/models"
	"github.com/example/laneboard/internal/ports/primary"
	"github.com/example/laneboard/internal/ports/secondary"
)

// ClientServiceImpl implements the ClientService interface.
//
// A single mutex serializes every mutating operation across its whole
// read-compute-write sequence. The store transaction is atomic on its own,
// but two concurrent reorders of the same lane must not interleave their
// snapshot reads with each other's writes.
type ClientServiceImpl struct {
	clientRepo secondary.ClientRepository
	opts       lane.Options

	mu sync.Mutex
}

// NewClientService creates a new ClientService with injected dependencies.
func NewClientService(clientRepo secondary.ClientRepository, opts lane.Options) *ClientServiceImpl {
	return &ClientServiceImpl{
		clientRepo: clientRepo,
		opts:       opts,
	}
}

// ListClients retrieves every client.
func (s *ClientServiceImpl) ListClients(ctx context.Context) ([]primary.Client, error) {
	records, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return recordsToClients(records), nil
}

// GetClient retrieves a client by ID.
func (s *ClientServiceImpl) GetClient(ctx context.Context, id int) (*primary.Client, error) {
	record, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, lane.NewInvalidID(id)
		}
		return nil, err
	}
	client := recordToClient(record)
	return &client, nil
}

// LaneClients retrieves one lane ordered by priority ascending.
func (s *ClientServiceImpl) LaneClients(ctx context.Context, status string) ([]primary.Client, error) {
	if !models.ValidLane(status) {
		return nil, lane.NewInvalidStatus(status)
	}
	records, err := s.clientRepo.GetByLane(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list lane %s: %w", status, err)
	}
	return recordsToClients(records), nil
}

// Reorder moves a client to a new lane and/or priority.
//
// The whole lane state is read as one snapshot, the full target assignment
// is computed in memory, and the result is written as one atomic batch.
func (s *ClientServiceImpl) Reorder(ctx context.Context, req primary.ReorderRequest) ([]primary.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.clientRepo.GetByID(ctx, req.ID)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to read client: %w", err)
	}

	guard := lane.CanReorder(lane.ReorderContext{
		ClientID:     req.ID,
		ClientExists: record != nil,
		Status:       req.Status,
		StatusValid:  req.Status != nil && models.ValidLane(*req.Status),
		Priority:     req.Priority,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	targetStatus := record.Status
	if req.Status != nil {
		targetStatus = *req.Status
	}
	laneChanged := targetStatus != record.Status

	switch {
	case req.Priority != nil:
		if err := s.moveLocked(ctx, record, targetStatus, *req.Priority, laneChanged); err != nil {
			return nil, err
		}

	case laneChanged && targetStatus == models.StatusComplete:
		// Mark-complete shortcut: append to the bottom of the complete lane.
		target, err := s.clientRepo.GetByLane(ctx, targetStatus)
		if err != nil {
			return nil, fmt.Errorf("failed to read lane %s: %w", targetStatus, err)
		}
		if len(target) == 0 {
			return nil, lane.NewEmptyLane(targetStatus)
		}
		bottom := target[len(target)-1].Priority + 1
		if err := s.moveLocked(ctx, record, targetStatus, bottom, true); err != nil {
			return nil, err
		}

	case laneChanged:
		if err := s.changeLaneNoPriority(ctx, record, targetStatus); err != nil {
			return nil, err
		}

	default:
		// Neither status nor priority changes anything: pass through.
	}

	return s.ListClients(ctx)
}

// moveLocked plans and applies an explicit-priority move. Caller holds s.mu.
func (s *ClientServiceImpl) moveLocked(ctx context.Context, record *secondary.ClientRecord, targetStatus string, priority int, laneChanged bool) error {
	target, err := s.clientRepo.GetByLane(ctx, targetStatus)
	if err != nil {
		return fmt.Errorf("failed to read lane %s: %w", targetStatus, err)
	}

	in := lane.MoveInput{
		MovedID:        record.ID,
		TargetStatus:   targetStatus,
		TargetPriority: priority,
		Target:         recordsToCards(target),
		LaneChanged:    laneChanged,
	}
	if laneChanged {
		departed, err := s.clientRepo.GetByLane(ctx, record.Status)
		if err != nil {
			return fmt.Errorf("failed to read lane %s: %w", record.Status, err)
		}
		in.Departed = recordsToCards(departed)
		in.DepartedStatus = record.Status
	}

	return s.applyPlan(ctx, lane.PlanMove(in, s.opts))
}

// changeLaneNoPriority handles a status change without an explicit priority
// to a non-complete lane. Historically this was a bare status write leaving
// both lanes unrenumbered; in corrected mode the client is appended to the
// bottom of the target lane and the departed lane is compacted.
func (s *ClientServiceImpl) changeLaneNoPriority(ctx context.Context, record *secondary.ClientRecord, targetStatus string) error {
	if s.opts.LegacyGaps {
		status := targetStatus
		return s.applyPlan(ctx, nil, secondary.ClientUpdate{ID: record.ID, Status: &status})
	}

	target, err := s.clientRepo.GetByLane(ctx, targetStatus)
	if err != nil {
		return fmt.Errorf("failed to read lane %s: %w", targetStatus, err)
	}
	departed, err := s.clientRepo.GetByLane(ctx, record.Status)
	if err != nil {
		return fmt.Errorf("failed to read lane %s: %w", record.Status, err)
	}

	plan := lane.PlanMove(lane.MoveInput{
		MovedID:        record.ID,
		TargetStatus:   targetStatus,
		TargetPriority: len(target) + 1,
		Target:         recordsToCards(target),
		Departed:       recordsToCards(departed),
		DepartedStatus: record.Status,
		LaneChanged:    true,
	}, s.opts)

	return s.applyPlan(ctx, plan)
}

// CreateClient creates a new client. Without an explicit priority the client
// lands at the bottom of its lane; with one, the lane is renumbered around it.
func (s *ClientServiceImpl) CreateClient(ctx context.Context, req primary.CreateClientRequest) (*primary.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := req.Status
	if status == "" {
		status = models.StatusBacklog
	}

	guard := lane.CanCreate(lane.CreateContext{
		Name:        req.Name,
		Status:      status,
		StatusValid: models.ValidLane(status),
		Priority:    req.Priority,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	target, err := s.clientRepo.GetByLane(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to read lane %s: %w", status, err)
	}

	record := &secondary.ClientRecord{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		Priority:    len(target) + 1,
	}
	if err := s.clientRepo.Create(ctx, record); err != nil {
		return nil, lane.NewStoreFailed(err)
	}

	// An explicit priority is a move of the freshly appended client.
	if req.Priority != nil && *req.Priority != record.Priority {
		if err := s.moveLocked(ctx, record, status, *req.Priority, false); err != nil {
			return nil, err
		}
	}

	created, err := s.clientRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created client: %w", err)
	}

	client := recordToClient(created)
	return &client, nil
}

// UpdateClient updates a client's name and/or description.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, req primary.UpdateClientRequest) (*primary.Client, error) {
	if req.Name != nil || req.Description != nil {
		if err := s.clientRepo.UpdateFields(ctx, req.ID, req.Name, req.Description); err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return nil, lane.NewInvalidID(req.ID)
			}
			return nil, lane.NewStoreFailed(err)
		}
	}

	record, err := s.clientRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, lane.NewInvalidID(req.ID)
		}
		return nil, err
	}

	client := recordToClient(record)
	return &client, nil
}

// DeleteClient removes a client and compacts the lane it leaves.
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, id int) ([]primary.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, lane.NewInvalidID(id)
		}
		return nil, fmt.Errorf("failed to read client: %w", err)
	}

	departed, err := s.clientRepo.GetByLane(ctx, record.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to read lane %s: %w", record.Status, err)
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return nil, lane.NewStoreFailed(err)
	}

	plan := lane.PlanRemoval(recordsToCards(departed), id, record.Status)
	if err := s.applyPlan(ctx, plan); err != nil {
		return nil, err
	}

	return s.ListClients(ctx)
}

// applyPlan converts planner assignments into one atomic repository batch.
func (s *ClientServiceImpl) applyPlan(ctx context.Context, plan []lane.Assignment, extra ...secondary.ClientUpdate) error {
	updates := make([]secondary.ClientUpdate, 0, len(plan)+len(extra))
	for _, a := range plan {
		status := a.Status
		priority := a.Priority
		updates = append(updates, secondary.ClientUpdate{ID: a.ID, Status: &status, Priority: &priority})
	}
	updates = append(updates, extra...)

	if len(updates) == 0 {
		return nil
	}

	if err := s.clientRepo.ApplyUpdates(ctx, updates); err != nil {
		// Covers a listed record vanishing between read and write: the
		// batch rolled back wholesale, surface it as a store failure.
		return lane.NewStoreFailed(err)
	}
	return nil
}

func recordToClient(record *secondary.ClientRecord) primary.Client {
	return primary.Client{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Status:      record.Status,
		Priority:    record.Priority,
	}
}

func recordsToClients(records []*secondary.ClientRecord) []primary.Client {
	clients := make([]primary.Client, 0, len(records))
	for _, r := range records {
		clients = append(clients, recordToClient(r))
	}
	return clients
}

func recordsToCards(records []*secondary.ClientRecord) []lane.Card {
	cards := make([]lane.Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, lane.Card{ID: r.ID, Priority: r.Priority})
	}
	return cards
}

// Ensure ClientServiceImpl implements the interface
var _ primary.ClientService = (*ClientServiceImpl)(nil)
