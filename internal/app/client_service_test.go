package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/laneboard/internal/core/lane"
	"github.com/example/laneboard/internal/models"
	"github.com/example/laneboard/internal/ports/primary"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

// newTestService seeds three backlog clients, two in-progress, one complete.
func newTestService(t *testing.T, opts lane.Options) (*ClientServiceImpl, *mockClientRepository) {
	t.Helper()
	repo := newMockClientRepository()
	repo.add("Acme Corp", models.StatusBacklog, 1)
	repo.add("Globex", models.StatusBacklog, 2)
	repo.add("Initech", models.StatusBacklog, 3)
	repo.add("Umbrella", models.StatusInProgress, 1)
	repo.add("Hooli", models.StatusInProgress, 2)
	repo.add("Stark Industries", models.StatusComplete, 1)
	return NewClientService(repo, opts), repo
}

// assertDenseLanes checks every lane holds priorities exactly 1..count.
func assertDenseLanes(t *testing.T, svc *ClientServiceImpl) {
	t.Helper()
	for _, status := range models.Lanes() {
		clients, err := svc.LaneClients(context.Background(), status)
		if err != nil {
			t.Fatalf("LaneClients(%s) failed: %v", status, err)
		}
		for i, c := range clients {
			if c.Priority != i+1 {
				t.Errorf("lane %s position %d: got priority %d, want %d", status, i, c.Priority, i+1)
			}
		}
	}
}

func laneByStatus(t *testing.T, svc *ClientServiceImpl, status string) []primary.Client {
	t.Helper()
	clients, err := svc.LaneClients(context.Background(), status)
	if err != nil {
		t.Fatalf("LaneClients(%s) failed: %v", status, err)
	}
	return clients
}

func assertKind(t *testing.T, err error, want lane.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	kind, ok := lane.KindOf(err)
	if !ok {
		t.Fatalf("expected %s error, got undiscriminated: %v", want, err)
	}
	if kind != want {
		t.Fatalf("expected %s error, got %s: %v", want, kind, err)
	}
}

func TestReorder_ConflictShiftsOccupantDown(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	// Move Initech (backlog p3) to p1; Acme and Globex shift down.
	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{ID: 3, Priority: intptr(1)})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	backlog := laneByStatus(t, svc, models.StatusBacklog)
	wantOrder := []int{3, 1, 2}
	for i, id := range wantOrder {
		if backlog[i].ID != id {
			t.Errorf("backlog position %d: got id %d, want %d", i+1, backlog[i].ID, id)
		}
	}
	assertDenseLanes(t, svc)
}

func TestReorder_ZeroPriorityMeansTop(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{ID: 2, Priority: intptr(0)})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	backlog := laneByStatus(t, svc, models.StatusBacklog)
	if backlog[0].ID != 2 {
		t.Errorf("expected Globex at top of backlog, got id %d", backlog[0].ID)
	}
	assertDenseLanes(t, svc)
}

func TestReorder_PriorityPastEndClampsToBottom(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{ID: 1, Priority: intptr(99)})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	backlog := laneByStatus(t, svc, models.StatusBacklog)
	if got := backlog[len(backlog)-1].ID; got != 1 {
		t.Errorf("expected Acme at bottom of backlog, got id %d", got)
	}
	assertDenseLanes(t, svc)
}

func TestReorder_CrossLaneCompactsDepartedLane(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	// Globex leaves backlog p2 for in-progress p1.
	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{
		ID:       2,
		Status:   strptr(models.StatusInProgress),
		Priority: intptr(1),
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	backlog := laneByStatus(t, svc, models.StatusBacklog)
	if len(backlog) != 2 {
		t.Fatalf("expected 2 backlog clients, got %d", len(backlog))
	}
	inProgress := laneByStatus(t, svc, models.StatusInProgress)
	if len(inProgress) != 3 || inProgress[0].ID != 2 {
		t.Fatalf("expected Globex leading 3 in-progress clients, got %v", inProgress)
	}
	assertDenseLanes(t, svc)
}

func TestReorder_MarkCompleteAppendsToBottom(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{
		ID:     4,
		Status: strptr(models.StatusComplete),
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	complete := laneByStatus(t, svc, models.StatusComplete)
	if len(complete) != 2 {
		t.Fatalf("expected 2 complete clients, got %d", len(complete))
	}
	if got := complete[len(complete)-1].ID; got != 4 {
		t.Errorf("expected Umbrella at bottom of complete, got id %d", got)
	}
	assertDenseLanes(t, svc)
}

func TestReorder_MarkCompleteWithEmptyLaneRejected(t *testing.T) {
	repo := newMockClientRepository()
	repo.add("Acme Corp", models.StatusBacklog, 1)
	svc := NewClientService(repo, lane.Options{})

	before := repo.snapshot()
	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{
		ID:     1,
		Status: strptr(models.StatusComplete),
	})
	assertKind(t, err, lane.KindEmptyLane)

	after := repo.snapshot()
	if len(before) != len(after) || before[1] != after[1] {
		t.Errorf("state changed on rejected reorder: before %v, after %v", before, after)
	}
}

func TestReorder_UnknownIDRejected(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{ID: 999, Priority: intptr(1)})
	assertKind(t, err, lane.KindInvalidID)
}

func TestReorder_NegativePriorityRejected(t *testing.T) {
	svc, repo := newTestService(t, lane.Options{})

	before := repo.snapshot()
	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{ID: 1, Priority: intptr(-2)})
	assertKind(t, err, lane.KindInvalidPriority)

	after := repo.snapshot()
	for id, state := range before {
		if after[id] != state {
			t.Errorf("client %d changed on rejected reorder: %s -> %s", id, state, after[id])
		}
	}
}

func TestReorder_UnknownStatusRejected(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{ID: 1, Status: strptr("archived")})
	assertKind(t, err, lane.KindInvalidStatus)
}

func TestReorder_NoOpIsIdempotent(t *testing.T) {
	svc, repo := newTestService(t, lane.Options{})

	before := repo.snapshot()
	requests := []primary.ReorderRequest{
		{ID: 2},                                          // neither field
		{ID: 2, Priority: intptr(2)},                     // same position
		{ID: 2, Status: strptr(models.StatusBacklog)},    // same lane
	}
	for i, req := range requests {
		if _, err := svc.Reorder(context.Background(), req); err != nil {
			t.Fatalf("no-op %d failed: %v", i, err)
		}
	}
	after := repo.snapshot()
	for id, state := range before {
		if after[id] != state {
			t.Errorf("client %d changed on no-op reorder: %s -> %s", id, state, after[id])
		}
	}
	assertDenseLanes(t, svc)
}

func TestReorder_StoreFaultLeavesStateUnchanged(t *testing.T) {
	svc, repo := newTestService(t, lane.Options{})

	before := repo.snapshot()
	repo.applyErr = errors.New("disk full")

	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{ID: 3, Priority: intptr(1)})
	assertKind(t, err, lane.KindStoreFailed)

	after := repo.snapshot()
	for id, state := range before {
		if after[id] != state {
			t.Errorf("client %d changed despite failed batch: %s -> %s", id, state, after[id])
		}
	}
}

func TestReorder_SequencePreservesDensity(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	moves := []primary.ReorderRequest{
		{ID: 1, Priority: intptr(3)},
		{ID: 5, Status: strptr(models.StatusBacklog), Priority: intptr(1)},
		{ID: 3, Status: strptr(models.StatusComplete)},
		{ID: 2, Priority: intptr(0)},
		{ID: 4, Status: strptr(models.StatusBacklog)},
		{ID: 6, Status: strptr(models.StatusInProgress), Priority: intptr(7)},
	}
	for i, req := range moves {
		if _, err := svc.Reorder(context.Background(), req); err != nil {
			t.Fatalf("move %d failed: %v", i, err)
		}
		assertDenseLanes(t, svc)
	}
}

func TestReorder_LegacyLeavesDepartedGap(t *testing.T) {
	svc, repo := newTestService(t, lane.Options{LegacyGaps: true})

	// Globex leaves backlog p2; Initech keeps p3 in legacy mode.
	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{
		ID:       2,
		Status:   strptr(models.StatusInProgress),
		Priority: intptr(1),
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	if got := repo.clients[3].Priority; got != 3 {
		t.Errorf("expected Initech to keep priority 3, got %d", got)
	}
}

func TestReorder_LegacyStatusOnlyIsBareWrite(t *testing.T) {
	svc, repo := newTestService(t, lane.Options{LegacyGaps: true})

	// Umbrella moves lane without a priority; it keeps its old number.
	_, err := svc.Reorder(context.Background(), primary.ReorderRequest{
		ID:     4,
		Status: strptr(models.StatusBacklog),
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	c := repo.clients[4]
	if c.Status != models.StatusBacklog || c.Priority != 1 {
		t.Errorf("expected bare status write keeping priority 1, got %s/%d", c.Status, c.Priority)
	}
}

func TestCreateClient_AppendsToBottomOfLane(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	created, err := svc.CreateClient(context.Background(), primary.CreateClientRequest{
		Name:   "Wayne Enterprises",
		Status: models.StatusBacklog,
	})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	if created.Priority != 4 {
		t.Errorf("expected priority 4, got %d", created.Priority)
	}
	assertDenseLanes(t, svc)
}

func TestCreateClient_DefaultsToBacklog(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	created, err := svc.CreateClient(context.Background(), primary.CreateClientRequest{Name: "Cyberdyne"})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	if created.Status != models.StatusBacklog {
		t.Errorf("expected backlog, got %s", created.Status)
	}
}

func TestCreateClient_ExplicitPriorityRenumbersLane(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	created, err := svc.CreateClient(context.Background(), primary.CreateClientRequest{
		Name:     "Wonka Industries",
		Status:   models.StatusBacklog,
		Priority: intptr(1),
	})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	if created.Priority != 1 {
		t.Errorf("expected priority 1, got %d", created.Priority)
	}

	backlog := laneByStatus(t, svc, models.StatusBacklog)
	if backlog[0].ID != created.ID {
		t.Errorf("expected new client at top of backlog, got id %d", backlog[0].ID)
	}
	assertDenseLanes(t, svc)
}

func TestCreateClient_EmptyNameRejected(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	_, err := svc.CreateClient(context.Background(), primary.CreateClientRequest{Name: "  "})
	assertKind(t, err, lane.KindInvalidName)
}

func TestDeleteClient_CompactsLane(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	// Remove Globex from the middle of backlog; Initech closes the gap.
	_, err := svc.DeleteClient(context.Background(), 2)
	if err != nil {
		t.Fatalf("DeleteClient failed: %v", err)
	}

	backlog := laneByStatus(t, svc, models.StatusBacklog)
	if len(backlog) != 2 {
		t.Fatalf("expected 2 backlog clients, got %d", len(backlog))
	}
	if backlog[1].ID != 3 || backlog[1].Priority != 2 {
		t.Errorf("expected Initech at priority 2, got id %d priority %d", backlog[1].ID, backlog[1].Priority)
	}
	assertDenseLanes(t, svc)
}

func TestDeleteClient_UnknownIDRejected(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	_, err := svc.DeleteClient(context.Background(), 999)
	assertKind(t, err, lane.KindInvalidID)
}

func TestUpdateClient_RenamesWithoutTouchingLane(t *testing.T) {
	svc, repo := newTestService(t, lane.Options{})

	before := repo.snapshot()
	updated, err := svc.UpdateClient(context.Background(), primary.UpdateClientRequest{
		ID:   1,
		Name: strptr("Acme Corporation"),
	})
	if err != nil {
		t.Fatalf("UpdateClient failed: %v", err)
	}
	if updated.Name != "Acme Corporation" {
		t.Errorf("expected renamed client, got %q", updated.Name)
	}
	if after := repo.snapshot(); after[1] != before[1] {
		t.Errorf("lane placement changed on rename: %s -> %s", before[1], after[1])
	}
}

func TestGetClient_UnknownIDRejected(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	_, err := svc.GetClient(context.Background(), 42)
	assertKind(t, err, lane.KindInvalidID)
}

func TestLaneClients_UnknownStatusRejected(t *testing.T) {
	svc, _ := newTestService(t, lane.Options{})

	_, err := svc.LaneClients(context.Background(), "todo")
	assertKind(t, err, lane.KindInvalidStatus)
}
