package lane

// This file contains pure planner functions that compute priority
// assignments. All lane state is pre-fetched by the caller - no I/O in the
// planner. All inputs are read from one consistent snapshot, so the order of
// the emitted assignments does not matter: there is no read-after-write
// dependency within a plan.

// Card is the slice of a client the planner needs: identity and position.
type Card struct {
	ID       int
	Priority int
}

// Assignment is one desired end-state write: the client's new lane and
// priority.
type Assignment struct {
	ID       int
	Status   string
	Priority int
}

// Options selects between the corrected gap-closing behavior and the
// historic one.
type Options struct {
	// LegacyGaps preserves the historic behavior: the departed lane is not
	// compacted when a client changes lanes, and the target lane is shifted
	// only when the requested priority is already occupied.
	LegacyGaps bool
}

// MoveInput contains the inputs for planning an explicit-priority move.
type MoveInput struct {
	MovedID        int
	TargetStatus   string
	TargetPriority int // already validated non-negative; 0 means top of lane

	// Target is the target lane snapshot in ascending priority order.
	// It may include the moved client (same-lane move).
	Target []Card

	// Departed is the snapshot of the lane the client leaves, including the
	// client itself. Empty when the lane does not change.
	Departed       []Card
	DepartedStatus string
	LaneChanged    bool
}

// PlanMove computes the atomic batch for moving one client to
// TargetStatus/TargetPriority.
//
// In corrected mode both affected lanes end up dense: the target lane is
// renumbered with the client inserted at the (clamped) requested position,
// and the departed lane is renumbered without it. In legacy mode the plan
// reproduces the historic behavior: shift the target lane up by one only on
// a priority conflict, and leave the departed lane untouched.
func PlanMove(in MoveInput, opts Options) []Assignment {
	p := in.TargetPriority
	if p == 0 {
		p = 1
	}

	if opts.LegacyGaps {
		return planMoveLegacy(in, p)
	}

	others := withoutCard(in.Target, in.MovedID)

	// Clamp into the final lane: positions 1..len(others)+1 are the only
	// ones that keep the sequence dense.
	if max := len(others) + 1; p > max {
		p = max
	}

	var out []Assignment

	// Renumber the target lane with the moved client inserted at p.
	position := 1
	for _, c := range others {
		if position == p {
			position++
		}
		if c.Priority != position {
			out = append(out, Assignment{ID: c.ID, Status: in.TargetStatus, Priority: position})
		}
		position++
	}
	out = append(out, Assignment{ID: in.MovedID, Status: in.TargetStatus, Priority: p})

	if in.LaneChanged {
		out = append(out, compact(withoutCard(in.Departed, in.MovedID), in.DepartedStatus)...)
	}

	return out
}

// planMoveLegacy reproduces the historic conflict-shift behavior: every card
// at or past the requested priority moves up by one, but only when the slot
// is actually occupied, and the departed lane keeps its gap.
func planMoveLegacy(in MoveInput, p int) []Assignment {
	conflict := false
	for _, c := range in.Target {
		if c.ID != in.MovedID && c.Priority == p {
			conflict = true
			break
		}
	}

	var out []Assignment
	if conflict {
		for _, c := range in.Target {
			if c.ID == in.MovedID {
				continue
			}
			if c.Priority >= p {
				out = append(out, Assignment{ID: c.ID, Status: in.TargetStatus, Priority: c.Priority + 1})
			}
		}
	}
	out = append(out, Assignment{ID: in.MovedID, Status: in.TargetStatus, Priority: p})
	return out
}

// PlanRemoval computes the compaction batch after a client leaves a lane for
// good (deletion). The remaining cards are renumbered 1..n.
func PlanRemoval(departed []Card, removedID int, status string) []Assignment {
	return compact(withoutCard(departed, removedID), status)
}

// compact renumbers cards (already in ascending priority order) to 1..n,
// emitting assignments only for the ones that change.
func compact(cards []Card, status string) []Assignment {
	var out []Assignment
	for i, c := range cards {
		if want := i + 1; c.Priority != want {
			out = append(out, Assignment{ID: c.ID, Status: status, Priority: want})
		}
	}
	return out
}

// withoutCard filters one card out, preserving order.
func withoutCard(cards []Card, id int) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
