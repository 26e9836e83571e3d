// Package lane contains the pure business logic of the lane invariant engine.
// Guards evaluate preconditions without side effects; the planner computes
// batch updates over a consistent snapshot without touching the store.
package lane

import "strings"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Err     *Error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Err
}

// ReorderContext provides context for reorder guards.
type ReorderContext struct {
	ClientID     int
	ClientExists bool
	Status       *string // nil if not supplied
	StatusValid  bool    // only checked if Status != nil
	Priority     *int    // nil if not supplied
}

// CanReorder evaluates whether a reorder may proceed.
// Rules:
// - Client must exist
// - Status, if supplied, must name one of the three lanes
// - Priority, if supplied, must not be negative (zero is accepted and
//   clamped to the top of the lane)
func CanReorder(ctx ReorderContext) GuardResult {
	if !ctx.ClientExists {
		return GuardResult{Err: NewInvalidID(ctx.ClientID)}
	}

	if ctx.Status != nil && !ctx.StatusValid {
		return GuardResult{Err: NewInvalidStatus(*ctx.Status)}
	}

	if ctx.Priority != nil && *ctx.Priority < 0 {
		return GuardResult{Err: NewInvalidPriority(*ctx.Priority)}
	}

	return GuardResult{Allowed: true}
}

// CreateContext provides context for client creation guards.
type CreateContext struct {
	Name        string
	Status      string // already defaulted by the caller
	StatusValid bool
	Priority    *int
}

// CanCreate evaluates whether a client can be created.
func CanCreate(ctx CreateContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Err: &Error{Kind: KindInvalidName, Message: "client name must not be empty"}}
	}

	if !ctx.StatusValid {
		return GuardResult{Err: NewInvalidStatus(ctx.Status)}
	}

	if ctx.Priority != nil && *ctx.Priority < 0 {
		return GuardResult{Err: NewInvalidPriority(*ctx.Priority)}
	}

	return GuardResult{Allowed: true}
}
