package lane

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes engine failures.
type ErrorKind string

const (
	// KindInvalidID indicates the id does not resolve to an existing client.
	KindInvalidID ErrorKind = "INVALID_ID"

	// KindInvalidStatus indicates the status is not one of the three lanes.
	KindInvalidStatus ErrorKind = "INVALID_STATUS"

	// KindInvalidPriority indicates a negative priority was supplied.
	KindInvalidPriority ErrorKind = "INVALID_PRIORITY"

	// KindInvalidName indicates an empty client name on create.
	KindInvalidName ErrorKind = "INVALID_NAME"

	// KindEmptyLane indicates a mark-complete append against an empty lane.
	KindEmptyLane ErrorKind = "EMPTY_LANE"

	// KindStoreFailed indicates the store transaction failed; no partial
	// writes were committed.
	KindStoreFailed ErrorKind = "STORE_FAILED"
)

// Error is a discriminated engine error: a kind plus human-readable detail.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the engine error kind from err, unwrapping as needed.
func KindOf(err error) (ErrorKind, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return "", false
}

// NewInvalidID creates an Error for an unresolvable client id.
func NewInvalidID(id int) *Error {
	return &Error{Kind: KindInvalidID, Message: fmt.Sprintf("client %d not found", id)}
}

// NewInvalidStatus creates an Error for an unrecognized lane name.
func NewInvalidStatus(status string) *Error {
	return &Error{Kind: KindInvalidStatus, Message: fmt.Sprintf("unknown status %q", status)}
}

// NewInvalidPriority creates an Error for a negative priority.
func NewInvalidPriority(priority int) *Error {
	return &Error{Kind: KindInvalidPriority, Message: fmt.Sprintf("priority %d must not be negative", priority)}
}

// NewEmptyLane creates an Error for an append against an empty lane.
func NewEmptyLane(status string) *Error {
	return &Error{Kind: KindEmptyLane, Message: fmt.Sprintf("lane %q is empty, nothing to append after", status)}
}

// NewStoreFailed wraps a store transaction failure.
func NewStoreFailed(err error) *Error {
	return &Error{Kind: KindStoreFailed, Message: "store transaction failed", Err: err}
}
