// Package models contains domain types for laneboard entities.
// SQL persistence lives in internal/adapters/sqlite.
package models

// Client represents a single card on the board.
type Client struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    int    `json:"priority"`
}

// Lane status constants. Each lane keeps its own dense 1..n priority sequence.
const (
	StatusBacklog    = "backlog"
	StatusInProgress = "in-progress"
	StatusComplete   = "complete"
)

// Lanes returns the recognized lane names in board order.
func Lanes() []string {
	return []string{StatusBacklog, StatusInProgress, StatusComplete}
}

// ValidLane reports whether s names one of the three lanes.
func ValidLane(s string) bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusComplete:
		return true
	}
	return false
}
