package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures.
// Every lane gets a dense priority sequence starting at 1.
func SeedFixtures(database *sql.DB) error {
	clients := []struct {
		name, desc, status string
		priority           int
	}{
		{"Acme Corporation", "Migrate billing exports to the new format", "backlog", 1},
		{"Globex", "Quarterly account review", "backlog", 2},
		{"Initech", "TPS report automation", "backlog", 3},
		{"Umbrella Health", "Onboarding paperwork", "in-progress", 1},
		{"Stark Industries", "Contract renewal negotiation", "in-progress", 2},
		{"Wayne Enterprises", "Initial discovery call", "complete", 1},
		{"Hooli", "Proof of concept sign-off", "complete", 2},
	}

	for _, c := range clients {
		if _, err := database.Exec(
			"INSERT INTO clients (name, description, status, priority) VALUES (?, ?, ?, ?)",
			c.name, c.desc, c.status, c.priority,
		); err != nil {
			return fmt.Errorf("seed clients: %w", err)
		}
	}

	return nil
}
