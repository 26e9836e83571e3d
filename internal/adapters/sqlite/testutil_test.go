// Package sqlite_test contains integration tests for SQLite repositories.
//
// The schema is loaded in exactly one place, via db.GetSchemaSQL(), so a
// repository referencing a column that does not exist in the authoritative
// schema fails here immediately instead of in production.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/laneboard/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedClient inserts a test client and returns its generated id.
func seedClient(t *testing.T, database *sql.DB, name, status string, priority int) int {
	t.Helper()

	result, err := database.Exec(
		"INSERT INTO clients (name, description, status, priority) VALUES (?, '', ?, ?)",
		name, status, priority,
	)
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded client id: %v", err)
	}
	return int(id)
}
