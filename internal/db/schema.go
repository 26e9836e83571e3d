package db

// SchemaSQL is the complete schema for fresh laneboard installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests load
// it via GetSchemaSQL() rather than hardcoding CREATE TABLE statements, so a
// repository referencing a column that does not exist here fails immediately
// with "no such column" at test time.
const SchemaSQL = `
-- Clients (kanban cards). Within each status lane, priorities form a dense
-- sequence 1..count(lane); the lane engine is responsible for keeping it so.
CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL CHECK(status IN ('backlog', 'in-progress', 'complete')) DEFAULT 'backlog',
	priority INTEGER NOT NULL CHECK(priority > 0),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Lane reads are always "WHERE status = ? ORDER BY priority".
CREATE INDEX IF NOT EXISTS idx_clients_status_priority ON clients(status, priority);
`

// GetSchemaSQL returns the authoritative schema for tests and tooling.
func GetSchemaSQL() string {
	return SchemaSQL
}
