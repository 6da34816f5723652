package store

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the sqlite store schema.
// Entries are kept as opaque JSON payloads: the store round-trips the
// full CapturedEntry shape losslessly and leaves interpretation to the
// report phase.
const Schema = `
-- Captured entries
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    captured_at INTEGER NOT NULL,
    method TEXT NOT NULL,
    path TEXT NOT NULL,
    failed BOOLEAN NOT NULL,
    payload TEXT NOT NULL
);

-- Run configuration (single row)
CREATE TABLE IF NOT EXISTS run_config (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    payload TEXT NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_captured_at ON entries(captured_at);
CREATE INDEX IF NOT EXISTS idx_entries_method ON entries(method);
CREATE INDEX IF NOT EXISTS idx_entries_failed ON entries(failed);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
