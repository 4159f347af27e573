// ABOUTME: SQLite schema for the persistent semantic index
// ABOUTME: One chunks table keyed by id, partitioned by collection name
package storage

// Schema contains all SQL statements for database initialization
const Schema = `
-- Embedded text chunks (immutable once written)
CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    source_id TEXT NOT NULL,
    content TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks(collection);
CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
