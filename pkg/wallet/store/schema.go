package store

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the wallet database schema.
//
// Timestamps are stored as INTEGER unix seconds so both supported drivers
// scan them identically. The secrets.category_id foreign key declares
// ON DELETE SET NULL as a backstop; the category delete path nullifies
// references explicitly inside its transaction regardless.
const Schema = `
-- Identities (authenticated principals)
CREATE TABLE IF NOT EXISTS identities (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    is_admin INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

-- User-defined grouping labels
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES identities(id),
    name TEXT NOT NULL
);

-- Encrypted credential records; ciphertext is the sealed base64 payload
CREATE TABLE IF NOT EXISTS secrets (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES identities(id),
    label TEXT NOT NULL,
    ciphertext TEXT NOT NULL,
    category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_secrets_owner ON secrets(owner_id);
CREATE INDEX IF NOT EXISTS idx_secrets_category ON secrets(category_id);
CREATE INDEX IF NOT EXISTS idx_categories_owner ON categories(owner_id);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// InsertSchemaVersion records the schema version if not already present.
const InsertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`

// GetSchemaVersion retrieves the highest recorded schema version.
const GetSchemaVersion = `SELECT MAX(version) FROM schema_version`
