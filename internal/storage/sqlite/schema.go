// ABOUTME: SQLite schema for ingested documents and their embeddings
// ABOUTME: Two linked tables mirroring the documents/document_embeddings pair
package sqlite

// Schema contains all SQL statements for database initialization.
const Schema = `
-- One row per ingested chunk, partitioned by source
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    title TEXT,
    url TEXT,
    section TEXT,
    content TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One vector per document row, owned by it
CREATE TABLE IF NOT EXISTS document_embeddings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    document_id INTEGER NOT NULL REFERENCES documents(id),
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_source ON documents(source);
CREATE INDEX IF NOT EXISTS idx_embeddings_document ON document_embeddings(document_id);
`
