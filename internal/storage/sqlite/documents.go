// ABOUTME: Source store writer over the documents/document_embeddings tables
// ABOUTME: Purge-then-insert replacement semantics keyed by source
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/chairaharder/askchaira/internal/models"
)

// DocumentStore persists chunks and their embeddings.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a DocumentStore over an open database.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// PurgeSource deletes every document under the source along with its
// embeddings. Embeddings go first to satisfy the ownership dependency; both
// deletes run in one transaction so a failed purge never leaves orphan
// embeddings or half-removed sources. Returns the number of removed
// documents; zero with no error when the source was already empty.
func (s *DocumentStore) PurgeSource(source string) (int, error) {
	ids, err := s.documentIDs(source)
	if err != nil {
		return 0, fmt.Errorf("unable to check existing documents for source %q: %w", source, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin purge of source %q: %w", source, err)
	}
	defer func() { _ = tx.Rollback() }()

	placeholders, args := idParams(ids)
	if _, err := tx.Exec(
		`DELETE FROM document_embeddings WHERE document_id IN (`+placeholders+`)`, args...); err != nil {
		return 0, fmt.Errorf("failed to delete embeddings for source %q: %w", source, err)
	}
	if _, err := tx.Exec(
		`DELETE FROM documents WHERE id IN (`+placeholders+`)`, args...); err != nil {
		return 0, fmt.Errorf("failed to delete documents for source %q: %w", source, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit purge of source %q: %w", source, err)
	}
	return len(ids), nil
}

// InsertChunk inserts one document row and its embedding row. Both inserts
// share a transaction: a document never exists without its embedding.
// Failure aborts this chunk with an error naming the source and section
// label; previously inserted chunks of the run are left in place.
func (s *DocumentStore) InsertChunk(rec models.ChunkRecord) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin insert of chunk %q for source %q: %w", rec.SectionLabel, rec.Source, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO documents (source, title, url, section, content)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Source, rec.Title, rec.URL, rec.SectionLabel, rec.Chunk)
	if err != nil {
		return fmt.Errorf("failed to insert document chunk %q for source %q: %w", rec.SectionLabel, rec.Source, err)
	}

	docID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated id for chunk %q (%s): %w", rec.SectionLabel, rec.Source, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO document_embeddings (document_id, vector)
		VALUES (?, ?)
	`, docID, vectorToBlob(rec.Vector)); err != nil {
		return fmt.Errorf("failed to insert embedding for chunk %q (%s): %w", rec.SectionLabel, rec.Source, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit chunk %q for source %q: %w", rec.SectionLabel, rec.Source, err)
	}
	return nil
}

// DocumentsBySource returns the source's documents in insertion order.
func (s *DocumentStore) DocumentsBySource(source string) ([]models.Document, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, source, title, url, section, content, created_at
		FROM documents
		WHERE source = ?
		ORDER BY id ASC
	`, source)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var docs []models.Document
	for rows.Next() {
		var (
			doc                 models.Document
			title, url, section sql.NullString
		)
		if err := rows.Scan(&doc.ID, &doc.Source, &title, &url, &section, &doc.Content, &doc.CreatedAt); err != nil {
			return nil, err
		}
		doc.Title = title.String
		doc.URL = url.String
		doc.Section = section.String
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// EmbeddingByDocumentID returns the embedding owned by a document, or nil
// when none exists.
func (s *DocumentStore) EmbeddingByDocumentID(docID int64) (*models.Embedding, error) {
	var (
		emb  models.Embedding
		blob []byte
	)
	err := s.db.conn.QueryRow(`
		SELECT id, document_id, vector, created_at
		FROM document_embeddings
		WHERE document_id = ?
	`, docID).Scan(&emb.ID, &emb.DocumentID, &blob, &emb.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	emb.Vector = blobToVector(blob)
	return &emb, nil
}

// CountBySource returns the number of documents under a source.
func (s *DocumentStore) CountBySource(source string) (int, error) {
	var n int
	err := s.db.conn.QueryRow(`SELECT COUNT(*) FROM documents WHERE source = ?`, source).Scan(&n)
	return n, err
}

// SourceSummary returns per-source document counts, sorted by source name.
func (s *DocumentStore) SourceSummary() ([]models.SourceCount, error) {
	rows, err := s.db.conn.Query(`
		SELECT source, COUNT(*)
		FROM documents
		GROUP BY source
		ORDER BY source ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.SourceCount
	for rows.Next() {
		var sc models.SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// documentIDs returns all document ids under a source.
func (s *DocumentStore) documentIDs(source string) ([]int64, error) {
	rows, err := s.db.conn.Query(`SELECT id FROM documents WHERE source = ?`, source)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// idParams expands ids into an SQL placeholder list and argument slice.
func idParams(ids []int64) (string, []interface{}) {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}
