// ABOUTME: Core data types for the ingestion pipeline and chat client
// ABOUTME: Documents, embeddings, extracted sections, and answer citations
package models

import "time"

// Source names partition the store; every ingestion run replaces one
// partition wholesale (purge-then-insert).
const (
	SourceResume  = "resume"
	SourceAbout   = "about"
	SourceWebsite = "website"
)

// DefaultSources is the source set queried when the caller does not narrow it.
func DefaultSources() []string {
	return []string{SourceWebsite, SourceResume, SourceAbout}
}

// Document is one stored chunk of ingested content. Despite the name, each
// chunk gets its own row; Content holds the chunk text, not the whole file.
type Document struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Section   string    `json:"section"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Embedding is the one-to-one vector child of a Document. It is owned by its
// document: purging a source deletes embeddings before documents.
type Embedding struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Vector     []float64 `json:"vector"`
	CreatedAt  time.Time `json:"created_at"`
}

// Section is a logical content block extracted from HTML. Not persisted;
// it is the unit of chunking for website content. ID is unique within one
// extracted page (base, base-2, base-3, ...).
type Section struct {
	Title string
	ID    string
	Text  string
}

// Item is one ingestable unit produced by a source loader before chunking.
type Item struct {
	Title string
	URL   string
	Text  string
}

// ChunkRecord is the unit handed to the store writer: one chunk plus its
// embedding and provenance.
type ChunkRecord struct {
	Source       string
	Title        string
	URL          string
	SectionLabel string
	Chunk        string
	Vector       []float64
}

// Match is one ranked citation returned by the answer endpoint.
type Match struct {
	Title  string `json:"title,omitempty"`
	Source string `json:"source,omitempty"`
	URL    string `json:"url,omitempty"`
}

// SourceCount summarises how many document rows a source currently holds.
type SourceCount struct {
	Source string
	Count  int
}
