// ABOUTME: Tests for the document store purge-then-insert semantics
// ABOUTME: Verifies idempotent replacement and embedding ownership

package sqlite

import (
	"fmt"
	"testing"

	"github.com/chairaharder/askchaira/internal/models"
)

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewDocumentStore(db)
}

func record(source, label, content string) models.ChunkRecord {
	return models.ChunkRecord{
		Source:       source,
		Title:        "Title for " + label,
		URL:          "/" + source,
		SectionLabel: label,
		Chunk:        content,
		Vector:       []float64{0.1, 0.2, 0.3},
	}
}

func TestInsertChunk_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	rec := record("about", "chunk-1", "hello world")
	rec.Vector = []float64{1.5, -2.25, 0}
	if err := store.InsertChunk(rec); err != nil {
		t.Fatalf("InsertChunk() error = %v", err)
	}

	docs, err := store.DocumentsBySource("about")
	if err != nil {
		t.Fatalf("DocumentsBySource() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	doc := docs[0]
	if doc.Section != "chunk-1" || doc.Content != "hello world" {
		t.Errorf("document = %+v", doc)
	}

	emb, err := store.EmbeddingByDocumentID(doc.ID)
	if err != nil {
		t.Fatalf("EmbeddingByDocumentID() error = %v", err)
	}
	if emb == nil {
		t.Fatal("expected an embedding row")
	}
	if len(emb.Vector) != 3 || emb.Vector[0] != 1.5 || emb.Vector[1] != -2.25 {
		t.Errorf("vector = %v", emb.Vector)
	}
}

func TestPurgeSource_EmptyIsNoop(t *testing.T) {
	store := newTestStore(t)

	n, err := store.PurgeSource("resume")
	if err != nil {
		t.Fatalf("PurgeSource() error = %v", err)
	}
	if n != 0 {
		t.Errorf("purged %d documents from empty source", n)
	}
}

func TestPurgeSource_OnlyTargetSource(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.InsertChunk(record("website", fmt.Sprintf("s-chunk-%d", i+1), "web")); err != nil {
			t.Fatalf("InsertChunk() error = %v", err)
		}
	}
	if err := store.InsertChunk(record("about", "chunk-1", "bio")); err != nil {
		t.Fatalf("InsertChunk() error = %v", err)
	}

	n, err := store.PurgeSource("website")
	if err != nil {
		t.Fatalf("PurgeSource() error = %v", err)
	}
	if n != 3 {
		t.Errorf("purged = %d, want 3", n)
	}

	webCount, _ := store.CountBySource("website")
	aboutCount, _ := store.CountBySource("about")
	if webCount != 0 {
		t.Errorf("website count = %d after purge", webCount)
	}
	if aboutCount != 1 {
		t.Errorf("about count = %d, sibling source must survive", aboutCount)
	}
}

func TestPurgeSource_NoOrphanEmbeddings(t *testing.T) {
	store := newTestStore(t)

	if err := store.InsertChunk(record("resume", "chunk-1", "cv")); err != nil {
		t.Fatalf("InsertChunk() error = %v", err)
	}
	docs, _ := store.DocumentsBySource("resume")
	docID := docs[0].ID

	if _, err := store.PurgeSource("resume"); err != nil {
		t.Fatalf("PurgeSource() error = %v", err)
	}

	emb, err := store.EmbeddingByDocumentID(docID)
	if err != nil {
		t.Fatalf("EmbeddingByDocumentID() error = %v", err)
	}
	if emb != nil {
		t.Error("embedding survived its document's purge")
	}
}

func TestReingest_ReplacesEntirely(t *testing.T) {
	store := newTestStore(t)

	// First run.
	for i := 0; i < 5; i++ {
		if err := store.InsertChunk(record("website", fmt.Sprintf("old-chunk-%d", i+1), "old")); err != nil {
			t.Fatalf("first run InsertChunk() error = %v", err)
		}
	}

	// Second run: purge then insert different content.
	if _, err := store.PurgeSource("website"); err != nil {
		t.Fatalf("PurgeSource() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := store.InsertChunk(record("website", fmt.Sprintf("new-chunk-%d", i+1), "new")); err != nil {
			t.Fatalf("second run InsertChunk() error = %v", err)
		}
	}

	docs, err := store.DocumentsBySource("website")
	if err != nil {
		t.Fatalf("DocumentsBySource() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected exactly the second run's 2 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if doc.Content != "new" {
			t.Errorf("leftover row from prior run: %+v", doc)
		}
		emb, err := store.EmbeddingByDocumentID(doc.ID)
		if err != nil || emb == nil {
			t.Errorf("document %d missing embedding (err=%v)", doc.ID, err)
		}
	}
}

func TestSourceSummary(t *testing.T) {
	store := newTestStore(t)

	_ = store.InsertChunk(record("about", "chunk-1", "a"))
	_ = store.InsertChunk(record("website", "s-chunk-1", "w"))
	_ = store.InsertChunk(record("website", "s-chunk-2", "w"))

	summary, err := store.SourceSummary()
	if err != nil {
		t.Fatalf("SourceSummary() error = %v", err)
	}
	want := []models.SourceCount{{Source: "about", Count: 1}, {Source: "website", Count: 2}}
	if len(summary) != len(want) {
		t.Fatalf("summary = %+v", summary)
	}
	for i := range want {
		if summary[i] != want[i] {
			t.Errorf("summary[%d] = %+v, want %+v", i, summary[i], want[i])
		}
	}
}

func TestVectorBlobRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		vector []float64
	}{
		{"empty", []float64{}},
		{"single", []float64{3.14159}},
		{"negative and zero", []float64{-1.0, 0, 2.5}},
		{"typical dimension", make([]float64, 1536)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := blobToVector(vectorToBlob(tt.vector))
			if len(got) != len(tt.vector) {
				t.Fatalf("length = %d, want %d", len(got), len(tt.vector))
			}
			for i := range got {
				if got[i] != tt.vector[i] {
					t.Errorf("element %d = %v, want %v", i, got[i], tt.vector[i])
				}
			}
		})
	}
}
