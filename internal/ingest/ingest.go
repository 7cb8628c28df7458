// ABOUTME: Ingestion orchestrator driving chunk, embed, and store per source
// ABOUTME: Isolates failures per source and per website target
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chairaharder/askchaira/internal/chunker"
	"github.com/chairaharder/askchaira/internal/extract"
	"github.com/chairaharder/askchaira/internal/llm"
	"github.com/chairaharder/askchaira/internal/models"
	"github.com/chairaharder/askchaira/internal/textutil"
)

// Store is the slice of the document store the orchestrator writes through.
type Store interface {
	PurgeSource(source string) (int, error)
	InsertChunk(rec models.ChunkRecord) error
}

// Options configures one ingestion run.
type Options struct {
	ResumePath   string
	AboutPath    string
	SiteTargets  []string
	SiteURL      string // public base URL for anchors on local-file targets
	ChunkSize    int
	ChunkOverlap int
}

// Runner executes ingestion for the configured sources sequentially.
// Ordering is deliberate: chunk-to-vector association is positional and
// purge-then-insert assumes a single writer per source.
type Runner struct {
	store    Store
	embedder llm.Embedder
	fetcher  *Fetcher
	out      io.Writer
}

// NewRunner wires a Runner. A nil out falls back to stdout.
func NewRunner(store Store, embedder llm.Embedder, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		store:    store,
		embedder: embedder,
		fetcher:  NewFetcher(),
		out:      out,
	}
}

// Run ingests every source in order: resume, about, website. A failure in
// one source is logged and does not prevent the others from running. The
// returned map carries the per-source errors for callers that want them;
// an empty map means a fully clean run.
func (r *Runner) Run(ctx context.Context, opts Options) map[string]error {
	failures := make(map[string]error)

	if err := r.RunSource(ctx, models.SourceResume, opts); err != nil {
		r.logf("Resume ingestion failed: %v", err)
		failures[models.SourceResume] = err
	}
	if err := r.RunSource(ctx, models.SourceAbout, opts); err != nil {
		r.logf("About ingestion failed: %v", err)
		failures[models.SourceAbout] = err
	}
	if err := r.RunSource(ctx, models.SourceWebsite, opts); err != nil {
		r.logf("Website ingestion failed: %v", err)
		failures[models.SourceWebsite] = err
	}

	return failures
}

// RunSource ingests a single named source.
func (r *Runner) RunSource(ctx context.Context, source string, opts Options) error {
	switch source {
	case models.SourceResume:
		text, err := LoadResume(opts.ResumePath)
		if err != nil {
			return err
		}
		return r.IngestGroup(ctx, models.SourceResume, []models.Item{{
			Title: "Chaira Harder Resume",
			URL:   "/Chaira_Harder_Resume.pdf",
			Text:  text,
		}}, opts)

	case models.SourceAbout:
		text, err := LoadAbout(opts.AboutPath)
		if err != nil {
			return err
		}
		return r.IngestGroup(ctx, models.SourceAbout, []models.Item{{
			Title: "About Me",
			URL:   "/about",
			Text:  text,
		}}, opts)

	case models.SourceWebsite:
		return r.IngestWebsite(ctx, opts.SiteTargets, opts)

	default:
		return fmt.Errorf("unknown source %q", source)
	}
}

// LoadAbout reads the about file and normalizes its text.
func LoadAbout(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("about file not found at %s: %w", path, err)
	}
	text := textutil.Normalize(string(data))
	if text == "" {
		return "", fmt.Errorf("about file %s is empty", path)
	}
	return text, nil
}

// IngestGroup replaces a source's rows with the chunked, embedded items.
// A row-level failure aborts the remainder of this source's loop; chunks
// already inserted stay, and a re-run repairs the partial state.
func (r *Runner) IngestGroup(ctx context.Context, source string, items []models.Item, opts Options) error {
	if r.embedder == nil {
		return fmt.Errorf("no embedding client configured")
	}
	if len(items) == 0 {
		r.logf("Skipping source %q because no items were provided.", source)
		return nil
	}

	if err := r.purge(source); err != nil {
		return err
	}

	for _, item := range items {
		chunks := chunker.Split(item.Text, opts.ChunkSize, opts.ChunkOverlap)
		if len(chunks) == 0 {
			r.logf("  %q had no content after cleaning. Skipping.", item.Title)
			continue
		}
		r.logf("%q (%s) -> %d %s.", item.Title, source, len(chunks), plural(len(chunks), "chunk"))

		vectors, err := r.embedder.EmbedChunks(ctx, chunks)
		if err != nil {
			return fmt.Errorf("embedding %q (%s): %w", item.Title, source, err)
		}

		for i, chunk := range chunks {
			if err := r.store.InsertChunk(models.ChunkRecord{
				Source:       source,
				Title:        item.Title,
				URL:          item.URL,
				SectionLabel: fmt.Sprintf("chunk-%d", i+1),
				Chunk:        chunk,
				Vector:       vectors[i],
			}); err != nil {
				return err
			}
		}
	}

	r.logf("Completed ingest for source %q.", source)
	return nil
}

// IngestWebsite replaces the website source from the given targets. Each
// target is isolated: a fetch or extraction failure is logged and the
// remaining targets still process.
func (r *Runner) IngestWebsite(ctx context.Context, targets []string, opts Options) error {
	if r.embedder == nil {
		return fmt.Errorf("no embedding client configured")
	}
	if len(targets) == 0 {
		r.logf("Skipping source %q because no targets were provided.", models.SourceWebsite)
		return nil
	}

	if err := r.purge(models.SourceWebsite); err != nil {
		return err
	}

	for _, target := range targets {
		if err := r.ingestTarget(ctx, target, opts); err != nil {
			r.logf("Failed to process %s: %v", target, err)
		}
	}

	r.logf("Completed ingest for source %q.", models.SourceWebsite)
	return nil
}

// ingestTarget processes one website target end to end.
func (r *Runner) ingestTarget(ctx context.Context, target string, opts Options) error {
	markup, err := r.fetcher.FetchAsText(ctx, target)
	if err != nil {
		return err
	}

	sections := extract.Sections(markup)
	if len(sections) == 0 {
		r.logf("  No usable sections extracted from %s.", target)
		return nil
	}

	base := CanonicalBase(target, opts.SiteURL)

	for _, section := range sections {
		chunks := chunker.Split(section.Text, opts.ChunkSize, opts.ChunkOverlap)
		if len(chunks) == 0 {
			r.logf("  Section %q from %s had no content after chunking.", section.Title, target)
			continue
		}
		r.logf("%q (%s) -> %d %s.", section.Title, models.SourceWebsite, len(chunks), plural(len(chunks), "chunk"))

		vectors, err := r.embedder.EmbedChunks(ctx, chunks)
		if err != nil {
			return fmt.Errorf("embedding section %q: %w", section.Title, err)
		}

		sectionURL := base
		if section.ID != "" {
			sectionURL = base + "#" + section.ID
		}

		for i, chunk := range chunks {
			if err := r.store.InsertChunk(models.ChunkRecord{
				Source:       models.SourceWebsite,
				Title:        section.Title,
				URL:          sectionURL,
				SectionLabel: fmt.Sprintf("%s-chunk-%d", section.ID, i+1),
				Chunk:        chunk,
				Vector:       vectors[i],
			}); err != nil {
				return err
			}
		}
	}

	return nil
}

// purge clears a source's existing rows and logs the outcome.
func (r *Runner) purge(source string) error {
	r.logf("Clearing existing rows for source %q (if any)...", source)
	n, err := r.store.PurgeSource(source)
	if err != nil {
		return err
	}
	if n == 0 {
		r.logf("  No existing rows found.")
	} else {
		r.logf("  Removed %d existing %s.", n, plural(n, "document"))
	}
	return nil
}

func (r *Runner) logf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Sources lists the sources Run processes, in order.
func Sources() []string {
	return []string{models.SourceResume, models.SourceAbout, models.SourceWebsite}
}

// ValidSource reports whether the name is an ingestable source.
func ValidSource(name string) bool {
	for _, s := range Sources() {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}
