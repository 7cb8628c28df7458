// ABOUTME: Ingest command runs the content pipeline into the chunk store
// ABOUTME: Supports full runs or a single source via --source
package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chairaharder/askchaira/internal/ingest"
	"github.com/chairaharder/askchaira/internal/llm"
	"github.com/chairaharder/askchaira/internal/storage/sqlite"
)

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	var (
		source  string
		targets []string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest content sources into the chunk store",
		Long: `Ingest the resume PDF, about file, and website pages.

Each source is chunked, embedded, and written to the store, replacing
that source's previous rows. A failure in one source does not stop the
others; the command exits non-zero when any source failed.`,
		Example: `  # Ingest everything
  askchaira ingest

  # Re-ingest just the website from a local build
  askchaira ingest --source website --target dist/index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, source, targets)
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Ingest a single source: resume, about, or website")
	cmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "Website target URL or file (repeatable, overrides SITE_TARGET)")

	return cmd
}

func runIngest(cmd *cobra.Command, source string, targets []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireOpenAI(); err != nil {
		return err
	}
	if source != "" && !ingest.ValidSource(source) {
		return fmt.Errorf("unknown source %q: expected resume, about, or website", source)
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	embedder, err := llm.NewClient(cfg.OpenAIKey, cfg.EmbedModel, cfg.BatchSize)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if quiet {
		out = io.Discard
	}

	if len(targets) == 0 {
		targets = []string{cfg.SiteTarget}
	}

	opts := ingest.Options{
		ResumePath:   cfg.ResumePath,
		AboutPath:    cfg.AboutPath,
		SiteTargets:  targets,
		SiteURL:      cfg.SiteTarget,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	}

	runner := ingest.NewRunner(sqlite.NewDocumentStore(db), embedder, out)

	if source != "" {
		if err := runner.RunSource(cmd.Context(), strings.ToLower(source), opts); err != nil {
			return fmt.Errorf("ingestion of %q failed: %w", source, err)
		}
		return nil
	}

	failures := runner.Run(cmd.Context(), opts)
	if len(failures) > 0 {
		names := make([]string, 0, len(failures))
		for s := range failures {
			names = append(names, s)
		}
		sort.Strings(names)
		return fmt.Errorf("ingestion finished with failures: %s", strings.Join(names, ", "))
	}

	if !quiet {
		fmt.Println("All sources ingested.")
	}
	return nil
}
