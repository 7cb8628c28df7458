// ABOUTME: Sources command shows per-source document counts
// ABOUTME: Optional --source flag lists a single source's chunks
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chairaharder/askchaira/internal/ingest"
	"github.com/chairaharder/askchaira/internal/storage/sqlite"
)

// NewSourcesCmd creates the sources command.
func NewSourcesCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Show what the chunk store currently holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSources(cmd, source)
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "List a single source's chunks: resume, about, or website")

	return cmd
}

func runSources(cmd *cobra.Command, source string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	store := sqlite.NewDocumentStore(db)
	out := cmd.OutOrStdout()

	if source == "" {
		summary, err := store.SourceSummary()
		if err != nil {
			return fmt.Errorf("failed to summarize store: %w", err)
		}
		if len(summary) == 0 {
			fmt.Fprintln(out, "Store is empty. Run 'askchaira ingest' first.")
			return nil
		}
		total := 0
		for _, sc := range summary {
			fmt.Fprintf(out, "%-10s %d chunks\n", sc.Source, sc.Count)
			total += sc.Count
		}
		fmt.Fprintf(out, "%-10s %d chunks\n", "total", total)
		return nil
	}

	if !ingest.ValidSource(source) {
		return fmt.Errorf("unknown source %q: expected resume, about, or website", source)
	}

	docs, err := store.DocumentsBySource(source)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(docs) == 0 {
		fmt.Fprintf(out, "No chunks stored for source %q.\n", source)
		return nil
	}
	for _, d := range docs {
		fmt.Fprintf(out, "%5d  %-30s %-18s %s\n", d.ID, truncate(d.Title, 30), truncate(d.Section, 18), d.URL)
	}
	return nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
