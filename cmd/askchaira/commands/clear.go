// ABOUTME: Clear command removes stored chunks and/or the chat transcript
// ABOUTME: Store clears are per source; the session id always survives
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chairaharder/askchaira/internal/ingest"
	"github.com/chairaharder/askchaira/internal/session"
	"github.com/chairaharder/askchaira/internal/storage/sqlite"
)

// NewClearCmd creates the clear command group.
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear stored content or the chat transcript",
	}

	cmd.AddCommand(newClearStoreCmd())
	cmd.AddCommand(newClearChatCmd())

	return cmd
}

func newClearStoreCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Remove stored chunks for one source or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			sources := ingest.Sources()
			if source != "" {
				if !ingest.ValidSource(source) {
					return fmt.Errorf("unknown source %q: expected resume, about, or website", source)
				}
				sources = []string{source}
			}

			for _, s := range sources {
				n, err := store.PurgeSource(s)
				if err != nil {
					return fmt.Errorf("failed to clear source %q: %w", s, err)
				}
				if !quiet {
					fmt.Fprintf(out, "Removed %d chunks from %q.\n", n, s)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Clear a single source: resume, about, or website")

	return cmd
}

func newClearChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Clear the chat transcript (the session id is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := session.NewManager(sqlite.DefaultDataDir())
			sess := manager.Load()
			sess.Clear()
			if err := manager.Save(sess); err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Transcript cleared.")
			}
			return nil
		},
	}
}
