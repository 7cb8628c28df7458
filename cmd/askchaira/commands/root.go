// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for ingest, chat, sources, clear, mcp, and version
package commands

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chairaharder/askchaira/internal/config"
)

// Global flags shared across commands
var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "askchaira",
		Short: "Content pipeline and chat client for chairaharder.com",
		Long: `askchaira ingests Chaira's resume, bio, and website into an
embedded, source-keyed chunk store, and talks to the site's answer
endpoint from a terminal chat widget.

Ingestion replaces a source's rows wholesale on every run, so the store
always reflects the latest extraction.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewSourcesCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig loads .env (when present) and the environment configuration.
// Every data-touching command goes through here so the two loads cannot
// drift apart.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}
	return config.Load()
}
