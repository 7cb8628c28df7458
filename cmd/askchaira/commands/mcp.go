// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes ask, ingest, and store inspection tools over stdio
package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/chairaharder/askchaira/internal/client"
	"github.com/chairaharder/askchaira/internal/ingest"
	"github.com/chairaharder/askchaira/internal/llm"
	"github.com/chairaharder/askchaira/internal/mcp"
	"github.com/chairaharder/askchaira/internal/storage/sqlite"
)

// NewMCPCmd creates the MCP command.
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Run askchaira as an MCP (Model Context Protocol) server over stdio.

Agents get three tools: ask_question against the answer endpoint,
ingest_source to refresh one source, and list_documents to inspect
the store.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by an agent host)
  askchaira mcp`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	store := sqlite.NewDocumentStore(db)

	// Ingestion needs the embedding key; the ask tool needs the endpoint.
	// Either may be absent; the matching tool then errors per call instead
	// of blocking server startup.
	var embedder llm.Embedder
	if cfg.OpenAIKey != "" {
		embedder, err = llm.NewClient(cfg.OpenAIKey, cfg.EmbedModel, cfg.BatchSize)
		if err != nil {
			return err
		}
	} else {
		log.Println("Warning: OPENAI_API_KEY not set - ingest_source will not work")
		embedder = nil
	}

	var askClient *client.Client
	if cfg.AskURL != "" {
		askClient = client.NewClient(cfg.AskURL)
	} else {
		log.Println("Warning: ASKCHAIRA_ASK_URL not set - ask_question will not work")
	}

	opts := ingest.Options{
		ResumePath:   cfg.ResumePath,
		AboutPath:    cfg.AboutPath,
		SiteTargets:  []string{cfg.SiteTarget},
		SiteURL:      cfg.SiteTarget,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	}

	// Tool output goes to the client; progress logging would corrupt the
	// stdio transport, so the runner writes to stderr.
	var progress io.Writer = os.Stderr
	if quiet {
		progress = io.Discard
	}
	runner := ingest.NewRunner(store, embedder, progress)

	server := mcpserver.NewMCPServer(
		"askchaira",
		"0.1.0",
	)

	mcp.RegisterTools(server, store, runner, opts, askClient, cfg.UserLabel)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("askchaira MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
		if err := db.Close(); err != nil {
			log.Printf("Warning: Error closing store: %v", err)
		}

	case err := <-serverErr:
		_ = db.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
