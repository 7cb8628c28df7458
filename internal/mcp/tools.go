// ABOUTME: MCP tool definitions and registration for the askchaira server
// ABOUTME: Exposes question answering, ingestion, and store inspection as tools
package mcp

import (
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/chairaharder/askchaira/internal/client"
	"github.com/chairaharder/askchaira/internal/ingest"
	"github.com/chairaharder/askchaira/internal/storage/sqlite"
)

// RegisterTools registers all MCP tools with the server. The ask client may
// be nil when no answer endpoint is configured; ask_question then reports a
// configuration error instead of failing at startup.
func RegisterTools(server *mcpserver.MCPServer, store *sqlite.DocumentStore, runner *ingest.Runner, opts ingest.Options, askClient *client.Client, userLabel string) *Handlers {
	handlers := &Handlers{
		store:     store,
		runner:    runner,
		opts:      opts,
		askClient: askClient,
		userLabel: userLabel,
		sessionID: uuid.NewString(),
	}

	// 1. ask_question - Ask a question against the indexed content
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Ask a question about Chaira. Answers come from the indexed resume, about page, and website content, with source citations.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question to ask",
				},
				"sources": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Sources to search (default: resume, about, website)",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.AskQuestion)

	// 2. ingest_source - Re-ingest one source into the store
	server.AddTool(mcp.Tool{
		Name:        "ingest_source",
		Description: "Re-ingest one content source (resume, about, or website). Existing rows for the source are replaced.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Source to ingest: resume, about, or website",
				},
			},
			Required: []string{"source"},
		},
	}, handlers.IngestSource)

	// 3. list_documents - Inspect the stored chunks
	server.AddTool(mcp.Tool{
		Name:        "list_documents",
		Description: "List stored document chunks. Without a source, returns per-source counts; with one, returns that source's chunks.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Optional source filter: resume, about, or website",
				},
			},
		},
	}, handlers.ListDocuments)

	return handlers
}
