// ABOUTME: MCP tool handler implementations for the askchaira server
// ABOUTME: Wraps the ask client, ingestion runner, and document store
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chairaharder/askchaira/internal/client"
	"github.com/chairaharder/askchaira/internal/ingest"
	"github.com/chairaharder/askchaira/internal/models"
	"github.com/chairaharder/askchaira/internal/storage/sqlite"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	store     *sqlite.DocumentStore
	runner    *ingest.Runner
	opts      ingest.Options
	askClient *client.Client
	userLabel string
	sessionID string // one conversation per server run
}

// AskQuestion handles the ask_question tool.
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	if h.askClient == nil {
		return mcp.NewToolResultError("no answer endpoint configured: set ASKCHAIRA_ASK_URL"), nil
	}

	sources := models.DefaultSources()
	// Arguments is typed interface{}; arrays need a manual assertion.
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		if raw, exists := args["sources"]; exists {
			if arr, ok := raw.([]interface{}); ok && len(arr) > 0 {
				sources = sources[:0]
				for _, v := range arr {
					if s, ok := v.(string); ok {
						sources = append(sources, s)
					}
				}
			}
		}
	}

	answer, err := h.askClient.Ask(ctx, client.AskRequest{
		Query:     query,
		Sources:   sources,
		SessionID: h.sessionID,
		UserLabel: h.userLabel,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ask failed: %v", err)), nil
	}

	citations := make([]map[string]interface{}, 0, len(answer.Matches))
	for _, m := range answer.Matches {
		citations = append(citations, map[string]interface{}{
			"title":  m.Title,
			"source": m.Source,
			"url":    m.URL,
		})
	}

	response := map[string]interface{}{
		"answer":    answer.Text,
		"citations": citations,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IngestSource handles the ingest_source tool.
func (h *Handlers) IngestSource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError("source argument is required and must be a string"), nil
	}
	if !ingest.ValidSource(source) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown source %q: expected resume, about, or website", source)), nil
	}

	if err := h.runner.RunSource(ctx, source, h.opts); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion of %q failed: %v", source, err)), nil
	}

	count, err := h.store.CountBySource(source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingested but could not count documents: %v", err)), nil
	}

	response := map[string]interface{}{
		"source":    source,
		"documents": count,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListDocuments handles the list_documents tool.
func (h *Handlers) ListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := request.GetString("source", "")

	var response map[string]interface{}

	if source == "" {
		summary, err := h.store.SourceSummary()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to summarize store: %v", err)), nil
		}
		counts := make([]map[string]interface{}, 0, len(summary))
		for _, sc := range summary {
			counts = append(counts, map[string]interface{}{
				"source":    sc.Source,
				"documents": sc.Count,
			})
		}
		response = map[string]interface{}{"sources": counts}
	} else {
		if !ingest.ValidSource(source) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown source %q: expected resume, about, or website", source)), nil
		}
		docs, err := h.store.DocumentsBySource(source)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list documents: %v", err)), nil
		}
		items := make([]map[string]interface{}, 0, len(docs))
		for _, d := range docs {
			items = append(items, map[string]interface{}{
				"id":      d.ID,
				"title":   d.Title,
				"url":     d.URL,
				"section": d.Section,
				"length":  len(d.Content),
			})
		}
		response = map[string]interface{}{
			"source":    source,
			"documents": items,
		}
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
