// ABOUTME: MCP tool handler implementations for the lorekeeper server
// ABOUTME: Thin argument extraction over the router and ingestor
package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/lorekeeper/internal/core"
	"github.com/harper/lorekeeper/internal/router"
)

const defaultSessionID = "default"

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	router   *router.Router
	ingestor *core.Ingestor
}

// Ask handles the ask tool
func (h *Handlers) Ask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	sessionID := request.GetString("session_id", defaultSessionID)

	return mcp.NewToolResultText(h.router.Answer(ctx, sessionID, question)), nil
}

// SearchLore handles the search_lore tool
func (h *Handlers) SearchLore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	return mcp.NewToolResultText(h.router.SearchLore(ctx, query)), nil
}

// LookupCompendium handles the lookup_compendium tool
func (h *Handlers) LookupCompendium(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required and must be a string"), nil
	}

	return mcp.NewToolResultText(h.router.LookupEntity(ctx, name)), nil
}

// ShowLocations handles the show_locations tool
func (h *Handlers) ShowLocations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := request.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("category argument is required and must be a string"), nil
	}
	name := request.GetString("name", "")
	region := request.GetString("region", "")
	layer := request.GetString("layer", "")

	return mcp.NewToolResultText(h.router.ShowLocations(ctx, category, name, region, layer)), nil
}

// FindWalkthrough handles the find_walkthrough tool
func (h *Handlers) FindWalkthrough(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := request.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError("topic argument is required and must be a string"), nil
	}
	sessionID := request.GetString("session_id", defaultSessionID)

	return mcp.NewToolResultText(h.router.FindWalkthrough(ctx, sessionID, topic)), nil
}

// IngestLore handles the ingest_lore tool
func (h *Handlers) IngestLore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sourceID, err := request.RequireString("source_id")
	if err != nil {
		return mcp.NewToolResultError("source_id argument is required and must be a string"), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	if h.ingestor == nil {
		return mcp.NewToolResultError("ingestion is not configured on this server"), nil
	}

	res, err := h.ingestor.IngestDocument(ctx, sourceID, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Ingested %s: %d chunks (%d added, %d already present)",
		res.SourceID, res.Chunks, res.Added, res.Skipped)), nil
}
