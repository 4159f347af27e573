// ABOUTME: MCP tool definitions and registration for the lorekeeper server
// ABOUTME: Exposes lore search, compendium, map, walkthrough, and ingest tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/lorekeeper/internal/core"
	"github.com/harper/lorekeeper/internal/router"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, rt *router.Router, ingestor *core.Ingestor) *Handlers {
	handlers := &Handlers{
		router:   rt,
		ingestor: ingestor,
	}

	// 1. ask - route a free-form question to the right source
	server.AddTool(mcp.Tool{
		Name:        "ask",
		Description: "Ask the lorekeeper any question about the game. Routes to lore search, the compendium, the map, or walkthrough search as appropriate and returns a tagged response.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The user's question",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation session identifier (default: 'default')",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.Ask)

	// 2. search_lore - semantic search over ingested lore transcripts
	server.AddTool(mcp.Tool{
		Name:        "search_lore",
		Description: "Search ingested lore and history transcripts semantically and return the most relevant passages.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Lore or history question",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchLore)

	// 3. lookup_compendium - resolve a named creature, item, or place
	server.AddTool(mcp.Tool{
		Name:        "lookup_compendium",
		Description: "Look up a named creature, item, or place. Consults the wiki first and the compendium second; the answer may include an image reference.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Entity name, e.g. 'Bokoblin'",
				},
			},
			Required: []string{"name"},
		},
	}, handlers.LookupCompendium)

	// 4. show_locations - find locations and render them on a map
	server.AddTool(mcp.Tool{
		Name:        "show_locations",
		Description: "Find locations by category, name, or region and render them onto the map. The answer may include a rendered map image path.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Location category, e.g. 'monster' or 'shrine'",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Optional name filter within the category",
				},
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Optional region name, e.g. 'eldin'",
				},
				"layer": map[string]interface{}{
					"type":        "string",
					"description": "Map layer: surface, sky, or depths (default: surface)",
				},
			},
			Required: []string{"category"},
		},
	}, handlers.ShowLocations)

	// 5. find_walkthrough - throttled walkthrough video search
	server.AddTool(mcp.Tool{
		Name:        "find_walkthrough",
		Description: "Request walkthrough help for a challenge. The first ask in a session is deferred with encouragement; a repeated ask searches for guide videos.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"topic": map[string]interface{}{
					"type":        "string",
					"description": "The challenge to find a walkthrough for",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation session identifier (default: 'default')",
				},
			},
			Required: []string{"topic"},
		},
	}, handlers.FindWalkthrough)

	// 6. ingest_lore - chunk, embed, and index a transcript
	server.AddTool(mcp.Tool{
		Name:        "ingest_lore",
		Description: "Ingest a lore transcript into the semantic index. Chunks and embeds the text; re-ingesting the same source is a no-op.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source_id": map[string]interface{}{
					"type":        "string",
					"description": "Stable identifier for the transcript source, e.g. a video ID",
				},
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Full transcript text",
				},
			},
			Required: []string{"source_id", "text"},
		},
	}, handlers.IngestLore)

	return handlers
}
