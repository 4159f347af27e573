// ABOUTME: Main entry point for the lorekeeper MCP server with stdio transport
// ABOUTME: Initializes knowledge sources, the router, and all MCP tools
package main

import (
	"log"
	"path/filepath"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/lorekeeper/internal/atlas"
	"github.com/harper/lorekeeper/internal/compendium"
	"github.com/harper/lorekeeper/internal/config"
	"github.com/harper/lorekeeper/internal/core"
	"github.com/harper/lorekeeper/internal/llm"
	"github.com/harper/lorekeeper/internal/maprender"
	"github.com/harper/lorekeeper/internal/mcp"
	"github.com/harper/lorekeeper/internal/router"
	"github.com/harper/lorekeeper/internal/storage"
	"github.com/harper/lorekeeper/internal/video"
	"github.com/harper/lorekeeper/internal/wiki"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := storage.Open(filepath.Join(cfg.DataDir, "lorekeeper.db"))
	if err != nil {
		log.Fatalf("Failed to open semantic index: %v", err)
	}
	defer db.Close()
	index := storage.NewIndex(db, cfg.Collection)

	var retriever router.Retriever
	var ingestor *core.Ingestor
	if embedder, err := llm.New(cfg); err != nil {
		log.Printf("Warning: semantic search disabled: %v", err)
	} else {
		retriever = core.NewRetriever(embedder, index, cfg.ResultsPerSub, cfg.WordBudget)
		ingestor = core.NewIngestor(embedder, index, cfg.ChunkMaxWords, cfg.ChunkOverlap)
	}

	var catalog router.EntityCatalog
	if cat, err := compendium.Load(cfg.CatalogPath, cfg.ImageBaseURL); err != nil {
		log.Printf("Warning: compendium disabled: %v", err)
	} else {
		catalog = cat
	}

	var locations router.LocationIndex
	if ix, err := atlas.LoadDir(cfg.AtlasDir); err != nil {
		log.Printf("Warning: location atlas disabled: %v", err)
	} else {
		locations = ix
	}

	var videos router.VideoSource
	if cfg.YouTubeKey == "" {
		log.Println("Warning: YOUTUBE_API_KEY not set, walkthrough search disabled")
	} else {
		videos = video.NewSearcher(cfg.YouTubeKey)
	}

	rt := router.New(
		retriever,
		catalog,
		wiki.New(cfg.WikiBaseURL, cfg.Timeout),
		locations,
		maprender.NewRenderer(cfg.MapDir, cfg.IconDir, cfg.MapOutputDir),
		videos,
	)

	server := mcpserver.NewMCPServer(
		"Lorekeeper Knowledge Agent",
		"0.1.0",
	)
	mcp.RegisterTools(server, rt, ingestor)

	log.Println("Lorekeeper MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
