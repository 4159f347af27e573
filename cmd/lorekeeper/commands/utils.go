// ABOUTME: Shared wiring helpers for CLI commands
// ABOUTME: Builds the router and ingestor from configuration, degrading per source
package commands

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/harper/lorekeeper/internal/atlas"
	"github.com/harper/lorekeeper/internal/compendium"
	"github.com/harper/lorekeeper/internal/config"
	"github.com/harper/lorekeeper/internal/core"
	"github.com/harper/lorekeeper/internal/llm"
	"github.com/harper/lorekeeper/internal/maprender"
	"github.com/harper/lorekeeper/internal/router"
	"github.com/harper/lorekeeper/internal/storage"
	"github.com/harper/lorekeeper/internal/video"
	"github.com/harper/lorekeeper/internal/wiki"
)

// loadConfig loads .env then the environment configuration
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}
	return config.Load()
}

// buildAgent wires every knowledge source the configuration allows. A
// missing credential or data file disables that source with a warning;
// only the database itself is a hard failure. The returned cleanup
// closes the database.
func buildAgent(cfg *config.Config) (*router.Router, *core.Ingestor, func(), error) {
	db, err := storage.Open(filepath.Join(cfg.DataDir, "lorekeeper.db"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening semantic index: %w", err)
	}
	index := storage.NewIndex(db, cfg.Collection)

	var retriever router.Retriever
	var ingestor *core.Ingestor
	if embedder, err := llm.New(cfg); err != nil {
		if !quiet {
			log.Printf("Warning: semantic search disabled: %v", err)
		}
	} else {
		retriever = core.NewRetriever(embedder, index, cfg.ResultsPerSub, cfg.WordBudget)
		ingestor = core.NewIngestor(embedder, index, cfg.ChunkMaxWords, cfg.ChunkOverlap)
	}

	var catalog router.EntityCatalog
	if cat, err := compendium.Load(cfg.CatalogPath, cfg.ImageBaseURL); err != nil {
		if !quiet {
			log.Printf("Warning: compendium disabled: %v", err)
		}
	} else {
		catalog = cat
	}

	var locations router.LocationIndex
	if ix, err := atlas.LoadDir(cfg.AtlasDir); err != nil {
		if !quiet {
			log.Printf("Warning: location atlas disabled: %v", err)
		}
	} else {
		locations = ix
	}

	renderer := maprender.NewRenderer(cfg.MapDir, cfg.IconDir, cfg.MapOutputDir)
	wikiClient := wiki.New(cfg.WikiBaseURL, cfg.Timeout)

	var videos router.VideoSource
	if cfg.YouTubeKey == "" {
		if !quiet {
			log.Printf("Warning: YOUTUBE_API_KEY not set, walkthrough search disabled")
		}
	} else {
		videos = video.NewSearcher(cfg.YouTubeKey)
	}

	rt := router.New(retriever, catalog, wikiClient, locations, renderer, videos)
	cleanup := func() {
		if err := db.Close(); err != nil && !quiet {
			log.Printf("Warning: closing database: %v", err)
		}
	}
	return rt, ingestor, cleanup, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}
