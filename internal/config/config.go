// ABOUTME: Centralized configuration for the lorekeeper knowledge agent
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Config holds all configuration for the knowledge agent
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Retrieval settings
	Collection     string
	ResultsPerSub  int
	WordBudget     int
	ChunkMaxWords  int
	ChunkOverlap   int

	// Data locations
	DataDir      string
	CatalogPath  string
	AtlasDir     string
	MapDir       string
	IconDir      string
	MapOutputDir string

	// Image link rewriting for catalog entries
	ImageBaseURL string

	// External collaborators
	YouTubeKey  string
	WikiBaseURL string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel: getEnv("LOREKEEPER_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),

		Collection:    getEnv("LOREKEEPER_COLLECTION", "lore_transcripts"),
		ResultsPerSub: getEnvInt("LOREKEEPER_RESULTS_PER_SUBQUERY", 3),
		WordBudget:    getEnvInt("LOREKEEPER_WORD_BUDGET", 4000),
		ChunkMaxWords: getEnvInt("LOREKEEPER_CHUNK_MAX_WORDS", 300),
		ChunkOverlap:  getEnvInt("LOREKEEPER_CHUNK_OVERLAP", 50),

		DataDir:      getEnv("LOREKEEPER_DATA_DIR", defaultDataDir()),
		CatalogPath:  getEnv("LOREKEEPER_CATALOG", "data/compendium/COMPENDIUM.json"),
		AtlasDir:     getEnv("LOREKEEPER_ATLAS_DIR", "data/maps/source_json"),
		MapDir:       getEnv("LOREKEEPER_MAP_DIR", "assets/maps"),
		IconDir:      getEnv("LOREKEEPER_ICON_DIR", "assets/icons"),
		MapOutputDir: getEnv("LOREKEEPER_MAP_OUTPUT_DIR", "generated_maps"),

		ImageBaseURL: os.Getenv("LOREKEEPER_IMAGE_BASE_URL"),

		YouTubeKey:  os.Getenv("YOUTUBE_API_KEY"),
		WikiBaseURL: getEnv("LOREKEEPER_WIKI_BASE_URL", "https://www.ign.com/wikis/the-legend-of-zelda-tears-of-the-kingdom"),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants that would otherwise surface
// as confusing runtime failures deep inside the retrieval pipeline.
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ResultsPerSub <= 0 {
		return fmt.Errorf("LOREKEEPER_RESULTS_PER_SUBQUERY must be positive, got %d", c.ResultsPerSub)
	}
	if c.WordBudget <= 0 {
		return fmt.Errorf("LOREKEEPER_WORD_BUDGET must be positive, got %d", c.WordBudget)
	}
	if c.ChunkOverlap >= c.ChunkMaxWords {
		return fmt.Errorf("LOREKEEPER_CHUNK_OVERLAP (%d) must be smaller than LOREKEEPER_CHUNK_MAX_WORDS (%d)",
			c.ChunkOverlap, c.ChunkMaxWords)
	}
	return nil
}

// defaultDataDir returns the XDG-compliant data directory
func defaultDataDir() string {
	return filepath.Join(xdg.DataHome, "lorekeeper")
}

// Helper functions

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
