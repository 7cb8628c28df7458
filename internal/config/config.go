// ABOUTME: Centralized configuration for the askchaira pipeline and client
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/chairaharder/askchaira/internal/chunker"
	"github.com/chairaharder/askchaira/internal/llm"
	"github.com/chairaharder/askchaira/internal/storage/sqlite"
)

// Default source material shipped alongside the site.
const (
	DefaultResumePath = "Chaira_Harder_Resume.pdf"
	DefaultAboutPath  = "about-me.md"
	DefaultSiteTarget = "https://chairaharder.com"
	DefaultUserLabel  = "visitor"
)

// Config holds all configuration for ingestion and the chat client.
type Config struct {
	// OpenAI settings
	OpenAIKey  string
	EmbedModel string
	BatchSize  int

	// Store settings
	DBPath string

	// Chunking settings
	ChunkSize    int
	ChunkOverlap int

	// Source material
	ResumePath string
	AboutPath  string
	SiteTarget string

	// Chat settings
	AskURL    string
	UserLabel string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		EmbedModel:   getEnv("EMBED_MODEL", llm.DefaultEmbeddingModel),
		BatchSize:    getEnvInt("EMBEDDING_BATCH_SIZE", llm.DefaultBatchSize),
		DBPath:       getEnv("ASKCHAIRA_DB", sqlite.DefaultDBPath()),
		ChunkSize:    getEnvInt("CHUNK_SIZE", chunker.DefaultSize),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", chunker.DefaultOverlap),
		ResumePath:   getEnv("RESUME_PATH", DefaultResumePath),
		AboutPath:    getEnv("ABOUT_PATH", DefaultAboutPath),
		SiteTarget:   getEnv("SITE_TARGET", DefaultSiteTarget),
		AskURL:       os.Getenv("ASKCHAIRA_ASK_URL"),
		UserLabel:    getEnv("ASKCHAIRA_USER_LABEL", DefaultUserLabel),
	}

	return cfg, cfg.Validate()
}

// Validate checks structural invariants. Missing credentials are checked
// separately by the commands that need them, before any work begins.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be strictly less than CHUNK_SIZE (%d)",
			c.ChunkOverlap, c.ChunkSize)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("EMBEDDING_BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	return nil
}

// RequireOpenAI fails when the embedding credential is absent. Ingestion
// calls this before touching any source.
func (c *Config) RequireOpenAI() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("missing required environment variable: OPENAI_API_KEY")
	}
	return nil
}

// RequireAskURL fails when the answer endpoint is not configured. The chat
// client calls this before opening the widget.
func (c *Config) RequireAskURL() error {
	if c.AskURL == "" {
		return fmt.Errorf("missing required environment variable: ASKCHAIRA_ASK_URL")
	}
	return nil
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
