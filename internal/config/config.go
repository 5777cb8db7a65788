// ABOUTME: Centralized configuration for the Lumina study assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the study assistant
type Config struct {
	// Charm KV settings (document store backend)
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	VectorDim      int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Flashcard database (sqlite)
	DBPath string

	// Chunking
	ChunkSize    int
	ChunkOverlap int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		CharmHost:      getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:    getEnv("CHARM_DB", "lumina"),
		AutoSync:       getEnvBool("CHARM_AUTO_SYNC", true),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("LUMINA_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("LUMINA_EMBEDDING_MODEL", "text-embedding-3-small"),
		VectorDim:      getEnvInt("LUMINA_VECTOR_DIM", 768),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		DBPath:         getEnv("LUMINA_DB_PATH", defaultDBPath()),
		ChunkSize:      getEnvInt("LUMINA_CHUNK_SIZE", 1000),
		ChunkOverlap:   getEnvInt("LUMINA_CHUNK_OVERLAP", 200),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.VectorDim <= 0 {
		return fmt.Errorf("LUMINA_VECTOR_DIM must be positive, got %d", c.VectorDim)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("LUMINA_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("LUMINA_CHUNK_OVERLAP must be in [0, chunk size), got %d", c.ChunkOverlap)
	}
	return nil
}

// defaultDBPath follows the XDG data directory convention
func defaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".local", "share", "lumina", "lumina.db")
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "lumina", "lumina.db")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
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
