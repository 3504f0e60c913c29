package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds the store and embedding settings shared by the API, the CLI
// and the one-shot scripts.
type Config struct {
	// Weaviate (primary vector store)
	WeaviateURL    string
	WeaviateAPIKey string
	CollectionName string

	// PostgreSQL with pgvector (alternate backend)
	PostgresURI string

	// Embeddings
	EmbeddingProvider   string // "custom" or "vertex"
	EmbeddingServiceURL string // For custom provider
	EmbeddingDimensions int

	// Vertex AI (when EmbeddingProvider = "vertex")
	GCPProjectID string
	GCPLocation  string
	VertexModel  string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration instance
func GetConfig() *Config {
	once.Do(func() {
		config = loadConfig()
	})
	return config
}

func loadConfig() *Config {
	return &Config{
		WeaviateURL:    getEnv("WEAVIATE_URL", ""),
		WeaviateAPIKey: getEnv("WEAVIATE_API_KEY", ""),
		CollectionName: getEnv("COLLECTION_NAME", "Vulgate"),

		PostgresURI: getEnv("POSTGRES_URI", ""),

		// The reference model is a self-hosted LaBSE sentence-transformers
		// service, so "custom" is the default provider.
		EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", "custom"),
		EmbeddingServiceURL: getEnv("EMBEDDING_SERVICE_URL", "http://localhost:8001"),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 768),

		GCPProjectID: getEnv("GCP_PROJECT_ID", ""),
		GCPLocation:  getEnv("GCP_LOCATION", "us-central1"),
		VertexModel:  getEnv("VERTEX_MODEL", "gemini-embedding-001"),
	}
}

// ValidateWeaviate reports whether the required Weaviate settings are present.
// Missing values are a startup-time fatal condition, not a per-request error.
func (c *Config) ValidateWeaviate() error {
	if c.WeaviateURL == "" {
		return fmt.Errorf("WEAVIATE_URL is required")
	}
	if c.WeaviateAPIKey == "" {
		return fmt.Errorf("WEAVIATE_API_KEY is required")
	}
	if c.CollectionName == "" {
		return fmt.Errorf("COLLECTION_NAME is required")
	}
	return nil
}

// ValidatePostgres reports whether the pgvector backend can be configured.
func (c *Config) ValidatePostgres() error {
	if c.PostgresURI == "" {
		return fmt.Errorf("POSTGRES_URI is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return i
	}
	return defaultValue
}
