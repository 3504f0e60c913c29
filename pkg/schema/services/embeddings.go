package services

import (
	"context"
	"fmt"

	"github.com/vulgate-search-api/pkg/schema/config"
)

// EmbeddingsService wraps a pluggable Embedder and enforces the configured
// vector dimension at the boundary. Built once at startup and shared
// read-only across requests.
type EmbeddingsService struct {
	embedder Embedder
	dims     int
}

// NewEmbeddingsService constructs the service for the configured provider.
func NewEmbeddingsService(ctx context.Context, cfg *config.Config) (*EmbeddingsService, error) {
	var embedder Embedder
	switch cfg.EmbeddingProvider {
	case "vertex":
		var err error
		embedder, err = NewVertexEmbedder(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create Vertex AI embedder: %w", err)
		}
	default:
		embedder = NewCustomEmbedder(cfg)
	}
	return &EmbeddingsService{embedder: embedder, dims: cfg.EmbeddingDimensions}, nil
}

// NewEmbeddingsServiceWith wraps an existing embedder. Used by tests to
// inject a double.
func NewEmbeddingsServiceWith(embedder Embedder, dims int) *EmbeddingsService {
	return &EmbeddingsService{embedder: embedder, dims: dims}
}

// EmbedQuery embeds a query for retrieval.
func (s *EmbeddingsService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vec, err := s.embedder.Embed(ctx, query, TaskTypeQuery)
	if err != nil {
		return nil, err
	}
	if err := s.checkDims(vec); err != nil {
		return nil, err
	}
	return vec, nil
}

// EmbedVerses embeds verse texts as documents for indexing.
func (s *EmbeddingsService) EmbedVerses(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := s.embedder.EmbedBatch(ctx, texts, TaskTypeDocument)
	if err != nil {
		return nil, err
	}
	for _, vec := range vecs {
		if err := s.checkDims(vec); err != nil {
			return nil, err
		}
	}
	return vecs, nil
}

// Close releases provider resources, if any.
func (s *EmbeddingsService) Close() error {
	if closer, ok := s.embedder.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (s *EmbeddingsService) checkDims(vec []float32) error {
	if s.dims > 0 && len(vec) != s.dims {
		return fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vec), s.dims)
	}
	return nil
}
