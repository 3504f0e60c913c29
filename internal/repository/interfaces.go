package repository

import (
	"context"

	"github.com/vulgate-search-api/internal/models"
)

// VerseSearchRepository defines the nearest-neighbor lookup against the
// indexed verse collection.
type VerseSearchRepository interface {
	// NearestVerses returns up to limit verses closest to the query vector,
	// in the store's ascending-distance order, with raw distances attached.
	// A non-empty books slice restricts results to those short codes. An
	// error never comes with a partial result set.
	NearestVerses(ctx context.Context, vector []float32, limit int, books []string) ([]models.ScoredVerse, error)

	// Close releases whatever the backend holds (connection pool, client).
	Close() error
}
