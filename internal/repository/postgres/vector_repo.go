package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/vulgate-search-api/internal/models"
	"github.com/vulgate-search-api/internal/repository"
)

// Ensure VerseSearchRepository implements repository.VerseSearchRepository
var _ repository.VerseSearchRepository = (*VerseSearchRepository)(nil)

// VerseSearchRepository implements repository.VerseSearchRepository for
// PostgreSQL with pgvector. The cosine distance operator reports the same
// [0, 2] metric as the hosted store.
type VerseSearchRepository struct {
	db *sqlx.DB
}

// NewVerseSearchRepository creates a new pgvector verse search repository
func NewVerseSearchRepository(db *sqlx.DB) *VerseSearchRepository {
	return &VerseSearchRepository{db: db}
}

// Close releases the connection pool.
func (r *VerseSearchRepository) Close() error {
	return r.db.Close()
}

// NearestVerses performs a filtered cosine nearest-neighbor query on the
// verses table.
func (r *VerseSearchRepository) NearestVerses(ctx context.Context, vector []float32, limit int, books []string) ([]models.ScoredVerse, error) {
	vec := pgvector.NewVector(vector)

	query := `
		SELECT book, chapter, verse, text,
		       embedding <=> $1::vector AS distance
		FROM verses
		WHERE embedding IS NOT NULL`
	args := []interface{}{vec}

	if len(books) > 0 {
		query += ` AND book = ANY($2)`
		args = append(args, pq.Array(books))
	}
	query += fmt.Sprintf(`
		ORDER BY embedding <=> $1::vector
		LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("vector search verses: %w", err)
	}
	defer rows.Close()

	results := []models.ScoredVerse{}
	for rows.Next() {
		var v models.ScoredVerse
		if err := rows.StructScan(&v); err != nil {
			return nil, fmt.Errorf("scan verse result: %w", err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verse results: %w", err)
	}
	return results, nil
}
