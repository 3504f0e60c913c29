package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vulgate-search-api/internal/books"
	"github.com/vulgate-search-api/internal/highlight"
	"github.com/vulgate-search-api/internal/models"
	"github.com/vulgate-search-api/internal/repository"
	pkgservices "github.com/vulgate-search-api/pkg/schema/services"
)

// storeRetryDelay is the base delay for the linear backoff between store
// query attempts.
const storeRetryDelay = 250 * time.Millisecond

// VectorSearchService runs the search pipeline: embed the query, issue a
// filtered nearest-neighbor lookup, score each hit and annotate its text.
type VectorSearchService struct {
	vectorRepo    repository.VerseSearchRepository
	embeddingsSvc *pkgservices.EmbeddingsService
	timeout       time.Duration
	storeRetries  int
}

// NewVectorSearchService creates a new vector search service. timeout bounds
// each search call (0 disables the deadline); storeRetries is the number of
// extra attempts for a failed store query.
func NewVectorSearchService(
	vectorRepo repository.VerseSearchRepository,
	embeddingsSvc *pkgservices.EmbeddingsService,
	timeout time.Duration,
	storeRetries int,
) *VectorSearchService {
	return &VectorSearchService{
		vectorRepo:    vectorRepo,
		embeddingsSvc: embeddingsSvc,
		timeout:       timeout,
		storeRetries:  storeRetries,
	}
}

// Search embeds the query and returns scored, annotated hits in the store's
// ranking order. An empty list is a valid outcome, not an error. On any
// collaborator failure the request aborts with a tagged error and no partial
// results.
func (s *VectorSearchService) Search(ctx context.Context, req models.SearchRequest) ([]models.SearchHit, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("%w: query text is empty", ErrInvalidQuery)
	}
	if req.Limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidQuery)
	}
	for _, code := range req.Books {
		if !books.IsCode(code) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBook, code)
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	vector, err := s.embeddingsSvc.EmbedQuery(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	scored, err := s.nearestWithRetry(ctx, vector, req.Limit, req.Books)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	hits := make([]models.SearchHit, 0, len(scored))
	for _, sv := range scored {
		similarity, err := toSimilarity(sv.Distance)
		if err != nil {
			return nil, err
		}
		if !survives(sv.Distance, req.Threshold) {
			continue
		}
		hits = append(hits, models.SearchHit{
			Reference:  sv.Reference(),
			Book:       sv.Book,
			Chapter:    sv.Chapter,
			Verse:      sv.Verse.Verse,
			Text:       sv.Text,
			Highlights: highlight.Annotate(sv.Text, req.Query),
			Similarity: similarity,
		})
	}
	return hits, nil
}

// nearestWithRetry issues the store query with bounded linear backoff.
// Context expiry ends the attempts immediately.
func (s *VectorSearchService) nearestWithRetry(ctx context.Context, vector []float32, limit int, bookCodes []string) ([]models.ScoredVerse, error) {
	var lastErr error
	for attempt := 0; attempt <= s.storeRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * storeRetryDelay):
			}
		}

		results, err := s.vectorRepo.NearestVerses(ctx, vector, limit, bookCodes)
		if err == nil {
			return results, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}
