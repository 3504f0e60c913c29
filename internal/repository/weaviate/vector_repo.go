// Package weaviate implements verse search against a hosted Weaviate
// collection. The collection carries one object per verse with text, book,
// chapter and verse attributes plus the precomputed embedding.
package weaviate

import (
	"context"
	"fmt"
	"math"

	"github.com/vulgate-search-api/internal/models"
	"github.com/vulgate-search-api/internal/repository"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	wvmodels "github.com/weaviate/weaviate/entities/models"
)

// Ensure VerseSearchRepository implements repository.VerseSearchRepository
var _ repository.VerseSearchRepository = (*VerseSearchRepository)(nil)

// VerseSearchRepository implements repository.VerseSearchRepository using
// Weaviate's GraphQL nearVector query.
type VerseSearchRepository struct {
	client     *weaviate.Client
	collection string
}

// NewVerseSearchRepository creates a new Weaviate verse search repository
func NewVerseSearchRepository(client *weaviate.Client, collection string) *VerseSearchRepository {
	return &VerseSearchRepository{client: client, collection: collection}
}

// Close is a no-op: the client wraps a stateless HTTP transport.
func (r *VerseSearchRepository) Close() error {
	return nil
}

// NearestVerses performs a filtered nearest-neighbor query and returns hits
// in Weaviate's ascending-distance order.
func (r *VerseSearchRepository) NearestVerses(ctx context.Context, vector []float32, limit int, books []string) ([]models.ScoredVerse, error) {
	nearVector := r.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	query := r.client.GraphQL().Get().
		WithClassName(r.collection).
		WithFields(
			graphql.Field{Name: "text"},
			graphql.Field{Name: "book"},
			graphql.Field{Name: "chapter"},
			graphql.Field{Name: "verse"},
			graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
		).
		WithNearVector(nearVector).
		WithLimit(limit)

	if len(books) > 0 {
		query = query.WithWhere(filters.Where().
			WithPath([]string{"book"}).
			WithOperator(filters.ContainsAny).
			WithValueText(books...))
	}

	resp, err := query.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("near-vector query: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("near-vector query: %s", resp.Errors[0].Message)
	}

	return decodeVerses(resp.Data, r.collection)
}

// decodeVerses converts the loosely-typed GraphQL payload into typed verses,
// validating each record once at the boundary.
func decodeVerses(data map[string]wvmodels.JSONObject, collection string) ([]models.ScoredVerse, error) {
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed response: missing Get section")
	}
	raw, ok := get[collection].([]interface{})
	if !ok {
		if get[collection] == nil {
			return []models.ScoredVerse{}, nil
		}
		return nil, fmt.Errorf("malformed response: collection %q is not a list", collection)
	}

	results := make([]models.ScoredVerse, 0, len(raw))
	for i, item := range raw {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("record %d: not an object", i)
		}
		verse, err := decodeVerse(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		results = append(results, verse)
	}
	return results, nil
}

func decodeVerse(record map[string]interface{}) (models.ScoredVerse, error) {
	var sv models.ScoredVerse
	var err error

	if sv.Book, err = stringField(record, "book"); err != nil {
		return sv, err
	}
	if sv.Text, err = stringField(record, "text"); err != nil {
		return sv, err
	}
	if sv.Chapter, err = intField(record, "chapter"); err != nil {
		return sv, err
	}
	if sv.Verse.Verse, err = intField(record, "verse"); err != nil {
		return sv, err
	}

	additional, ok := record["_additional"].(map[string]interface{})
	if !ok {
		return sv, fmt.Errorf("missing _additional metadata")
	}
	sv.Distance, ok = additional["distance"].(float64)
	if !ok {
		return sv, fmt.Errorf("missing distance metadata")
	}
	return sv, nil
}

func stringField(record map[string]interface{}, name string) (string, error) {
	v, ok := record[name].(string)
	if !ok {
		return "", fmt.Errorf("attribute %q missing or not a string", name)
	}
	return v, nil
}

// intField decodes a GraphQL integer attribute, which arrives as a JSON
// number. Verse coordinates are always positive.
func intField(record map[string]interface{}, name string) (int, error) {
	v, ok := record[name].(float64)
	if !ok || v != math.Trunc(v) || v < 1 {
		return 0, fmt.Errorf("attribute %q missing or not a positive integer", name)
	}
	return int(v), nil
}
