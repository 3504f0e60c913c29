package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulgate-search-api/internal/highlight"
	"github.com/vulgate-search-api/internal/models"
	pkgservices "github.com/vulgate-search-api/pkg/schema/services"
)

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType pkgservices.TaskType) ([]float32, error) {
	f.calls++
	return f.vec, f.err
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string, taskType pkgservices.TaskType) ([][]float32, error) {
	f.calls++
	return [][]float32{f.vec}, f.err
}

type fakeRepo struct {
	verses   []models.ScoredVerse
	err      error
	failures int // number of leading calls that return err

	calls     int
	gotVector []float32
	gotLimit  int
	gotBooks  []string
}

func (f *fakeRepo) NearestVerses(ctx context.Context, vector []float32, limit int, books []string) ([]models.ScoredVerse, error) {
	f.calls++
	f.gotVector = vector
	f.gotLimit = limit
	f.gotBooks = books
	if f.err != nil && (f.failures == 0 || f.calls <= f.failures) {
		return nil, f.err
	}
	return f.verses, nil
}

func (f *fakeRepo) Close() error { return nil }

func scored(book string, chapter, verse int, text string, distance float64) models.ScoredVerse {
	return models.ScoredVerse{
		Verse:    models.Verse{Book: book, Chapter: chapter, Verse: verse, Text: text},
		Distance: distance,
	}
}

func newTestService(repo *fakeRepo, embedder *fakeEmbedder, retries int) *VectorSearchService {
	embSvc := pkgservices.NewEmbeddingsServiceWith(embedder, len(embedder.vec))
	return NewVectorSearchService(repo, embSvc, 0, retries)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	repo := &fakeRepo{}
	embedder := &fakeEmbedder{vec: []float32{0.1}}
	svc := newTestService(repo, embedder, 0)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), models.SearchRequest{Query: query, Limit: 5})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	}
	assert.Zero(t, embedder.calls, "no embedding call for invalid queries")
	assert.Zero(t, repo.calls, "no store call for invalid queries")
}

func TestSearchRejectsNonPositiveLimit(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEmbedder{vec: []float32{0.1}}, 0)

	_, err := svc.Search(context.Background(), models.SearchRequest{Query: "lux", Limit: 0})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestSearchRejectsUnknownBook(t *testing.T) {
	repo := &fakeRepo{}
	embedder := &fakeEmbedder{vec: []float32{0.1}}
	svc := newTestService(repo, embedder, 0)

	_, err := svc.Search(context.Background(), models.SearchRequest{
		Query: "lux",
		Books: []string{"Gn", "Xyz"},
		Limit: 5,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBook)
	assert.Zero(t, embedder.calls)
	assert.Zero(t, repo.calls, "no store call for unknown books")
}

func TestSearchEndToEnd(t *testing.T) {
	repo := &fakeRepo{verses: []models.ScoredVerse{
		scored("Gn", 1, 1, "In principio creavit Deus caelum et terram", 0.5),
	}}
	embedder := &fakeEmbedder{vec: []float32{0.1, 0.2, 0.3}}
	svc := newTestService(repo, embedder, 0)

	hits, err := svc.Search(context.Background(), models.SearchRequest{
		Query: "principio",
		Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	hit := hits[0]
	assert.Equal(t, "Gn 1:1", hit.Reference)
	assert.Equal(t, "Gn", hit.Book)
	assert.Equal(t, 1, hit.Chapter)
	assert.Equal(t, 1, hit.Verse)
	assert.InDelta(t, 0.5, hit.Similarity, 1e-12)

	require.Len(t, hit.Highlights, 1)
	span := hit.Highlights[0]
	assert.Equal(t, highlight.Exact, span.Kind)
	assert.Equal(t, "principio", hit.Text[span.Start:span.End])

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, repo.gotVector)
	assert.Equal(t, 1, repo.gotLimit)
	assert.Empty(t, repo.gotBooks)
}

func TestSearchPassesBookFilter(t *testing.T) {
	repo := &fakeRepo{verses: []models.ScoredVerse{
		scored("Gn", 2, 7, "Formavit igitur Dominus Deus hominem", 0.3),
	}}
	svc := newTestService(repo, &fakeEmbedder{vec: []float32{0.1}}, 0)

	hits, err := svc.Search(context.Background(), models.SearchRequest{
		Query: "homo",
		Books: []string{"Gn"},
		Limit: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gn"}, repo.gotBooks)
	require.Len(t, hits, 1)
	assert.Equal(t, "Gn", hits[0].Book)
}

func TestSearchThresholdDropsHitsInOrder(t *testing.T) {
	repo := &fakeRepo{verses: []models.ScoredVerse{
		scored("Gn", 1, 1, "first", 0.1),
		scored("Ex", 3, 14, "second", 0.5),
		scored("Ps", 22, 1, "third", 0.45),
		scored("Jo", 1, 1, "fourth", 0.9),
	}}
	svc := newTestService(repo, &fakeEmbedder{vec: []float32{0.1}}, 0)

	threshold := 0.5
	hits, err := svc.Search(context.Background(), models.SearchRequest{
		Query:     "lux",
		Limit:     4,
		Threshold: &threshold,
	})
	require.NoError(t, err)
	require.Len(t, hits, 2, "0.5 fails the strict cutoff")
	assert.Equal(t, "Gn 1:1", hits[0].Reference)
	assert.Equal(t, "Ps 22:1", hits[1].Reference, "store order preserved after drops")
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeEmbedder{vec: []float32{0.1}}, 0)

	hits, err := svc.Search(context.Background(), models.SearchRequest{Query: "lux", Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchEmbeddingFailureAborts(t *testing.T) {
	repo := &fakeRepo{}
	embedder := &fakeEmbedder{err: errors.New("model unavailable")}
	svc := newTestService(repo, embedder, 0)

	_, err := svc.Search(context.Background(), models.SearchRequest{Query: "lux", Limit: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbedding)
	assert.Zero(t, repo.calls, "embedding failure must not reach the store")
}

func TestSearchStoreFailureAfterRetries(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	svc := newTestService(repo, &fakeEmbedder{vec: []float32{0.1}}, 2)

	_, err := svc.Search(context.Background(), models.SearchRequest{Query: "lux", Limit: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)
	assert.Equal(t, 3, repo.calls, "initial attempt plus two retries")
}

func TestSearchStoreRecoversOnRetry(t *testing.T) {
	repo := &fakeRepo{
		verses:   []models.ScoredVerse{scored("Gn", 1, 1, "In principio", 0.2)},
		err:      errors.New("transient"),
		failures: 1,
	}
	svc := newTestService(repo, &fakeEmbedder{vec: []float32{0.1}}, 2)

	hits, err := svc.Search(context.Background(), models.SearchRequest{Query: "lux", Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
	require.Len(t, hits, 1)
}

func TestSearchRejectsOutOfRangeDistance(t *testing.T) {
	repo := &fakeRepo{verses: []models.ScoredVerse{
		scored("Gn", 1, 1, "In principio", 2.5),
	}}
	svc := newTestService(repo, &fakeEmbedder{vec: []float32{0.1}}, 0)

	_, err := svc.Search(context.Background(), models.SearchRequest{Query: "lux", Limit: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)
}
