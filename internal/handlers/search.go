package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vulgate-search-api/internal/books"
	"github.com/vulgate-search-api/internal/highlight"
	"github.com/vulgate-search-api/internal/models"
	"github.com/vulgate-search-api/internal/services"
)

// Result-count bounds shared by both search endpoints.
const (
	maxLimit         = 50
	defaultPostLimit = 20
	defaultGetLimit  = 5
	defaultThreshold = 0.5
)

// SearchHandler handles search endpoints
type SearchHandler struct {
	vectorSearch *services.VectorSearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(vectorSearch *services.VectorSearchService) *SearchHandler {
	return &SearchHandler{
		vectorSearch: vectorSearch,
	}
}

// SemanticSearch handles POST /search - the interactive multi-book form.
// No threshold: every hit up to the limit is returned.
func (h *SearchHandler) SemanticSearch(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SemanticSearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	codes, err := resolveBooks(req.Books)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit := req.Limit
	if limit <= 0 || limit > maxLimit {
		limit = defaultPostLimit
	}

	hits, err := h.vectorSearch.Search(ctx, models.SearchRequest{
		Query: req.Query,
		Books: codes,
		Limit: limit,
	})
	if err != nil {
		return searchError(err)
	}

	return c.JSON(http.StatusOK, models.SemanticSearchResponse{
		Query:   req.Query,
		Results: toResults(hits, req.Query),
	})
}

// ThresholdSearch handles GET /search - the alternate form with an explicit
// similarity threshold (expressed as a strict distance cutoff).
func (h *SearchHandler) ThresholdSearch(c echo.Context) error {
	ctx := c.Request().Context()

	query := c.QueryParam("q")

	codes, err := resolveBooks(c.QueryParams()["book"])
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit := defaultGetLimit
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxLimit {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer between 1 and 50")
		}
	}

	threshold := defaultThreshold
	if raw := c.QueryParam("threshold"); raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "threshold must be a number")
		}
	}

	hits, err := h.vectorSearch.Search(ctx, models.SearchRequest{
		Query:     query,
		Books:     codes,
		Limit:     limit,
		Threshold: &threshold,
	})
	if err != nil {
		return searchError(err)
	}

	return c.JSON(http.StatusOK, models.SemanticSearchResponse{
		Query:   query,
		Results: toResults(hits, query),
	})
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/search", h.SemanticSearch)
	g.GET("/search", h.ThresholdSearch)
}

// resolveBooks translates user-facing book selections (full names or short
// codes) into the short codes stored in the vector store.
func resolveBooks(selections []string) ([]string, error) {
	if len(selections) == 0 {
		return nil, nil
	}
	codes := make([]string, len(selections))
	for i, sel := range selections {
		code, ok := books.Resolve(sel)
		if !ok {
			return nil, errors.New("unknown book: " + sel)
		}
		codes[i] = code
	}
	return codes, nil
}

func toResults(hits []models.SearchHit, query string) []models.VerseResult {
	results := make([]models.VerseResult, len(hits))
	for i, hit := range hits {
		results[i] = models.VerseResult{
			Reference:       hit.Reference,
			Book:            hit.Book,
			Chapter:         hit.Chapter,
			Verse:           hit.Verse,
			Text:            hit.Text,
			HighlightedText: highlight.HTML(hit.Text, query),
			Highlights:      hit.Highlights,
			Similarity:      services.RoundScore(hit.Similarity),
		}
	}
	return results
}

// searchError maps tagged service errors onto HTTP statuses: request
// validation to 400, collaborator failures to 502.
func searchError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrInvalidQuery), errors.Is(err, services.ErrUnknownBook):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmbedding), errors.Is(err, services.ErrStore):
		return echo.NewHTTPError(http.StatusBadGateway, "Search failed: "+err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Search failed: "+err.Error())
	}
}
