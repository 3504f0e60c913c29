package models

import (
	"fmt"

	"github.com/vulgate-search-api/internal/highlight"
)

// Verse is one immutable corpus record. The (Book, Chapter, Verse) triple is
// unique; Book holds the short code ("Gn"), not the full name.
type Verse struct {
	Book    string `json:"book" db:"book"`
	Chapter int    `json:"chapter" db:"chapter"`
	Verse   int    `json:"verse" db:"verse"`
	Text    string `json:"text" db:"text"`
}

// Reference renders the citation form, e.g. "Gn 1:1".
func (v Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

// ScoredVerse pairs a verse with the raw distance reported by the vector
// store. Distance is the store's cosine-type metric in [0, 2]; lower is
// closer. Conversion to a similarity score happens in the service layer.
type ScoredVerse struct {
	Verse
	Distance float64 `json:"distance" db:"distance"`
}

// SearchRequest describes one search call.
type SearchRequest struct {
	// Query is the free text to embed. Must be non-empty after trimming.
	Query string
	// Books restricts results to these short codes. Empty means no restriction.
	Books []string
	// Limit bounds the number of hits requested from the store.
	Limit int
	// Threshold, when set, is a strict distance cutoff: hits survive only if
	// distance < *Threshold. Nil keeps every hit the store returns.
	Threshold *float64
}

// SearchHit is one ranked result. Similarity is unrounded; display consumers
// round to three decimals.
type SearchHit struct {
	Reference  string           `json:"reference"`
	Book       string           `json:"book"`
	Chapter    int              `json:"chapter"`
	Verse      int              `json:"verse"`
	Text       string           `json:"text"`
	Highlights []highlight.Span `json:"highlights,omitempty"`
	Similarity float64          `json:"similarity"`
}

// SemanticSearchRequest is the JSON body of POST /search.
type SemanticSearchRequest struct {
	Query string   `json:"query" validate:"required"`
	Books []string `json:"books,omitempty"`
	Limit int      `json:"limit" validate:"min=1,max=50"`
}

// VerseResult is the wire form of a hit, with the similarity rounded and the
// highlighted text rendered for display.
type VerseResult struct {
	Reference       string           `json:"reference"`
	Book            string           `json:"book"`
	Chapter         int              `json:"chapter"`
	Verse           int              `json:"verse"`
	Text            string           `json:"text"`
	HighlightedText string           `json:"highlighted_text"`
	Highlights      []highlight.Span `json:"highlights,omitempty"`
	Similarity      float64          `json:"similarity"`
}

// SemanticSearchResponse is the response for both search endpoints.
type SemanticSearchResponse struct {
	Query   string        `json:"query"`
	Results []VerseResult `json:"results"`
}
