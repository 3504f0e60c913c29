// Package highlight marks query-term matches in result text. Matches are
// reported as spans over the original string so renderers can decide how to
// display them; HTML renders the color-coded form used by the web front ends.
package highlight

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Kind classifies a highlighted span.
type Kind string

const (
	// Exact marks a whole word that case-insensitively equals a query word.
	Exact Kind = "exact"
	// Partial marks a substring of a word that matches a query word.
	Partial Kind = "partial"
)

// Span is a half-open [Start, End) byte range into the annotated text.
type Span struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Kind  Kind `json:"kind"`
}

var (
	wordRe = regexp.MustCompile(`\w+`)
	// tokenRe splits text into alternating word and non-word runs. Every byte
	// matches exactly one run, so concatenating the runs reconstructs the text.
	tokenRe = regexp.MustCompile(`\w+|\W+`)
)

// Annotate returns the spans of text that match words of query, in ascending
// and non-overlapping order. An empty or wordless query yields no spans.
//
// A word run equal (case-insensitively) to a query word is marked Exact. An
// alphabetic word run that merely contains a strictly shorter query word gets
// Partial spans for each non-overlapping occurrence, leftmost first.
func Annotate(text, query string) []Span {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	words := wordRe.FindAllString(strings.ToLower(query), -1)
	if len(words) == 0 {
		return nil
	}

	querySet := make(map[string]bool, len(words))
	for _, w := range words {
		querySet[w] = true
	}
	partialRe := buildPartialPattern(querySet)

	var spans []Span
	offset := 0
	for _, token := range tokenRe.FindAllString(text, -1) {
		lc := strings.ToLower(token)
		switch {
		case querySet[lc]:
			spans = append(spans, Span{Start: offset, End: offset + len(token), Kind: Exact})
		case isAlpha(token) && containsQueryWord(lc, querySet):
			for _, m := range partialRe.FindAllStringIndex(token, -1) {
				spans = append(spans, Span{Start: offset + m[0], End: offset + m[1], Kind: Partial})
			}
		}
		offset += len(token)
	}
	return spans
}

// HTML renders text with matches wrapped in color-coded spans: yellow for
// exact word matches, light green for partial ones. Unwrapped runs are
// HTML-escaped.
func HTML(text, query string) string {
	spans := Annotate(text, query)
	if len(spans) == 0 {
		return html.EscapeString(text)
	}

	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(html.EscapeString(text[last:s.Start]))
		color := "yellow"
		if s.Kind == Partial {
			color = "lightgreen"
		}
		b.WriteString(`<span style="background:` + color + `">`)
		b.WriteString(html.EscapeString(text[s.Start:s.End]))
		b.WriteString(`</span>`)
		last = s.End
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

// buildPartialPattern compiles a case-insensitive alternation of the query
// words. Longer words come first so that when two words match at the same
// position the longer one wins; matches are otherwise leftmost-first and
// non-overlapping.
func buildPartialPattern(querySet map[string]bool) *regexp.Regexp {
	words := make([]string, 0, len(querySet))
	for w := range querySet {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(escaped, "|") + `)`)
}

// containsQueryWord reports whether the lowercased token contains some query
// word strictly shorter than the token itself.
func containsQueryWord(tokenLower string, querySet map[string]bool) bool {
	for w := range querySet {
		if w != tokenLower && strings.Contains(tokenLower, w) {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
