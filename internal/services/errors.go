package services

import "errors"

// Search errors are tagged with these sentinels so adapters can map them to
// their own surfaces (HTTP status, CLI exit code) with errors.Is.
var (
	// ErrInvalidQuery marks a query that is empty after trimming, or an
	// otherwise malformed request.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnknownBook marks a book filter value not present in the catalog.
	ErrUnknownBook = errors.New("unknown book")

	// ErrEmbedding marks a failure of the embedding collaborator. Terminal
	// for the request; never retried.
	ErrEmbedding = errors.New("embedding failed")

	// ErrStore marks a vector-store connection, auth, query or contract
	// failure. Terminal for the request after bounded retries.
	ErrStore = errors.New("vector store failed")
)
