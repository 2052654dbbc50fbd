// Package retrieval provides semantic search over a market-knowledge store.
// Search results enrich optimization prompts; the store is optional and every
// caller must tolerate a nil Retriever.
package retrieval

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Document is one unit of market knowledge to index.
type Document struct {
	ID         uuid.UUID         `json:"id"`
	Collection string            `json:"collection"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// SearchResult is a scored match from the knowledge store.
type SearchResult struct {
	Content  string            `json:"content"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SearchOptions controls a similarity search.
type SearchOptions struct {
	Collection string
	Limit      int
	MinScore   float64
}

// Retriever finds knowledge relevant to a query.
type Retriever interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Error wraps failures from the retrieval layer so callers can degrade
// instead of aborting the pipeline.
type Error struct {
	Op    string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("retrieval %s failed: %v", e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
