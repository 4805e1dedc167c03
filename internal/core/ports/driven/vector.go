package driven

import (
	"context"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

// VectorIndex stores (embedding, chunk) pairs and answers nearest-neighbour
// queries. Entries are append-only; re-adding the same chunks creates
// duplicates. Mutation happens only during the build pipeline; the
// query-serving process treats a loaded index as read-only.
type VectorIndex interface {
	// Add appends chunks that already carry embeddings. Every embedding
	// must match the index dimensionality; a mismatch fails the whole
	// call with domain.ErrEmbeddingDimension and nothing is appended.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Search returns the k entries nearest to the query vector, ordered
	// by descending similarity. Ties resolve to earliest insertion.
	// k must be >= 1; an index smaller than k returns all entries.
	Search(ctx context.Context, query []float32, k int) ([]domain.ScoredChunk, error)

	// Save writes the full index state durably, replacing any previous
	// state atomically.
	Save(ctx context.Context) error

	// Len returns the number of stored entries.
	Len() int

	// Dimensions returns the vector length every entry must have.
	Dimensions() int
}

// IndexProvider opens the durable index for a build run.
type IndexProvider interface {
	// Open returns the index to build into: a fresh empty index when
	// rebuild is set or none is saved yet, otherwise the saved index
	// loaded for incremental extension.
	Open(ctx context.Context, rebuild bool) (VectorIndex, error)
}
