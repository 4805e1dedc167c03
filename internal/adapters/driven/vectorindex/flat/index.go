// Package flat provides an exact-search vector index held in memory and
// persisted to a SQLite file. At the corpus sizes this tool targets
// (thousands of chunks) brute-force cosine search is faster to query and
// far simpler to persist than an approximate index.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores (embedding, chunk) pairs in insertion order. Entries are
// append-only; duplicates are kept as-is. The zero value is not usable;
// construct with New or Load.
type Index struct {
	mu     sync.RWMutex
	dir    string
	dim    int
	chunks []domain.Chunk
}

// New creates an empty index bound to the given directory with the given
// vector dimensionality.
func New(dir string, dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: index dimensionality must be positive, got %d",
			domain.ErrConfiguration, dimensions)
	}
	return &Index{dir: dir, dim: dimensions}, nil
}

// Add appends chunks to the index. Every chunk must carry an embedding of
// the index dimensionality; on any mismatch the whole call fails and
// nothing is appended. Duplicate chunks are not detected.
func (x *Index) Add(_ context.Context, chunks []domain.Chunk) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for i := range chunks {
		if len(chunks[i].Embedding) != x.dim {
			return fmt.Errorf("%w: chunk %q has %d dimensions, index expects %d",
				domain.ErrEmbeddingDimension, chunks[i].ID, len(chunks[i].Embedding), x.dim)
		}
	}

	x.chunks = append(x.chunks, chunks...)
	return nil
}

// Search returns the k entries nearest to the query vector by cosine
// similarity, ordered by descending score. Equal scores resolve to the
// earlier-added entry. An index smaller than k returns all entries.
func (x *Index) Search(_ context.Context, query []float32, k int) ([]domain.ScoredChunk, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", domain.ErrInvalidInput, k)
	}
	if len(query) != x.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrEmbeddingDimension, len(query), x.dim)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	results := make([]domain.ScoredChunk, len(x.chunks))
	for i := range x.chunks {
		results[i] = domain.ScoredChunk{
			Chunk: x.chunks[i],
			Score: cosineSimilarity(query, x.chunks[i].Embedding),
		}
	}

	// Stable sort over insertion order pins the tie-break.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Len returns the number of stored entries.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.chunks)
}

// Dimensions returns the vector length every entry must have.
func (x *Index) Dimensions() int {
	return x.dim
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for a zero vector.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
