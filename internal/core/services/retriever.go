// Package services implements the core pipeline operations behind the
// driving ports.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driven"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

// Retriever finds the chunks most relevant to a question by embedding it
// and searching the vector index.
type Retriever struct {
	embedding driven.EmbeddingService
	index     driven.VectorIndex
	topK      int
}

// NewRetriever creates a retriever returning up to topK chunks per query.
func NewRetriever(embedding driven.EmbeddingService, index driven.VectorIndex, topK int) (*Retriever, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive", domain.ErrConfiguration)
	}
	return &Retriever{
		embedding: embedding,
		index:     index,
		topK:      topK,
	}, nil
}

// Retrieve returns the chunks most similar to the query, best first.
// An empty query returns no chunks without touching the embedder.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]domain.Chunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	vector, err := r.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := r.index.Search(ctx, vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Retrieved %d chunks for query", len(scored))

	chunks := make([]domain.Chunk, 0, len(scored))
	for _, sc := range scored {
		chunks = append(chunks, sc.Chunk)
	}
	return chunks, nil
}
