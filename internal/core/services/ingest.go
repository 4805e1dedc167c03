package services

import (
	"context"
	"fmt"
	"time"

	"github.com/veritas-labs/paperchat-cli/internal/chunker"
	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driven"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driving"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

// Ensure Builder implements the interface.
var _ driving.IngestService = (*Builder)(nil)

// embedBatchSize bounds the texts sent per embedding request.
const embedBatchSize = 64

// Builder runs the offline pipeline that turns source documents into a
// saved vector index.
type Builder struct {
	sources   []driven.DocumentSource
	splitter  *chunker.Splitter
	embedding driven.EmbeddingService
	provider  driven.IndexProvider
}

// NewBuilder creates the index build service.
func NewBuilder(
	sources []driven.DocumentSource,
	splitter *chunker.Splitter,
	embedding driven.EmbeddingService,
	provider driven.IndexProvider,
) *Builder {
	return &Builder{
		sources:   sources,
		splitter:  splitter,
		embedding: embedding,
		provider:  provider,
	}
}

// Run executes one build: load every source, chunk, embed, append to the
// index and save. A source that fails to load is skipped with a warning;
// zero documents across all sources aborts with domain.ErrNoDocuments
// before any index is touched.
func (b *Builder) Run(ctx context.Context, opts driving.IngestOptions) (driving.IngestStats, error) {
	started := time.Now()
	logger.Section("Index Build")

	docs := b.loadAll(ctx)
	if len(docs) == 0 {
		return driving.IngestStats{}, fmt.Errorf("%w: no documents loaded from any source", domain.ErrNoDocuments)
	}
	logger.Info("Loaded %d documents", len(docs))

	var chunks []domain.Chunk
	for _, doc := range docs {
		chunks = append(chunks, b.splitter.Split(doc)...)
	}
	logger.Info("Split into %d chunks", len(chunks))

	if err := b.embedAll(ctx, chunks); err != nil {
		return driving.IngestStats{}, err
	}

	index, err := b.provider.Open(ctx, opts.Rebuild)
	if err != nil {
		return driving.IngestStats{}, fmt.Errorf("open index: %w", err)
	}

	if err := index.Add(ctx, chunks); err != nil {
		return driving.IngestStats{}, fmt.Errorf("add chunks: %w", err)
	}
	if err := index.Save(ctx); err != nil {
		return driving.IngestStats{}, fmt.Errorf("save index: %w", err)
	}

	stats := driving.IngestStats{
		Documents: len(docs),
		Chunks:    len(chunks),
		IndexSize: index.Len(),
	}
	logger.Info("Index built in %s: %d entries", time.Since(started).Round(time.Millisecond), stats.IndexSize)
	return stats, nil
}

// loadAll gathers documents from every source, skipping failures.
func (b *Builder) loadAll(ctx context.Context) []domain.Document {
	var docs []domain.Document
	for _, src := range b.sources {
		loaded, err := src.Load(ctx)
		if err != nil {
			logger.Warn("Skipping source %s: %v", src.Name(), err)
			continue
		}
		logger.Debug("Source %s: %d documents", src.Name(), len(loaded))
		docs = append(docs, loaded...)
	}
	return docs
}

// embedAll attaches embeddings to every chunk, batching requests.
func (b *Builder) embedAll(ctx context.Context, chunks []domain.Chunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, ch := range chunks[start:end] {
			texts = append(texts, ch.Content)
		}

		vectors, err := b.embedding.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunks: %w", err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(vectors))
		}

		for i, vec := range vectors {
			chunks[start+i].Embedding = vec
		}
	}
	return nil
}
