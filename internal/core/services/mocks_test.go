package services

import (
	"context"
	"fmt"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driven"
)

var (
	_ driven.EmbeddingService = (*mockEmbedding)(nil)
	_ driven.VectorIndex      = (*mockIndex)(nil)
	_ driven.IndexProvider    = (*mockProvider)(nil)
	_ driven.LLMService       = (*mockLLM)(nil)
	_ driven.DocumentSource   = (*mockSource)(nil)
)

// mockEmbedding returns canned vectors keyed by text.
type mockEmbedding struct {
	vectors    map[string][]float32
	defaultVec []float32
	err        error
	calls      int
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return m.defaultVec, nil
}

func (m *mockEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		vec, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int              { return len(m.defaultVec) }
func (m *mockEmbedding) ModelName() string            { return "mock-embed" }
func (m *mockEmbedding) Ping(_ context.Context) error { return nil }

// mockIndex records Add/Save calls and serves canned search results.
type mockIndex struct {
	results   []domain.ScoredChunk
	searchErr error
	addErr    error
	saveErr   error
	added     []domain.Chunk
	saved     int
	lastK     int
}

func (m *mockIndex) Add(_ context.Context, chunks []domain.Chunk) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, chunks...)
	return nil
}

func (m *mockIndex) Search(_ context.Context, _ []float32, k int) ([]domain.ScoredChunk, error) {
	m.lastK = k
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k < len(m.results) {
		return m.results[:k], nil
	}
	return m.results, nil
}

func (m *mockIndex) Save(_ context.Context) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved++
	return nil
}

func (m *mockIndex) Len() int        { return len(m.added) + len(m.results) }
func (m *mockIndex) Dimensions() int { return 3 }

// mockProvider hands out a fixed index and records the rebuild flag.
type mockProvider struct {
	index       *mockIndex
	err         error
	lastRebuild bool
}

func (m *mockProvider) Open(_ context.Context, rebuild bool) (driven.VectorIndex, error) {
	m.lastRebuild = rebuild
	if m.err != nil {
		return nil, m.err
	}
	return m.index, nil
}

// mockLLM returns a canned completion and records the prompt.
type mockLLM struct {
	response   string
	err        error
	lastPrompt string
	lastTokens int
	calls      int
}

func (m *mockLLM) Generate(_ context.Context, prompt string, maxTokens int) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastTokens = maxTokens
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }

// mockSource serves fixed documents.
type mockSource struct {
	name string
	docs []domain.Document
	err  error
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Load(_ context.Context) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

// testChunk builds a chunk with paper metadata.
func testChunk(id, content, title, category string) domain.Chunk {
	return domain.Chunk{
		ID:         id,
		DocumentID: "doc-" + id,
		Content:    content,
		Meta: domain.Metadata{
			Title:           title,
			SourceType:      domain.SourceArxivPaper,
			PrimaryCategory: category,
		},
	}
}

// transcriptChunk builds a chunk with transcript metadata.
func transcriptChunk(id, content, title string) domain.Chunk {
	return domain.Chunk{
		ID:      id,
		Content: content,
		Meta: domain.Metadata{
			Title:      title,
			SourceType: domain.SourceTranscript,
		},
	}
}

var errBackend = fmt.Errorf("backend unavailable")
