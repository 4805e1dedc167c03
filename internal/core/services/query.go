package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driving"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

// Ensure QueryBot implements the interface.
var _ driving.QueryService = (*QueryBot)(nil)

// QueryBot answers questions over the indexed corpus. It validates the
// requested answer length, retrieves context and composes a cited answer.
type QueryBot struct {
	retriever *Retriever
	composer  *Composer
	lengths   map[string]int
	names     []string
}

// NewQueryBot creates the question-answering orchestrator. lengths maps
// answer length names to output token budgets and must be non-empty.
func NewQueryBot(retriever *Retriever, composer *Composer, lengths map[string]int) (*QueryBot, error) {
	if len(lengths) == 0 {
		return nil, fmt.Errorf("%w: no answer lengths defined", domain.ErrConfiguration)
	}
	return &QueryBot{
		retriever: retriever,
		composer:  composer,
		lengths:   lengths,
		names:     sortedKeys(lengths),
	}, nil
}

// Ask answers the query at the requested answer length. An unknown length
// is rejected before any model call. Retrieval failure degrades to the
// fallback answer so transient backend trouble reads as "no answer"
// rather than an error.
func (b *QueryBot) Ask(ctx context.Context, query, length string) (domain.Answer, error) {
	maxTokens, ok := b.lengths[length]
	if !ok {
		return domain.Answer{}, fmt.Errorf("%w: %q (choose from: %s)",
			domain.ErrInvalidAnswerLength, length, strings.Join(b.names, ", "))
	}

	started := time.Now()
	chunks, err := b.retriever.Retrieve(ctx, query)
	if err != nil {
		logger.Warn("Retrieval failed, returning fallback answer: %v", err)
		return domain.Answer{Text: domain.FallbackAnswerText}, nil
	}

	answer := b.composer.Compose(ctx, query, chunks, maxTokens)
	logger.Debug("Answered in %s (%d chunks)", time.Since(started).Round(time.Millisecond), len(chunks))
	return answer, nil
}

// Lengths returns the valid answer length names in sorted order.
func (b *QueryBot) Lengths() []string {
	names := make([]string, len(b.names))
	copy(names, b.names)
	return names
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
