package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

func newTestBot(t *testing.T, index *mockIndex, llm *mockLLM) *QueryBot {
	t.Helper()
	retriever, err := NewRetriever(&mockEmbedding{defaultVec: []float32{1, 0, 0}}, index, 4)
	require.NoError(t, err)

	bot, err := NewQueryBot(retriever, NewComposer(llm, testTemplate), map[string]int{
		"short":  128,
		"medium": 256,
		"long":   512,
	})
	require.NoError(t, err)
	return bot
}

func TestAsk(t *testing.T) {
	index := &mockIndex{results: []domain.ScoredChunk{
		{Chunk: testChunk("c1", "passage", "Paper A", "cs.AI"), Score: 0.9},
	}}
	llm := &mockLLM{response: "An answer."}
	bot := newTestBot(t, index, llm)

	answer, err := bot.Ask(context.Background(), "Why?", "long")
	require.NoError(t, err)

	assert.Equal(t, "An answer.", answer.Text)
	assert.Equal(t, []string{"Paper A (cs.AI)"}, answer.Sources)
	assert.Equal(t, 512, llm.lastTokens)
}

func TestAsk_InvalidLengthRejectedBeforeModelCall(t *testing.T) {
	llm := &mockLLM{response: "never"}
	bot := newTestBot(t, &mockIndex{}, llm)

	_, err := bot.Ask(context.Background(), "Why?", "gigantic")

	require.ErrorIs(t, err, domain.ErrInvalidAnswerLength)
	assert.Contains(t, err.Error(), "long, medium, short")
	assert.Zero(t, llm.calls)
}

func TestAsk_RetrievalFailureDegradesToFallback(t *testing.T) {
	bot := newTestBot(t, &mockIndex{searchErr: errBackend}, &mockLLM{response: "never"})

	answer, err := bot.Ask(context.Background(), "Why?", "short")
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackAnswerText, answer.Text)
	assert.Empty(t, answer.Sources)
}

func TestAsk_NoMatchingChunks(t *testing.T) {
	llm := &mockLLM{response: "never"}
	bot := newTestBot(t, &mockIndex{}, llm)

	answer, err := bot.Ask(context.Background(), "Why?", "medium")
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackAnswerText, answer.Text)
	assert.Zero(t, llm.calls)
}

func TestLengths_SortedAndImmutable(t *testing.T) {
	bot := newTestBot(t, &mockIndex{}, &mockLLM{})

	names := bot.Lengths()
	assert.Equal(t, []string{"long", "medium", "short"}, names)

	names[0] = "mutated"
	assert.Equal(t, []string{"long", "medium", "short"}, bot.Lengths())
}

func TestNewQueryBot_NoLengths(t *testing.T) {
	retriever, err := NewRetriever(&mockEmbedding{defaultVec: []float32{1}}, &mockIndex{}, 1)
	require.NoError(t, err)

	_, err = NewQueryBot(retriever, NewComposer(&mockLLM{}, testTemplate), nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
