package services

import (
	"context"
	"sort"
	"strings"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driven"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

// Prompt template placeholders.
const (
	contextPlaceholder  = "{context}"
	questionPlaceholder = "{question}"
)

// chunkSeparator joins retrieved passages inside the prompt context.
const chunkSeparator = "\n\n"

// Composer turns retrieved chunks and a question into a cited answer via
// the language model.
type Composer struct {
	llm      driven.LLMService
	template string
}

// NewComposer creates a composer using the given prompt template. The
// template must contain the {context} and {question} placeholders.
func NewComposer(llm driven.LLMService, template string) *Composer {
	return &Composer{llm: llm, template: template}
}

// BuildPrompt renders the prompt for a question over the given chunks.
func (c *Composer) BuildPrompt(question string, chunks []domain.Chunk) string {
	texts := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		texts = append(texts, ch.Content)
	}

	prompt := strings.ReplaceAll(c.template, contextPlaceholder, strings.Join(texts, chunkSeparator))
	return strings.ReplaceAll(prompt, questionPlaceholder, question)
}

// Compose generates an answer to the question grounded in the chunks,
// attaching the deduplicated, sorted source citations. A generation
// failure or an empty completion degrades to the fallback answer rather
// than failing the query.
func (c *Composer) Compose(ctx context.Context, question string, chunks []domain.Chunk, maxTokens int) domain.Answer {
	if len(chunks) == 0 {
		return domain.Answer{Text: domain.FallbackAnswerText}
	}

	prompt := c.BuildPrompt(question, chunks)
	text, err := c.llm.Generate(ctx, prompt, maxTokens)
	if err != nil {
		logger.Warn("Generation failed, returning fallback answer: %v", err)
		return domain.Answer{Text: domain.FallbackAnswerText}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logger.Warn("Model returned an empty answer, returning fallback")
		return domain.Answer{Text: domain.FallbackAnswerText}
	}

	return domain.Answer{
		Text:    text,
		Sources: collectSources(chunks),
	}
}

// collectSources renders each chunk's citation, deduplicates and sorts.
func collectSources(chunks []domain.Chunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	for _, ch := range chunks {
		seen[domain.FormatSource(ch.Meta)] = struct{}{}
	}

	sources := make([]string, 0, len(seen))
	for s := range seen {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}
