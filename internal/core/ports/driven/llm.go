package driven

import "context"

// LLMService is the language-model collaborator used to synthesise answers.
// A single locally hosted inference endpoint; no streaming, no retries at
// this layer.
type LLMService interface {
	// Generate produces a completion for the prompt. maxTokens caps the
	// length of the generated output.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error
}
