// Package driving provides interfaces for user-facing adapters (primary/inbound ports).
package driving

import (
	"context"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

// QueryService answers natural-language questions against the loaded index.
// Implementations are request/response: a query-time failure degrades to a
// fallback answer rather than an error, except for invalid input such as an
// unknown answer length.
type QueryService interface {
	// Ask retrieves context for the query and composes a grounded answer.
	// length selects the output token budget and must be one of Lengths();
	// otherwise domain.ErrInvalidAnswerLength is returned before any model
	// call is made.
	Ask(ctx context.Context, query, length string) (domain.Answer, error)

	// Lengths returns the valid answer length names in sorted order.
	Lengths() []string
}
