package driven

import (
	"context"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

// DocumentSource supplies normalised documents from one upstream corpus
// (the papers file, a transcript directory). Sources skip unusable records
// with a warning rather than failing the whole load.
type DocumentSource interface {
	// Name identifies the source in logs.
	Name() string

	// Load reads and normalises every available record.
	Load(ctx context.Context) ([]domain.Document, error)
}
