package driving

import "context"

// IngestOptions configures one build run.
type IngestOptions struct {
	// Rebuild discards any saved index and builds from scratch instead of
	// extending it. Incremental extension never deduplicates previously
	// indexed chunks.
	Rebuild bool
}

// IngestStats summarises a completed build run.
type IngestStats struct {
	// Documents is the number of documents loaded across all sources.
	Documents int

	// Chunks is the number of chunks embedded and appended this run.
	Chunks int

	// IndexSize is the total entry count of the saved index.
	IndexSize int
}

// IngestService runs the offline document-to-index pipeline:
// load -> normalise -> chunk -> embed -> index -> save.
type IngestService interface {
	Run(ctx context.Context, opts IngestOptions) (IngestStats, error)
}
