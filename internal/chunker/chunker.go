// Package chunker provides a boundary-aware sliding-window text splitter.
package chunker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// separators are tried in order when backtracking from a hard cut:
// paragraph break, line break, sentence end, word boundary.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter splits document content into overlapping chunks, preferring to
// break at paragraph, sentence and word boundaries before cutting
// mid-word. A chunk never exceeds the configured size, and consecutive
// chunks from one document always share the configured overlap.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options. An overlap that is not
// smaller than the chunk size is a configuration error.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.overlap >= s.chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrConfiguration, s.overlap, s.chunkSize)
	}

	return s, nil
}

// ChunkSize returns the configured chunk size.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split slices the document content into chunks. Every chunk carries a
// copy of the document metadata. An empty document yields zero chunks.
func (s *Splitter) Split(doc domain.Document) []domain.Chunk {
	content := doc.Content
	if content == "" {
		return nil
	}

	estimated := len(content)/(s.chunkSize-s.overlap) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	start := 0
	position := 0

	for start < len(content) {
		end := start + s.chunkSize
		if end >= len(content) {
			end = len(content)
		} else {
			end = s.breakPoint(content, start, end)
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    content[start:end],
			Position:   position,
			Meta:       doc.Meta,
		})
		position++

		if end == len(content) {
			break
		}

		// The next window starts overlap characters before this cut, so
		// adjacent chunks always share exactly overlap characters.
		start = end - s.overlap
	}

	return chunks
}

// breakPoint backtracks from the hard cut at end to the best boundary
// inside the window. The cut lands just after the separator, keeping it
// with the earlier chunk. A boundary is only usable if it leaves the
// window longer than the overlap; otherwise the split could stop
// advancing.
func (s *Splitter) breakPoint(content string, start, end int) int {
	window := content[start:end]

	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		cut := idx + len(sep)
		if cut > s.overlap {
			return start + cut
		}
	}

	// No usable boundary; hard character cut.
	return end
}
