package domain

import "fmt"

// FallbackAnswerText is returned when the language model fails or produces
// an empty completion. Query-time model errors never surface to callers.
const FallbackAnswerText = "No answer found."

// Answer is the grounded response returned to callers.
type Answer struct {
	// Text is the language model's answer, or FallbackAnswerText.
	Text string `json:"answer"`

	// Sources are deduplicated, sorted citations for the retrieved chunks.
	Sources []string `json:"sources"`
}

// FormatSource renders the citation string for a chunk's metadata.
// arXiv papers carry their primary category; all other sources are
// title-only.
func FormatSource(m Metadata) string {
	switch m.SourceType {
	case SourceArxivPaper:
		return fmt.Sprintf("%s (%s)", m.Title, m.PrimaryCategory)
	default:
		return m.Title
	}
}
