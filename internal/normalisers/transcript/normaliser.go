// Package transcript normalises talk transcript files into documents.
package transcript

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

const placeholderTitle = "Untitled Transcript"

// Normaliser converts transcript files into documents.
type Normaliser struct{}

// New creates a new transcript normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise produces exactly one document for a transcript file. The title
// is derived from the file's base name: extension stripped, underscores
// replaced by spaces, title-cased. An empty file is reported as a
// domain.ErrDataSource so the caller can skip it.
func (n *Normaliser) Normalise(file domain.TranscriptFile) (domain.Document, error) {
	if strings.TrimSpace(file.Content) == "" {
		return domain.Document{}, fmt.Errorf("%w: transcript %s is empty", domain.ErrDataSource, file.Path)
	}

	return domain.Document{
		ID:      uuid.New().String(),
		Content: file.Content,
		Meta: domain.Metadata{
			Title:      titleFromPath(file.Path),
			SourceType: domain.SourceTranscript,
		},
	}, nil
}

// titleFromPath derives a human-readable title from a file path.
func titleFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return placeholderTitle
	}
	return titleCase(name)
}

// titleCase upper-cases the first letter of every space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
