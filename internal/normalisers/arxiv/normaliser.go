// Package arxiv normalises arXiv paper records into documents.
package arxiv

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

// Defaults substituted for missing optional fields. Missing fields never
// fail normalisation; only a record with no content at all does.
const (
	placeholderTitle = "Untitled Paper"
	unknownDate      = "Unknown Date"
	unknownCategory  = "N/A"
)

// Normaliser converts paper records into documents.
type Normaliser struct{}

// New creates a new arXiv paper normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise produces exactly one document for a paper record. A record
// with neither title nor abstract carries no content and is reported as a
// domain.ErrDataSource so the caller can skip it.
func (n *Normaliser) Normalise(rec domain.PaperRecord) (domain.Document, error) {
	title := strings.TrimSpace(rec.Title)
	abstract := strings.TrimSpace(rec.Abstract)

	if title == "" && abstract == "" {
		return domain.Document{}, fmt.Errorf("%w: paper record has no title or abstract", domain.ErrDataSource)
	}

	metaTitle := title
	if metaTitle == "" {
		metaTitle = placeholderTitle
	}

	published := strings.TrimSpace(rec.Published)
	if published == "" {
		published = unknownDate
	}

	return domain.Document{
		ID:      uuid.New().String(),
		Content: fmt.Sprintf("Title: %s\n\nAbstract/Summary: %s", title, abstract),
		Meta: domain.Metadata{
			Title:           metaTitle,
			SourceType:      domain.SourceArxivPaper,
			PrimaryCategory: primaryCategory(rec.Categories),
			Published:       published,
			Authors:         strings.TrimSpace(rec.Authors),
		},
	}, nil
}

// primaryCategory returns the first of the space-separated category codes.
func primaryCategory(categories string) string {
	fields := strings.Fields(categories)
	if len(fields) == 0 {
		return unknownCategory
	}
	return fields[0]
}
