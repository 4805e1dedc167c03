package arxiv

import (
	"strings"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

// Filter selects paper records by keyword and category. A record passes
// when ANY keyword appears in its title or abstract and ANY category
// matches one of its category fields. An empty keyword or category list
// disables that test.
type Filter struct {
	// Keywords are matched case-insensitively as substrings of
	// title plus abstract.
	Keywords []string

	// Categories are matched exactly against the record's
	// space-separated category fields.
	Categories []string

	// MaxTitleLen truncates titles longer than this many characters.
	// Zero disables truncation.
	MaxTitleLen int

	// MaxAbstractLen truncates abstracts longer than this many characters.
	// Zero disables truncation.
	MaxAbstractLen int
}

// Apply returns the records passing the filter, with title and abstract
// truncated to the configured limits.
func (f Filter) Apply(records []domain.PaperRecord) []domain.PaperRecord {
	var out []domain.PaperRecord
	for _, r := range records {
		if !f.matchKeywords(r) || !f.matchCategories(r) {
			continue
		}
		if f.MaxTitleLen > 0 && len(r.Title) > f.MaxTitleLen {
			r.Title = r.Title[:f.MaxTitleLen]
		}
		if f.MaxAbstractLen > 0 && len(r.Abstract) > f.MaxAbstractLen {
			r.Abstract = r.Abstract[:f.MaxAbstractLen]
		}
		out = append(out, r)
	}
	return out
}

func (f Filter) matchKeywords(r domain.PaperRecord) bool {
	if len(f.Keywords) == 0 {
		return true
	}
	text := strings.ToLower(r.Title + " " + r.Abstract)
	for _, kw := range f.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func (f Filter) matchCategories(r domain.PaperRecord) bool {
	if len(f.Categories) == 0 {
		return true
	}
	fields := strings.Fields(r.Categories)
	for _, want := range f.Categories {
		for _, have := range fields {
			if want == have {
				return true
			}
		}
	}
	return false
}
