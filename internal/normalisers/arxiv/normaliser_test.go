package arxiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

func TestNormalise_FullRecord(t *testing.T) {
	n := New()

	doc, err := n.Normalise(domain.PaperRecord{
		Title:      "Consciousness in Machines",
		Abstract:   "We study whether machines can be conscious.",
		Categories: "cs.AI q-bio.NC",
		Authors:    "A. Turing, D. Chalmers",
		Published:  "2023-04-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "Title: Consciousness in Machines\n\nAbstract/Summary: We study whether machines can be conscious.", doc.Content)
	assert.Equal(t, "Consciousness in Machines", doc.Meta.Title)
	assert.Equal(t, domain.SourceArxivPaper, doc.Meta.SourceType)
	assert.Equal(t, "cs.AI", doc.Meta.PrimaryCategory)
	assert.Equal(t, "2023-04-01", doc.Meta.Published)
	assert.Equal(t, "A. Turing, D. Chalmers", doc.Meta.Authors)
	assert.NotEmpty(t, doc.ID)
}

func TestNormalise_MissingOptionalFieldsGetDefaults(t *testing.T) {
	n := New()

	doc, err := n.Normalise(domain.PaperRecord{
		Abstract: "An abstract without anything else.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Untitled Paper", doc.Meta.Title)
	assert.Equal(t, "Unknown Date", doc.Meta.Published)
	assert.Equal(t, "N/A", doc.Meta.PrimaryCategory)
}

func TestNormalise_NoContentIsDataSourceError(t *testing.T) {
	n := New()

	_, err := n.Normalise(domain.PaperRecord{Categories: "cs.AI"})
	assert.ErrorIs(t, err, domain.ErrDataSource)

	_, err = n.Normalise(domain.PaperRecord{Title: "   ", Abstract: "\n"})
	assert.ErrorIs(t, err, domain.ErrDataSource)
}

func TestPrimaryCategory(t *testing.T) {
	assert.Equal(t, "cs.AI", primaryCategory("cs.AI cs.LG"))
	assert.Equal(t, "q-bio.NC", primaryCategory("q-bio.NC"))
	assert.Equal(t, "N/A", primaryCategory(""))
	assert.Equal(t, "N/A", primaryCategory("   "))
}
