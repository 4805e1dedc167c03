package arxiv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

func TestFilter_Keywords(t *testing.T) {
	records := []domain.PaperRecord{
		{Title: "Machine Consciousness Revisited", Abstract: "A survey.", Categories: "cs.AI"},
		{Title: "Graph Colouring", Abstract: "We study consciousness in networks.", Categories: "cs.DM"},
		{Title: "Quantum Error Correction", Abstract: "Stabiliser codes.", Categories: "quant-ph"},
	}

	f := Filter{Keywords: []string{"consciousness"}}
	got := f.Apply(records)

	assert.Len(t, got, 2)
	assert.Equal(t, "Machine Consciousness Revisited", got[0].Title)
	assert.Equal(t, "Graph Colouring", got[1].Title)
}

func TestFilter_KeywordsAreCaseInsensitive(t *testing.T) {
	records := []domain.PaperRecord{
		{Title: "MACHINE CONSCIOUSNESS", Abstract: ""},
	}

	f := Filter{Keywords: []string{"Consciousness"}}
	assert.Len(t, f.Apply(records), 1)
}

func TestFilter_Categories(t *testing.T) {
	records := []domain.PaperRecord{
		{Title: "A", Categories: "cs.AI cs.LG"},
		{Title: "B", Categories: "cs.LG"},
		{Title: "C", Categories: "math.CO"},
	}

	f := Filter{Categories: []string{"cs.AI", "math.CO"}}
	got := f.Apply(records)

	assert.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "C", got[1].Title)
}

func TestFilter_KeywordAndCategoryBothRequired(t *testing.T) {
	records := []domain.PaperRecord{
		{Title: "consciousness", Categories: "math.CO"},
		{Title: "consciousness", Categories: "cs.AI"},
		{Title: "colouring", Categories: "cs.AI"},
	}

	f := Filter{Keywords: []string{"consciousness"}, Categories: []string{"cs.AI"}}
	got := f.Apply(records)

	assert.Len(t, got, 1)
	assert.Equal(t, "cs.AI", got[0].Categories)
}

func TestFilter_EmptyFilterPassesEverything(t *testing.T) {
	records := []domain.PaperRecord{{Title: "A"}, {Title: "B"}}
	assert.Len(t, Filter{}.Apply(records), 2)
}

func TestFilter_Truncation(t *testing.T) {
	records := []domain.PaperRecord{
		{Title: "abcdefghij", Abstract: "0123456789"},
	}

	f := Filter{MaxTitleLen: 4, MaxAbstractLen: 6}
	got := f.Apply(records)

	assert.Equal(t, "abcd", got[0].Title)
	assert.Equal(t, "012345", got[0].Abstract)
}
