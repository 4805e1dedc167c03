package arxiv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

func TestParseSnapshot(t *testing.T) {
	input := strings.Join([]string{
		`{"title":"Paper  One","abstract":"First\n abstract.","categories":"cs.AI cs.LG","update_date":"2023-01-15","authors_parsed":[["Doe","Jane",""],["Smith","John",""]]}`,
		``,
		`{"title":"Paper Two","abstract":"Second.","categories":"math.CO","update_date":"2022-06-01","authors_parsed":[["Solo","",""]]}`,
	}, "\n")

	records, err := parseSnapshot(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Paper One", records[0].Title)
	assert.Equal(t, "First abstract.", records[0].Abstract)
	assert.Equal(t, "cs.AI cs.LG", records[0].Categories)
	assert.Equal(t, "2023-01-15", records[0].Published)
	assert.Equal(t, "Jane Doe, John Smith", records[0].Authors)

	assert.Equal(t, "Solo", records[1].Authors)
}

func TestParseSnapshot_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"title":"Good","abstract":"a"}`,
		`{not json at all`,
		`{"title":"Also Good","abstract":"b"}`,
	}, "\n")

	records, err := parseSnapshot(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Good", records[0].Title)
	assert.Equal(t, "Also Good", records[1].Title)
}

func TestReadSnapshot_MissingFile(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}

func TestWriteAndReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.jsonl")
	want := []domain.PaperRecord{
		{Title: "One", Abstract: "a", Categories: "cs.AI", Authors: "Jane Doe", Published: "2023-01-15"},
		{Title: "Two", Abstract: "b", Categories: "math.CO"},
	}
	require.NoError(t, WriteRecords(path, want))

	got, err := ReadRecords(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadRecords_MalformedLineFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{broken\n"), 0o600))

	_, err := ReadRecords(path)
	assert.Error(t, err)
}
