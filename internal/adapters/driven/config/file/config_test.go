package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Splitter.ChunkSize)
	assert.Equal(t, 200, cfg.Splitter.ChunkOverlap)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, 768, cfg.Embedding.Dimensions)
	assert.Equal(t, "llama3.2", cfg.LLM.Model)
	assert.Equal(t, 4, cfg.Answer.TopK)
	assert.Equal(t, "medium", cfg.Answer.DefaultLength)
	assert.Equal(t, 256, cfg.Answer.Lengths["medium"])
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[splitter]
chunk_size = 500
chunk_overlap = 50

[embedding]
model = "all-minilm"
dimensions = 384

[answer]
top_k = 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Splitter.ChunkSize)
	assert.Equal(t, 50, cfg.Splitter.ChunkOverlap)
	assert.Equal(t, "all-minilm", cfg.Embedding.Model)
	assert.Equal(t, 384, cfg.Embedding.Dimensions)
	assert.Equal(t, 8, cfg.Answer.TopK)
	// Untouched sections keep their defaults.
	assert.Equal(t, "llama3.2", cfg.LLM.Model)
	assert.Equal(t, "data/index", cfg.Index.Dir)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "[splitter\nchunk_size =")
	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"overlap equals size", func(c *Config) { c.Splitter.ChunkOverlap = c.Splitter.ChunkSize }},
		{"overlap exceeds size", func(c *Config) { c.Splitter.ChunkOverlap = c.Splitter.ChunkSize + 1 }},
		{"negative overlap", func(c *Config) { c.Splitter.ChunkOverlap = -1 }},
		{"zero chunk size", func(c *Config) { c.Splitter.ChunkSize = 0 }},
		{"zero dimensions", func(c *Config) { c.Embedding.Dimensions = 0 }},
		{"empty index dir", func(c *Config) { c.Index.Dir = "" }},
		{"zero top_k", func(c *Config) { c.Answer.TopK = 0 }},
		{"template without context", func(c *Config) { c.Answer.PromptTemplate = "Question: {question}" }},
		{"template without question", func(c *Config) { c.Answer.PromptTemplate = "Context: {context}" }},
		{"no lengths", func(c *Config) { c.Answer.Lengths = nil }},
		{"non-positive length budget", func(c *Config) { c.Answer.Lengths["short"] = 0 }},
		{"unknown default length", func(c *Config) { c.Answer.DefaultLength = "epic" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), domain.ErrConfiguration)
		})
	}
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	assert.NoError(t, Defaults().Validate())
}

func TestLengthNames_Sorted(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, []string{"long", "medium", "short"}, cfg.Answer.LengthNames())
}
