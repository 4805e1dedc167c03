// Package file loads typed pipeline configuration from a TOML file.
package file

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

// Placeholders the prompt template must contain.
const (
	ContextPlaceholder  = "{context}"
	QuestionPlaceholder = "{question}"
)

// defaultPromptTemplate instructs the model to answer strictly from the
// retrieved passages.
const defaultPromptTemplate = `Use the following pieces of context to answer the question at the end.
If you don't know the answer, just say that you don't know, don't try to make up an answer.

{context}

Question: {question}
Helpful Answer:`

// Config is the full pipeline configuration. Every field has a working
// default so the zero-config case runs against a local Ollama.
type Config struct {
	Corpus    CorpusConfig    `toml:"corpus"`
	Fetch     FetchConfig     `toml:"fetch"`
	Splitter  SplitterConfig  `toml:"splitter"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Index     IndexConfig     `toml:"index"`
	Answer    AnswerConfig    `toml:"answer"`
	Server    ServerConfig    `toml:"server"`
}

// CorpusConfig locates the document sources on disk.
type CorpusConfig struct {
	// PapersFile is the JSON Lines file of fetched paper records.
	PapersFile string `toml:"papers_file"`

	// TranscriptPaths are files or directories of .txt transcripts.
	TranscriptPaths []string `toml:"transcript_paths"`
}

// FetchConfig controls paper acquisition and filtering.
type FetchConfig struct {
	Query          string   `toml:"query"`
	MaxResults     int      `toml:"max_results"`
	Keywords       []string `toml:"keywords"`
	Categories     []string `toml:"categories"`
	MaxTitleLen    int      `toml:"max_title_len"`
	MaxAbstractLen int      `toml:"max_abstract_len"`
}

// SplitterConfig controls document chunking.
type SplitterConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
}

// EmbeddingConfig selects the embedding model.
type EmbeddingConfig struct {
	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

// LLMConfig selects the generation model.
type LLMConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// IndexConfig locates the persisted vector index.
type IndexConfig struct {
	// Dir is the directory holding the index database.
	Dir string `toml:"dir"`
}

// AnswerConfig controls retrieval and answer composition.
type AnswerConfig struct {
	// TopK is the number of chunks retrieved per question.
	TopK int `toml:"top_k"`

	// PromptTemplate must contain {context} and {question}.
	PromptTemplate string `toml:"prompt_template"`

	// Lengths maps answer length names to output token budgets.
	Lengths map[string]int `toml:"lengths"`

	// DefaultLength is used when the caller does not pick one.
	DefaultLength string `toml:"default_length"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Defaults returns the configuration used when no file overrides it.
func Defaults() Config {
	return Config{
		Corpus: CorpusConfig{
			PapersFile:      "data/papers.jsonl",
			TranscriptPaths: []string{"data/transcripts"},
		},
		Fetch: FetchConfig{
			Query:          `all:"machine consciousness"`,
			MaxResults:     500,
			Keywords:       []string{"consciousness"},
			MaxTitleLen:    300,
			MaxAbstractLen: 3000,
		},
		Splitter: SplitterConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Embedding: EmbeddingConfig{
			BaseURL:    "http://localhost:11434",
			Model:      "nomic-embed-text",
			Dimensions: 768,
		},
		LLM: LLMConfig{
			BaseURL: "http://localhost:11434",
			Model:   "llama3.2",
		},
		Index: IndexConfig{
			Dir: "data/index",
		},
		Answer: AnswerConfig{
			TopK:           4,
			PromptTemplate: defaultPromptTemplate,
			Lengths: map[string]int{
				"short":  128,
				"medium": 256,
				"long":   512,
			},
			DefaultLength: "medium",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the configuration file at path over the defaults. An empty
// path or a missing file yields the defaults unchanged; a missing file at
// an explicitly given path is an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: read config %s: %v", domain.ErrConfiguration, path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config %s: %v", domain.ErrConfiguration, path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first configuration error found.
func (c Config) Validate() error {
	if c.Splitter.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", domain.ErrConfiguration)
	}
	if c.Splitter.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap cannot be negative", domain.ErrConfiguration)
	}
	if c.Splitter.ChunkOverlap >= c.Splitter.ChunkSize {
		return fmt.Errorf("%w: chunk overlap (%d) must be smaller than chunk size (%d)",
			domain.ErrConfiguration, c.Splitter.ChunkOverlap, c.Splitter.ChunkSize)
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("%w: embedding dimensions must be positive", domain.ErrConfiguration)
	}
	if c.Index.Dir == "" {
		return fmt.Errorf("%w: index dir cannot be empty", domain.ErrConfiguration)
	}
	if c.Answer.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", domain.ErrConfiguration)
	}
	if !strings.Contains(c.Answer.PromptTemplate, ContextPlaceholder) {
		return fmt.Errorf("%w: prompt template missing %s placeholder",
			domain.ErrConfiguration, ContextPlaceholder)
	}
	if !strings.Contains(c.Answer.PromptTemplate, QuestionPlaceholder) {
		return fmt.Errorf("%w: prompt template missing %s placeholder",
			domain.ErrConfiguration, QuestionPlaceholder)
	}
	if len(c.Answer.Lengths) == 0 {
		return fmt.Errorf("%w: at least one answer length must be defined", domain.ErrConfiguration)
	}
	for name, tokens := range c.Answer.Lengths {
		if tokens <= 0 {
			return fmt.Errorf("%w: answer length %q must have a positive token budget",
				domain.ErrConfiguration, name)
		}
	}
	if _, ok := c.Answer.Lengths[c.Answer.DefaultLength]; !ok {
		return fmt.Errorf("%w: default length %q is not a defined answer length",
			domain.ErrConfiguration, c.Answer.DefaultLength)
	}
	return nil
}

// LengthNames returns the defined answer length names in sorted order.
func (c AnswerConfig) LengthNames() []string {
	names := make([]string, 0, len(c.Lengths))
	for name := range c.Lengths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
