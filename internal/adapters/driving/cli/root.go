// Package cli implements the paperchat command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	configfile "github.com/veritas-labs/paperchat-cli/internal/adapters/driven/config/file"
	embeddingollama "github.com/veritas-labs/paperchat-cli/internal/adapters/driven/embedding/ollama"
	llmollama "github.com/veritas-labs/paperchat-cli/internal/adapters/driven/llm/ollama"
	"github.com/veritas-labs/paperchat-cli/internal/adapters/driven/vectorindex/flat"
	"github.com/veritas-labs/paperchat-cli/internal/chunker"
	arxivconn "github.com/veritas-labs/paperchat-cli/internal/connectors/arxiv"
	"github.com/veritas-labs/paperchat-cli/internal/connectors/transcripts"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driven"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driving"
	"github.com/veritas-labs/paperchat-cli/internal/core/services"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
	arxivnorm "github.com/veritas-labs/paperchat-cli/internal/normalisers/arxiv"
	transcriptnorm "github.com/veritas-labs/paperchat-cli/internal/normalisers/transcript"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool

	cfg configfile.Config
)

var rootCmd = &cobra.Command{
	Use:   "paperchat",
	Short: "Question answering over papers and transcripts",
	Long: `Paperchat indexes arXiv paper metadata and talk transcripts into a
local vector index and answers questions over them with source citations.

Embedding and generation run against a local Ollama instance.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		loaded, err := configfile.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. The command context is cancelled on
// SIGINT or SIGTERM so long-running commands shut down cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// newSources builds the configured document sources.
func newSources() []driven.DocumentSource {
	return []driven.DocumentSource{
		arxivconn.NewPaperSource(cfg.Corpus.PapersFile, arxivnorm.New()),
		transcripts.New(cfg.Corpus.TranscriptPaths, transcriptnorm.New()),
	}
}

// newTranscriptSource builds just the transcript source, used for watching.
func newTranscriptSource() *transcripts.Source {
	return transcripts.New(cfg.Corpus.TranscriptPaths, transcriptnorm.New())
}

// newEmbedding builds the embedding service.
func newEmbedding() driven.EmbeddingService {
	return embeddingollama.NewEmbeddingService(embeddingollama.Config{
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})
}

// newBuilder assembles the index build pipeline.
func newBuilder() (driving.IngestService, error) {
	splitter, err := chunker.New(
		chunker.WithChunkSize(cfg.Splitter.ChunkSize),
		chunker.WithOverlap(cfg.Splitter.ChunkOverlap),
	)
	if err != nil {
		return nil, err
	}

	provider := &flat.Provider{
		Dir:        cfg.Index.Dir,
		Dimensions: cfg.Embedding.Dimensions,
	}

	return services.NewBuilder(newSources(), splitter, newEmbedding(), provider), nil
}

// newQueryBot assembles the question-answering pipeline over the saved
// index. The index must already exist.
func newQueryBot(ctx context.Context) (driving.QueryService, error) {
	index, err := flat.Load(ctx, cfg.Index.Dir)
	if err != nil {
		return nil, err
	}

	if index.Dimensions() != cfg.Embedding.Dimensions {
		return nil, fmt.Errorf("index dimensions (%d) do not match embedding config (%d)",
			index.Dimensions(), cfg.Embedding.Dimensions)
	}

	retriever, err := services.NewRetriever(newEmbedding(), index, cfg.Answer.TopK)
	if err != nil {
		return nil, err
	}

	llm := llmollama.NewLLMService(llmollama.Config{
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})
	composer := services.NewComposer(llm, cfg.Answer.PromptTemplate)

	return services.NewQueryBot(retriever, composer, cfg.Answer.Lengths)
}
