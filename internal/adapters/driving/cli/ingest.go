package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/paperchat-cli/internal/adapters/driven/vectorindex/flat"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driving"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

var (
	ingestRebuild bool
	ingestWatch   bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the vector index from the configured sources",
	Long: `Loads the papers file and transcript directories, splits documents into
chunks, embeds them and saves the vector index.

By default new chunks are appended to an existing index; previously
indexed content is never deduplicated, so re-ingesting the same sources
doubles it. Use --rebuild to start from an empty index instead.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestRebuild, "rebuild", false, "discard the saved index and build from scratch")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "rebuild whenever a transcript file changes")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	builder, err := newBuilder()
	if err != nil {
		return err
	}

	if !ingestRebuild && flat.Exists(cfg.Index.Dir) {
		logger.Info("Extending existing index in %s", cfg.Index.Dir)
	}

	run := func(rebuild bool) error {
		stats, err := builder.Run(cmd.Context(), driving.IngestOptions{Rebuild: rebuild})
		if err != nil {
			return err
		}
		cmd.Printf("Indexed %d documents (%d chunks, %d total entries)\n",
			stats.Documents, stats.Chunks, stats.IndexSize)
		return nil
	}

	if err := run(ingestRebuild); err != nil {
		return err
	}

	if !ingestWatch {
		return nil
	}

	cmd.Println("Watching transcripts for changes (ctrl+c to stop)...")
	// Watched runs always rebuild: append-only extension would duplicate
	// every unchanged document.
	err = newTranscriptSource().Watch(cmd.Context(), func() {
		logger.Info("Transcripts changed, rebuilding index")
		if err := run(true); err != nil {
			logger.Error("Rebuild failed: %v", err)
		}
	})
	if err != nil && cmd.Context().Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("watch transcripts: %w", err)
	}
	return nil
}
