package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	arxivconn "github.com/veritas-labs/paperchat-cli/internal/connectors/arxiv"
	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

var (
	fetchSnapshot string
	fetchOut      string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and filter arXiv paper metadata",
	Long: `Acquires paper records for the corpus and writes them to the papers
file as JSON Lines.

Without flags, records are fetched from the arXiv export API using the
configured search query, respecting the API rate limit. With --snapshot,
records are filtered out of a local bulk metadata snapshot instead, which
avoids the network entirely.

Either way the configured keyword and category filters are applied before
writing.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchSnapshot, "snapshot", "", "filter a local metadata snapshot (JSONL) instead of calling the API")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "output file (default: the configured papers file)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	out := fetchOut
	if out == "" {
		out = cfg.Corpus.PapersFile
	}

	var (
		records []domain.PaperRecord
		err     error
	)
	if fetchSnapshot != "" {
		logger.Info("Reading snapshot %s", fetchSnapshot)
		records, err = arxivconn.ReadSnapshot(fetchSnapshot)
	} else {
		logger.Info("Fetching up to %d papers for query %q", cfg.Fetch.MaxResults, cfg.Fetch.Query)
		client := arxivconn.NewClient(arxivconn.ClientConfig{})
		records, err = client.Fetch(cmd.Context(), cfg.Fetch.Query, cfg.Fetch.MaxResults)
	}
	if err != nil {
		return err
	}

	filter := arxivconn.Filter{
		Keywords:       cfg.Fetch.Keywords,
		Categories:     cfg.Fetch.Categories,
		MaxTitleLen:    cfg.Fetch.MaxTitleLen,
		MaxAbstractLen: cfg.Fetch.MaxAbstractLen,
	}
	kept := filter.Apply(records)

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := arxivconn.WriteRecords(out, kept); err != nil {
		return err
	}

	cmd.Printf("Wrote %d of %d paper records to %s\n", len(kept), len(records), out)
	return nil
}
