package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

var (
	askLength string
	askJSON   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question over the indexed corpus",
	Long: `Retrieves the most relevant indexed passages for the question and
composes an answer with source citations.

The index must exist; run 'paperchat ingest' first.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askLength, "length", "l", "", "answer length (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	bot, err := newQueryBot(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return fmt.Errorf("no index found: run 'paperchat ingest' first")
		}
		return err
	}

	length := askLength
	if length == "" {
		length = cfg.Answer.DefaultLength
	}

	answer, err := bot.Ask(cmd.Context(), args[0], length)
	if err != nil {
		return err
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, s := range answer.Sources {
			cmd.Printf("  - %s\n", s)
		}
	}
	return nil
}
