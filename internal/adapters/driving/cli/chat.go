package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/veritas-labs/paperchat-cli/internal/adapters/driving/tui"
	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question-answering session",
	Long: `Starts an interactive chat over the indexed corpus. Press tab to cycle
the answer length, enter to ask, ctrl+c to quit.

Requires a terminal; use 'paperchat ask' for scripted queries.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("chat requires a terminal; use 'paperchat ask' instead")
	}

	bot, err := newQueryBot(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return fmt.Errorf("no index found: run 'paperchat ingest' first")
		}
		return err
	}

	return tui.Run(bot, cfg.Answer.DefaultLength)
}
