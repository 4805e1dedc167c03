package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritas-labs/paperchat-cli/internal/adapters/driving/httpapi"
	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question-answering API over HTTP",
	Long: `Starts an HTTP server exposing POST /ask and GET /healthz.

The index is loaded once at startup; rebuild it with 'paperchat ingest'
and restart to pick up new content.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	bot, err := newQueryBot(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return fmt.Errorf("no index found: run 'paperchat ingest' first")
		}
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewServer(bot, cfg.Answer.DefaultLength).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-cmd.Context().Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("Listening on %s", addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
