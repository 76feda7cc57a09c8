// Command debaterd serves the canned backend for local development. It
// answers the classify, chat and analyze endpoints with deterministic
// responses so the client can be exercised without a real backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"debater/internal/logging"
	"debater/internal/stub"
)

var (
	addr  string
	debug bool
)

var rootCmd = &cobra.Command{
	Use:          "debaterd",
	Short:        "Canned backend for the debater client",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", ":8001", "listen address")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := logging.NewConsoleLogger(debug)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	srv := &http.Server{
		Addr:         addr,
		Handler:      stub.NewHandler(logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("stub backend listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
