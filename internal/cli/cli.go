// Package cli builds the punchclock command tree.
package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"punchclock/internal/app"
	"punchclock/internal/config"
)

// Build assembles the root command with its subcommands.
func Build() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "punchclock",
		Short:        "Reconcile raw time-clock punches into per-employee working hours",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newProcessCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newAnalyzeCmd())
	return root
}

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Run one batch over the configured day files and sync the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			application, err := app.New(logger, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := application.RunOnce(ctx); err != nil {
				return err
			}
			logger.Info("batch completed")
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose /process, /metrics and /healthz over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			application, err := app.New(logger, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := application.HTTPServer(addr)
			errCh := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address for the HTTP server")
	return cmd
}
