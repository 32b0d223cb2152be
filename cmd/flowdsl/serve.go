package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/stevie1mat/flowdsl"
	"github.com/stevie1mat/flowdsl/internal/cli"
	"github.com/stevie1mat/flowdsl/internal/presentation/tui"
	httpAdapter "github.com/stevie1mat/flowdsl/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves the compiler and the workflow catalog as a JSON API over HTTP.
The OpenAPI document is available at /openapi.yaml and Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("store") {
			cfg.Store.Backend, _ = cmd.Flags().GetString("store")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		var (
			reg      *prometheus.Registry
			gatherer prometheus.Gatherer
		)
		if !cfg.Metrics.Disabled {
			reg = prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			gatherer = reg
		}

		c, err := cli.NewCompiler(cfg, logger, registerer(reg))
		if err != nil {
			return err
		}

		backend, err := cli.OpenBackend(cfg.Store, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := backend.Close(); err != nil {
				logger.Error("Failed to close store", "err", err)
			}
		}()

		handler, err := httpAdapter.NewHandler(
			httpAdapter.WithCompiler(c),
			httpAdapter.WithCatalog(cli.NewCatalog(backend, c, logger)),
			httpAdapter.WithGatherer(gatherer),
			httpAdapter.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			if tui.IsTerminal(cmd.OutOrStdout()) {
				tui.PrintBanner(cmd.OutOrStdout())
			}
			logger.Info("Starting flowdsl server",
				"addr", srv.Addr,
				"store", cfg.Store.Backend,
				"version", flowdsl.Version,
			)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			logger.Info("Start shutdown", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", cfg.HTTP.ShutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("flowdsl server stopped gracefully")
			return nil
		}
	},
}

// registerer avoids handing a typed nil registry to the compiler.
func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return nil
	}
	return reg
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default from config, :8080)")
	serveCmd.Flags().String("store", "", "Workflow store: memory, file, redis or badger")
}
