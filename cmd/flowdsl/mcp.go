package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/stevie1mat/flowdsl/internal/cli"
	"github.com/stevie1mat/flowdsl/internal/config"
	"github.com/stevie1mat/flowdsl/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the workflow compiler as an MCP Server.
This allows AI agents to validate and compile workflow graphs as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("transport") {
			cfg.MCP.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("addr") {
			cfg.MCP.Addr, _ = cmd.Flags().GetString("addr")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		c, err := cli.NewCompiler(cfg, logger, nil)
		if err != nil {
			return err
		}

		backend, err := cli.OpenBackend(cfg.Store, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		srv := mcp.NewServer(c,
			mcp.WithCatalog(cli.NewCatalog(backend, c, logger)),
			mcp.WithLogger(logger),
		)

		switch cfg.MCP.Transport {
		case config.TransportStdio:
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting flowdsl MCP Server (Stdio)")
			return srv.ServeStdio()

		case config.TransportSSE:
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			if err := srv.ServeSSE(sigCtx, cfg.MCP.Addr, cfg.MCP.BaseURL); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil

		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", cfg.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", "", "Address to listen on (only for SSE)")
}
