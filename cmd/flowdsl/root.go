package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/stevie1mat/flowdsl/internal/cli"
	"github.com/stevie1mat/flowdsl/internal/config"
)

// errInvalidWorkflow signals a validation failure that has already been reported.
var errInvalidWorkflow = errors.New("workflow is invalid")

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flowdsl",
	Short: "flowdsl compiles visual AI workflows into a text DSL",
	Long: `flowdsl validates workflow graphs made of input, action and output nodes,
orders them, and emits a readable workflow DSL with a step list and an execution plan.

Graphs are the JSON or YAML payloads produced by the visual editor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level, _ = cmd.Flags().GetString("log-level")
		}

		cfg = loaded
		logger = cli.NewLogger(cfg)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalidWorkflow) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a flowdsl.yaml configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}
