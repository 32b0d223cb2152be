package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stevie1mat/flowdsl/internal/cli"
	"github.com/stevie1mat/flowdsl/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the workflow graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the workflow.
Nodes with validation errors or warnings are highlighted unless --plain is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := cli.ReadGraph(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if plain, _ := cmd.Flags().GetBool("plain"); !plain {
			c, err := cli.NewCompiler(cfg, logger, nil)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFromResult(g, c.Validate(cmd.Context(), g))
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(g, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("plain", false, "Do not highlight validation problems")
}
