package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stevie1mat/flowdsl/internal/cli"
	"github.com/stevie1mat/flowdsl/internal/presentation/tui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a workflow graph for errors and warnings",
	Long: `Validates the workflow graph and prints every structural error and advisory warning.
Exits with status 1 when the workflow is invalid. Use "-" to read JSON from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := cli.ReadGraph(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		c, err := cli.NewCompiler(cfg, logger, nil)
		if err != nil {
			return err
		}

		res := c.Validate(cmd.Context(), g)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
		} else {
			fmt.Fprint(cmd.OutOrStdout(), tui.ValidationText(tui.NewPainter(cmd.OutOrStdout()), res))
		}

		if !res.IsValid {
			return errInvalidWorkflow
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print the validation result as JSON")
}
