package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stevie1mat/flowdsl/internal/cli"
	"github.com/stevie1mat/flowdsl/internal/presentation/tui"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

var stepsCmd = &cobra.Command{
	Use:   "steps <file>",
	Short: "List the workflow steps in execution order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := compileArg(cmd, args[0])
		if err != nil {
			return err
		}
		for i, s := range out.Steps {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, s)
		}
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <file>",
	Short: "Estimate steps, duration and complexity of a workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := compileArg(cmd, args[0])
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), out.Plan)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, out.Plan.Description)
		fmt.Fprintf(w, "Steps:          %d\n", out.Plan.TotalSteps)
		fmt.Fprintf(w, "Estimated time: %s\n", out.Plan.EstimatedTime)
		fmt.Fprintf(w, "Complexity:     %s\n", out.Plan.Complexity)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().Bool("json", false, "Print the plan as JSON")
}

// compileArg compiles the graph at path, reporting validation problems on invalid input.
func compileArg(cmd *cobra.Command, path string) (*domain.Compilation, error) {
	g, err := cli.ReadGraph(path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	c, err := cli.NewCompiler(cfg, logger, nil)
	if err != nil {
		return nil, err
	}

	out, err := c.Compile(cmd.Context(), g)
	if errors.Is(err, domain.ErrInvalidGraph) {
		fmt.Fprint(cmd.ErrOrStderr(), tui.ValidationText(tui.NewPainter(cmd.ErrOrStderr()), out.Validation))
		return nil, errInvalidWorkflow
	}
	return out, err
}
