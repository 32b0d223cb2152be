package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stevie1mat/flowdsl"
	"github.com/stevie1mat/flowdsl/internal/cli"
	"github.com/stevie1mat/flowdsl/internal/compiler"
	"github.com/stevie1mat/flowdsl/internal/presentation/tui"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a workflow graph into DSL text",
	Long: `Validates, orders and compiles the workflow graph.
By default a report with the plan, steps and DSL is rendered; --dsl prints only the DSL
and --json prints the full compilation. With --watch the file is recompiled on every change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		mode := outputMode(cmd)

		c, err := cli.NewCompiler(cfg, logger, nil)
		if err != nil {
			return err
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			return compileFile(cmd.Context(), c, path, cmd.InOrStdin(), cmd.OutOrStdout(), mode)
		}
		if path == cli.Stdin {
			return errors.New("--watch needs a file, not stdin")
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		out := cmd.OutOrStdout()
		cli.SystemMessage(out, "Watching '%s' for changes.", path)
		err = cli.Watch(sigCtx, path, cli.DefaultWatchDebounce, logger, func() {
			if err := compileFile(sigCtx, c, path, nil, out, mode); err != nil && !errors.Is(err, errInvalidWorkflow) {
				fmt.Fprintln(out, tui.NewPainter(out).Error(err.Error()))
			}
			cli.SystemMessage(out, "Waiting for changes...")
		})
		if errors.Is(err, context.Canceled) {
			logger.Info("Stopping watcher", "signal", sigCtx.Signal())
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("dsl", false, "Print only the DSL text")
	compileCmd.Flags().Bool("json", false, "Print the compilation as JSON")
	compileCmd.Flags().BoolP("watch", "w", false, "Recompile whenever the file changes")
}

type renderMode int

const (
	renderReport renderMode = iota
	renderDSL
	renderJSON
)

func outputMode(cmd *cobra.Command) renderMode {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return renderJSON
	}
	if dslOnly, _ := cmd.Flags().GetBool("dsl"); dslOnly {
		return renderDSL
	}
	return renderReport
}

func compileFile(ctx context.Context, c *flowdsl.Compiler, path string, stdin io.Reader, w io.Writer, mode renderMode) error {
	g, err := cli.ReadGraph(path, stdin)
	if err != nil {
		return err
	}

	out, err := c.Compile(ctx, g)
	if errors.Is(err, domain.ErrInvalidGraph) {
		if mode == renderJSON {
			if err := writeJSON(w, out); err != nil {
				return err
			}
		} else {
			fmt.Fprint(w, tui.ValidationText(tui.NewPainter(w), out.Validation))
		}
		return errInvalidWorkflow
	}
	if err != nil {
		return err
	}

	switch mode {
	case renderJSON:
		return writeJSON(w, out)
	case renderDSL:
		_, err := io.WriteString(w, out.DSL)
		return err
	default:
		report, err := tui.RendererFor(w)(tui.CompilationMarkdown(reportTitle(path, g), out))
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		_, err = io.WriteString(w, report)
		return err
	}
}

// reportTitle prefers the workflow title from the first input, then the file name.
func reportTitle(path string, g domain.Graph) string {
	if seq, err := compiler.Sequence(g); err == nil {
		if title := compiler.Title(seq); title != compiler.DefaultTitle {
			return title
		}
	}
	if path == cli.Stdin {
		return "Workflow"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
