package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/stevie1mat/flowdsl/internal/compiler"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// Stdin is the path that makes ReadGraph consume standard input as JSON.
const Stdin = "-"

// ReadGraph loads an editor payload from path. The format follows the file extension;
// "-" reads JSON from stdin.
func ReadGraph(path string, stdin io.Reader) (domain.Graph, error) {
	var (
		data []byte
		err  error
	)
	if path == Stdin {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Graph{}, fmt.Errorf("failed to read workflow: %w", err)
	}

	g, err := compiler.ParseGraph(data, compiler.FormatFromPath(path))
	if err != nil {
		return domain.Graph{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// SystemMessage prints a standardized system message.
func SystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
