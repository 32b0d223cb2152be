package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Painter colours CLI messages for the profile of its writer.
// Output that is not a terminal gets no escape codes.
type Painter struct {
	out *termenv.Output
}

// NewPainter detects the colour profile of w.
func NewPainter(w io.Writer, opts ...termenv.OutputOption) *Painter {
	return &Painter{out: termenv.NewOutput(w, opts...)}
}

func (p *Painter) paint(hex, s string) string {
	return p.out.String(s).Foreground(p.out.Color(hex)).String()
}

// Error renders s in red.
func (p *Painter) Error(s string) string { return p.paint("#ef4444", s) }

// Warning renders s in yellow.
func (p *Painter) Warning(s string) string { return p.paint("#eab308", s) }

// Success renders s in green.
func (p *Painter) Success(s string) string { return p.paint("#22c55e", s) }

// Faint renders s dimmed.
func (p *Painter) Faint(s string) string {
	return p.out.String(s).Faint().String()
}
