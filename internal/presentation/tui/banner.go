package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the flowdsl ASCII banner to w.
func PrintBanner(w io.Writer) {
	o := termenv.NewOutput(w)
	lines := []struct{ text, hex string }{
		{"   __ _                _     _ ", "#818cf8"},
		{"  / _| | _____      __| |___| |", "#a78bfa"},
		{" | |_| |/ _ \\ \\ /\\ / / _` / __| |", "#c084fc"},
		{" |  _| | (_) \\ V  V / (_| \\__ \\ |", "#e879f9"},
		{" |_| |_|\\___/ \\_/\\_/ \\__,_|___/_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.hex)))
	}
	fmt.Fprintln(w)
}
