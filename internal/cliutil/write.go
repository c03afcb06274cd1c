// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var errorLabel = color.New(color.FgRed, color.Bold)

// WriteError writes "Error: <err>" to w. The label is red when w is a terminal
// and NO_COLOR is unset.
func WriteError(w io.Writer, err error) {
	label := "Error:"
	if f, ok := w.(*os.File); ok && IsTerminal(f) && !color.NoColor {
		label = errorLabel.Sprint(label)
	}
	Writef(w, "%s %v\n", label, err)
}
