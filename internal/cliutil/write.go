// Package cliutil provides output helpers shared by the outdiff commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Writeln writes s followed by a newline, with the same error handling as
// Writef.
func Writeln(w io.Writer, s string) {
	Writef(w, "%s\n", s)
}
