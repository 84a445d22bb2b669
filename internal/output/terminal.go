package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ShouldDisableColor reports whether colored output must be turned off for w,
// either because the user asked for it or because w is not a terminal.
// Writers other than an *os.File never count as a terminal.
func ShouldDisableColor(noColorFlag bool, w io.Writer) bool {
	if noColorFlag {
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	f, ok := w.(*os.File)
	return !ok || !IsTerminal(f)
}
