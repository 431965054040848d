// Package term owns the ANSI escape state shared by logging and display.
//
// The color variables are plain package-level strings rather than a
// palette type: callers concatenate them into output, and when colors
// are off every variable is the empty string, so the same code path
// serves both modes. [Configure] decides once at startup which of the
// two states applies for the rest of the run.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/renamer/internal/config"
)

// Escape sequences for the bright ANSI palette, or "" with colors off.
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	NC      = "" // Reset sequence.
)

// Configure applies the color mode to the package variables. It runs
// once from [logging.NewLogger] before any output is produced.
func Configure(mode config.ColorMode) {
	if !resolve(mode) {
		Red, Green, Yellow, Blue, Cyan, Magenta, NC = "", "", "", "", "", "", ""
		return
	}
	Red = "\033[1;91m"
	Green = "\033[1;92m"
	Yellow = "\033[1;93m"
	Blue = "\033[1;94m"
	Cyan = "\033[1;96m"
	Magenta = "\033[1;95m"
	NC = "\033[0m"
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// resolve maps a color mode to on or off. Auto means a TTY on stdout,
// no NO_COLOR in the environment (https://no-color.org), and a TERM
// that is not "dumb".
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return IsTerminal(os.Stdout) &&
		os.Getenv("NO_COLOR") == "" &&
		strings.ToLower(os.Getenv("TERM")) != "dumb"
}

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
