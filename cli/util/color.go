package util

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

var (
	bold = ansi.ColorFunc("default+b")
)

// Bold makes the input string bold.
func Bold(s string) string {
	return bold(s)
}

// ColorEnabled checks that colored output may be written to the file: the file is
// a terminal and the NO_COLOR environment variable is not set.
func ColorEnabled(file *os.File) bool {
	if _, found := os.LookupEnv("NO_COLOR"); found {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
