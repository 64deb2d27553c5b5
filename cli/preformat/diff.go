package preformat

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	addedLine   = color.New(color.FgGreen).SprintFunc()
	removedLine = color.New(color.FgRed).SprintFunc()
	hunkLine    = color.New(color.FgCyan).SprintFunc()
)

// UnifiedDiff returns a unified diff between the original and the formatted text of
// the file. Lines are colored if colored is true.
func UnifiedDiff(path, original, formatted string, colored bool) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(formatted),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  3,
	})
	if err != nil || !colored {
		return diff, err
	}

	lines := strings.SplitAfter(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			lines[i] = colorLine(line, addedLine)
		case strings.HasPrefix(line, "-"):
			lines[i] = colorLine(line, removedLine)
		case strings.HasPrefix(line, "@@"):
			lines[i] = colorLine(line, hunkLine)
		}
	}
	return strings.Join(lines, ""), nil
}

// splitLines splits text into lines keeping line breaks. The last line gets a line
// break if it has none.
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		lines[last] += "\n"
	}
	return lines
}

// colorLine colors the line keeping its line break uncolored.
func colorLine(line string, paint func(a ...interface{}) string) string {
	body, found := strings.CutSuffix(line, "\n")
	if found {
		return paint(body) + "\n"
	}
	return paint(body)
}
