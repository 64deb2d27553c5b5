package formatter

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// SortLines sorts the lines of text case-insensitively. Lines comparing equal keep
// their order. The result always ends with a single line break.
func SortLines(text string) (string, error) {
	lines := splitLines(text)

	caser := cases.Fold()
	type line struct {
		key, text string
	}
	keyed := make([]line, 0, len(lines))
	for _, s := range lines {
		keyed = append(keyed, line{key: caser.String(s), text: s})
	}
	slices.SortStableFunc(keyed, func(a, b line) int {
		return strings.Compare(a.key, b.key)
	})

	var out strings.Builder
	for _, l := range keyed {
		out.WriteString(l.text)
		out.WriteByte('\n')
	}
	if len(keyed) == 0 {
		out.WriteByte('\n')
	}
	return out.String(), nil
}

// splitLines splits text into lines without line terminators. A final line break
// does not produce an empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
