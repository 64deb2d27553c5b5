package formatter

import (
	"fmt"
	"strings"
)

// Python formats python source code. The first top level import block is sorted
// into sections, then the code style is normalized: whitespace, commas, colons,
// comments, string quotes and blank lines. Binary operators are not spaced and long
// lines other than from-imports are not split, a configured external command can run
// black for that.
type Python struct {
	opts PythonOpts
}

// NewPython creates a python formatter.
func NewPython(opts PythonOpts) *Python {
	if opts.LineLength <= 0 {
		opts.LineLength = DefaultLineLength
	}
	return &Python{opts: opts}
}

// Format formats python source code.
func (p *Python) Format(in string) (string, error) {
	if strings.IndexByte(in, 0) >= 0 {
		return "", fmt.Errorf("python source contains a null byte")
	}
	src := strings.ReplaceAll(in, "\r\n", "\n")
	src = sortImports(src, p.opts)
	return formatPythonStyle(src, p.opts), nil
}

type pyTokenKind int

const (
	// pyCode is everything outside strings and comments, including whitespace and
	// line breaks of continuation lines.
	pyCode pyTokenKind = iota
	pyString
	pyComment
)

type pyToken struct {
	kind pyTokenKind
	text string
}

// pyLine is a logical line of python source without the terminating line break.
// A logical line spans several physical lines inside brackets, after a backslash
// or inside a triple quoted string.
type pyLine []pyToken

func (l pyLine) raw() string {
	var sb strings.Builder
	for _, tok := range l {
		sb.WriteString(tok.text)
	}
	return sb.String()
}

func (l pyLine) isBlank() bool {
	for _, tok := range l {
		if tok.kind != pyCode || strings.TrimSpace(tok.text) != "" {
			return false
		}
	}
	return true
}

func (l pyLine) hasKind(kind pyTokenKind) bool {
	for _, tok := range l {
		if tok.kind == kind {
			return true
		}
	}
	return false
}

// code returns the line text with strings and comments removed.
func (l pyLine) code() string {
	var sb strings.Builder
	for _, tok := range l {
		if tok.kind == pyCode {
			sb.WriteString(tok.text)
		}
	}
	return sb.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// stringPrefixLen returns the length of a string prefix like r, b or rb at the end
// of code.
func stringPrefixLen(code string) int {
	n := 0
	for n < 2 && n < len(code) && strings.IndexByte("rRbBuUfF", code[len(code)-1-n]) >= 0 {
		n++
	}
	if n == 0 || n < len(code) && isIdentByte(code[len(code)-1-n]) {
		return 0
	}
	return n
}

// scanPythonString returns the end offset of the string literal starting at start.
// Unterminated single quoted strings end at the line break.
func scanPythonString(src string, start int) int {
	quote := src[start : start+1]
	if strings.HasPrefix(src[start:], strings.Repeat(quote, 3)) {
		quote = strings.Repeat(quote, 3)
	}
	i := start + len(quote)
	for i < len(src) {
		switch {
		case src[i] == '\\':
			i += 2
		case strings.HasPrefix(src[i:], quote):
			return i + len(quote)
		case src[i] == '\n' && len(quote) == 1:
			return i
		default:
			i++
		}
	}
	return len(src)
}

// tokenizePython splits python source into logical lines.
func tokenizePython(src string) []pyLine {
	var (
		lines []pyLine
		line  pyLine
		code  strings.Builder
		depth int
	)
	flush := func() {
		if code.Len() > 0 {
			line = append(line, pyToken{kind: pyCode, text: code.String()})
			code.Reset()
		}
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '#':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			flush()
			line = append(line, pyToken{kind: pyComment, text: src[i:end]})
			i = end
		case c == '\'' || c == '"':
			buffered := code.String()
			prefix := stringPrefixLen(buffered)
			code.Reset()
			code.WriteString(buffered[:len(buffered)-prefix])
			flush()
			end := scanPythonString(src, i)
			line = append(line, pyToken{kind: pyString, text: src[i-prefix : end]})
			i = end
		case c == '\n':
			buffered := code.String()
			if depth > 0 || strings.HasSuffix(buffered, "\\") {
				code.WriteByte(c)
			} else {
				flush()
				lines = append(lines, line)
				line = nil
			}
			i++
		default:
			switch c {
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				if depth > 0 {
					depth--
				}
			}
			code.WriteByte(c)
			i++
		}
	}
	flush()
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}
