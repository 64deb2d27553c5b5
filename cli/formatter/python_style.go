package formatter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	pySentinelRe         = regexp.MustCompile("\x00([0-9]+)\x00")
	pyTrailingSentinelRe = regexp.MustCompile("\x00([0-9]+)\x00$")
	pySpacesRe           = regexp.MustCompile(`[ \t]+`)
	pyOpenBracketSpaceRe = regexp.MustCompile(`([(\[{]) `)
	pyCloseSpaceRe       = regexp.MustCompile(` ([)\]},])`)
	pyCommaRe            = regexp.MustCompile(`,([^\s)\]}])`)
)

// pyStyledLine is a formatted logical line.
type pyStyledLine struct {
	text      string
	blank     bool
	comment   bool
	depth     int
	def       bool
	decorator bool
	imports   bool
	// opener is set for lines starting a block, they end with a colon.
	opener bool
}

// formatPythonStyle normalizes whitespace, comments, string quotes and blank lines.
func formatPythonStyle(src string, opts PythonOpts) string {
	var lines []pyStyledLine
	for _, line := range tokenizePython(src) {
		lines = append(lines, styleLine(line, opts))
	}
	return joinPythonLines(lines)
}

func normalizeComment(comment string) string {
	comment = strings.TrimRight(comment, " \t")
	if len(comment) > 1 && strings.IndexByte(" !:#'", comment[1]) < 0 {
		comment = "# " + comment[1:]
	}
	return comment
}

// normalizeQuotes converts a single quoted string literal to double quotes if this
// does not require additional escaping.
func normalizeQuotes(literal string) string {
	prefixLen := strings.IndexAny(literal, `'"`)
	if prefixLen < 0 {
		return literal
	}
	prefix, body := literal[:prefixLen], literal[prefixLen:]
	quote := "'"
	if strings.HasPrefix(body, "'''") {
		quote = "'''"
	} else if !strings.HasPrefix(body, quote) {
		return literal
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return literal
	}
	inner := body[len(quote) : len(body)-len(quote)]
	if strings.Contains(inner, `"`) || strings.Contains(inner, `\'`) {
		return literal
	}
	doubled := strings.Repeat(`"`, len(quote))
	return prefix + doubled + inner + doubled
}

// normalizeCode normalizes whitespace of a physical line without indentation.
// Strings and comments are masked at this point.
func normalizeCode(code string) string {
	code = strings.TrimSpace(code)
	code = pySpacesRe.ReplaceAllString(code, " ")
	code = pyOpenBracketSpaceRe.ReplaceAllString(code, "$1")
	code = pyCloseSpaceRe.ReplaceAllString(code, "$1")
	return pyCommaRe.ReplaceAllString(code, ", $1")
}

// spaceColons puts a single space after the colons of dict items, annotations and
// lambdas and removes spaces before them. Slice colons and walrus operators are kept.
// brackets are the brackets open before code, the updated list is returned.
func spaceColons(code string, brackets []byte) (string, []byte) {
	var out strings.Builder
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch c {
		case '(', '[', '{':
			brackets = append(brackets, c)
		case ')', ']', '}':
			if len(brackets) > 0 {
				brackets = brackets[:len(brackets)-1]
			}
		case ':':
			inSlice := len(brackets) > 0 && brackets[len(brackets)-1] == '['
			walrus := i+1 < len(code) && code[i+1] == '='
			if inSlice || walrus {
				break
			}
			trimmed := strings.TrimRight(out.String(), " ")
			out.Reset()
			out.WriteString(trimmed)
			out.WriteByte(':')
			if i+1 < len(code) && code[i+1] != ' ' {
				out.WriteByte(' ')
			}
			continue
		}
		out.WriteByte(c)
	}
	return out.String(), brackets
}

func styleLine(line pyLine, opts PythonOpts) pyStyledLine {
	var masked strings.Builder
	var values []string
	comments := map[int]bool{}
	for _, tok := range line {
		switch tok.kind {
		case pyCode:
			masked.WriteString(tok.text)
		case pyString:
			literal := tok.text
			if opts.StringNormalization {
				literal = normalizeQuotes(literal)
			}
			fmt.Fprintf(&masked, "\x00%d\x00", len(values))
			values = append(values, literal)
		case pyComment:
			comments[len(values)] = true
			fmt.Fprintf(&masked, "\x00%d\x00", len(values))
			values = append(values, normalizeComment(tok.text))
		}
	}

	var styled pyStyledLine
	var code strings.Builder
	var brackets []byte
	segments := strings.Split(masked.String(), "\n")
	for k, segment := range segments {
		indentLen := len(segment) - len(strings.TrimLeft(segment, " \t"))
		indent, body := segment[:indentLen], strings.TrimRight(segment[indentLen:], " \t")
		comment := ""
		if m := pyTrailingSentinelRe.FindStringSubmatchIndex(body); m != nil {
			if idx, _ := strconv.Atoi(body[m[2]:m[3]]); comments[idx] {
				comment = body[m[0]:]
				body = body[:m[0]]
			}
		}
		body, brackets = spaceColons(normalizeCode(body), brackets)
		code.WriteString(body)

		switch {
		case body == "" && comment == "":
			segment = ""
		case body == "":
			segment = indent + comment
		case comment == "":
			segment = indent + body
		default:
			segment = indent + body + "  " + comment
		}
		segments[k] = segment

		if k == 0 {
			styled.depth = indentWidth(indent)
			styled.comment = body == "" && comment != ""
			fields := strings.Fields(body)
			if len(fields) > 0 {
				switch fields[0] {
				case "def", "class":
					styled.def = true
				case "async":
					styled.def = len(fields) > 1 && fields[1] == "def"
				case "import", "from":
					styled.imports = true
				}
			}
			styled.decorator = strings.HasPrefix(body, "@")
		}
	}

	styled.opener = strings.HasSuffix(strings.TrimSpace(code.String()), ":")
	text := strings.Join(segments, "\n")
	styled.blank = strings.TrimSpace(text) == ""
	styled.text = pySentinelRe.ReplaceAllStringFunc(text, func(s string) string {
		idx, _ := strconv.Atoi(s[1 : len(s)-1])
		return values[idx]
	})
	return styled
}

func blankLinesAround(depth int) int {
	if depth == 0 {
		return 2
	}
	return 1
}

// joinPythonLines joins formatted lines and fixes the number of blank lines between
// them.
func joinPythonLines(lines []pyStyledLine) string {
	type entry struct {
		line   pyStyledLine
		blanks int
		before int
	}
	var entries []entry
	blanks := 0
	for _, line := range lines {
		if line.blank {
			blanks++
			continue
		}
		entries = append(entries, entry{line: line, blanks: blanks})
		blanks = 0
	}

	var defDepths []int
	for k := range entries {
		cur := entries[k].line
		leftDef := false
		for len(defDepths) > 0 && defDepths[len(defDepths)-1] >= cur.depth {
			defDepths = defDepths[:len(defDepths)-1]
			leftDef = true
		}
		if k == 0 {
			if cur.def {
				defDepths = append(defDepths, cur.depth)
			}
			continue
		}

		prev := entries[k-1].line
		before := min(entries[k].blanks, blankLinesAround(cur.depth))
		switch {
		case prev.opener || prev.decorator:
			before = 0
		case cur.def || cur.decorator:
			want := blankLinesAround(cur.depth)
			// Comments right above a definition stay attached to it.
			first := k
			for first > 0 && entries[first].blanks == 0 && entries[first-1].line.comment &&
				entries[first-1].line.depth == cur.depth {
				first--
			}
			if first == k {
				before = want
				break
			}
			before = 0
			if first > 0 {
				above := entries[first-1].line
				if !above.opener && !above.decorator {
					entries[first].before = want
				}
			}
		case leftDef:
			before = blankLinesAround(cur.depth)
		case prev.imports && !cur.imports && prev.depth == cur.depth:
			before = max(before, 1)
		}
		entries[k].before = before

		if cur.def {
			defDepths = append(defDepths, cur.depth)
		}
	}

	if len(entries) == 0 {
		return ""
	}
	var out strings.Builder
	for _, e := range entries {
		out.WriteString(strings.Repeat("\n", e.before))
		out.WriteString(e.line.text)
		out.WriteByte('\n')
	}
	return out.String()
}
