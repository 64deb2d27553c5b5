package formatter

import (
	"regexp"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

const thematicBreak = "______________________________________________________________________"

var (
	mdATXHeadingRe     = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*)|)$`)
	mdClosingHashesRe  = regexp.MustCompile(`(?:^|[ \t]+)#+[ \t]*$`)
	mdSetextUnderline  = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)
	mdThematicBreakRe  = regexp.MustCompile(`^ {0,3}(?:(?:\*[ \t]*){3,}|(?:-[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	mdFenceRe          = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
	mdBulletRe         = regexp.MustCompile(`^( {0,3})([-+*])( +|$)(.*)$`)
	mdOrderedRe        = regexp.MustCompile(`^( {0,3})([0-9]{1,9})([.)])( +|$)(.*)$`)
	mdQuoteRe          = regexp.MustCompile(`^ {0,3}> ?(.*)$`)
	mdHTMLRe           = regexp.MustCompile(`^ {0,3}<[A-Za-z/!?]`)
	mdTableDelimiterRe = regexp.MustCompile(`^ *\|? *:?-+:? *(\| *:?-+:? *)*\|? *$`)
	mdLinkDefinitionRe = regexp.MustCompile(`^ {0,3}\[[^\]]+\]:[ \t]*\S`)

	// mdLineStartRe matches words which change the meaning of a paragraph line when
	// placed at its beginning.
	mdLineStartRe = regexp.MustCompile("^(?:#{1,6}|[-+*]|[0-9]{1,9}[.)]|=+|-+|\\*{3,}|_{3,}|`{3,}.*|~{3,}.*|>.*|<[A-Za-z/!?].*)$")
)

type mdBlockKind int

const (
	mdParagraph mdBlockKind = iota
	mdHeading
	mdVerbatim
	mdThematicBreak
	mdList
	mdQuote
)

// mdBlock is a parsed markdown block.
type mdBlock struct {
	kind mdBlockKind
	// lines of a paragraph or a verbatim block.
	lines []string
	// level and text of a heading.
	level int
	text  string
	// list is set for list blocks.
	list *mdListBlock
	// children of a block quote.
	children []mdBlock
}

type mdListBlock struct {
	ordered bool
	// marker is a bullet or a number with delimiter used for all items.
	marker string
	loose  bool
	items  [][]mdBlock
}

// listMarker describes the list item marker of a line.
type listMarker struct {
	ordered       bool
	bullet        string
	number        string
	delimiter     string
	contentIndent int
	rest          string
}

// Markdown reflows markdown documents.
type Markdown struct {
	wrap int
}

// NewMarkdown creates a markdown formatter.
func NewMarkdown(opts MarkdownOpts) *Markdown {
	wrap := opts.Wrap
	if wrap <= 0 {
		wrap = DefaultMarkdownWrap
	}
	return &Markdown{wrap: wrap}
}

// Format reflows paragraphs and list items to the wrap width and normalizes block
// syntax. Code blocks, HTML blocks and tables are kept verbatim.
func (m *Markdown) Format(in string) (string, error) {
	blocks := parseMarkdown(splitLines(in))
	out := renderMarkdownBlocks(blocks, m.wrap, true)
	if len(out) == 0 {
		return "", nil
	}
	return strings.Join(out, "\n") + "\n", nil
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentWidth returns the width of the leading whitespace, tab stops are 4 columns.
func indentWidth(line string) int {
	width := 0
	for _, c := range line {
		switch c {
		case ' ':
			width++
		case '\t':
			width += 4 - width%4
		default:
			return width
		}
	}
	return width
}

// stripIndent removes up to width columns of leading whitespace.
func stripIndent(line string, width int) string {
	col := 0
	for i, c := range line {
		if col >= width {
			return line[i:]
		}
		switch c {
		case ' ':
			col++
		case '\t':
			col += 4 - col%4
		default:
			return line[i:]
		}
	}
	return ""
}

func parseListMarker(line string) (listMarker, bool) {
	var marker listMarker
	var indent, markerText, spacing string
	if m := mdBulletRe.FindStringSubmatch(line); m != nil {
		indent, markerText, spacing, marker.rest = m[1], m[2], m[3], m[4]
		marker.bullet = markerText
	} else if m := mdOrderedRe.FindStringSubmatch(line); m != nil {
		indent, spacing, marker.rest = m[1], m[4], m[5]
		marker.ordered, marker.number, marker.delimiter = true, m[2], m[3]
		markerText = m[2] + m[3]
	} else {
		return marker, false
	}

	marker.contentIndent = len(indent) + len(markerText) + len(spacing)
	if len(spacing) > 4 {
		marker.contentIndent = len(indent) + len(markerText) + 1
		marker.rest = strings.Repeat(" ", len(spacing)-1) + marker.rest
	} else if spacing == "" {
		marker.contentIndent = len(indent) + len(markerText) + 1
	}
	return marker, true
}

func (m listMarker) sameList(other listMarker) bool {
	if m.ordered != other.ordered {
		return false
	}
	if m.ordered {
		return m.delimiter == other.delimiter
	}
	return m.bullet == other.bullet
}

func isTableStart(lines []string, i int) bool {
	return strings.Contains(lines[i], "|") && i+1 < len(lines) &&
		strings.Contains(lines[i+1], "-") && mdTableDelimiterRe.MatchString(lines[i+1])
}

// interruptsParagraph returns true if line starts a new block even right after
// a paragraph line.
func interruptsParagraph(line string) bool {
	if mdATXHeadingRe.MatchString(line) || mdFenceRe.MatchString(line) ||
		mdThematicBreakRe.MatchString(line) || mdQuoteRe.MatchString(line) ||
		mdHTMLRe.MatchString(line) {
		return true
	}
	if marker, ok := parseListMarker(line); ok && strings.TrimSpace(marker.rest) != "" {
		return !marker.ordered || marker.number == "1"
	}
	return false
}

// parseMarkdown splits lines into blocks.
func parseMarkdown(lines []string) []mdBlock {
	var blocks []mdBlock
	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case isBlank(line):
			i++
		case indentWidth(line) >= 4:
			end := i + 1
			for j := i + 1; j < len(lines); j++ {
				if isBlank(lines[j]) {
					continue
				}
				if indentWidth(lines[j]) < 4 {
					break
				}
				end = j + 1
			}
			blocks = append(blocks, mdBlock{kind: mdVerbatim, lines: lines[i:end]})
			i = end
		case mdFenceRe.MatchString(line):
			fence := mdFenceRe.FindStringSubmatch(line)[1]
			end := len(lines)
			for j := i + 1; j < len(lines); j++ {
				if closesFence(lines[j], fence) {
					end = j + 1
					break
				}
			}
			blocks = append(blocks, mdBlock{kind: mdVerbatim, lines: lines[i:end]})
			i = end
		case mdATXHeadingRe.MatchString(line):
			m := mdATXHeadingRe.FindStringSubmatch(line)
			content := mdClosingHashesRe.ReplaceAllString(m[2], "")
			blocks = append(blocks, mdBlock{kind: mdHeading, level: len(m[1]),
				text: strings.Join(inlineWords(content), " ")})
			i++
		case mdThematicBreakRe.MatchString(line):
			blocks = append(blocks, mdBlock{kind: mdThematicBreak})
			i++
		case mdQuoteRe.MatchString(line):
			var block mdBlock
			block, i = parseQuote(lines, i)
			blocks = append(blocks, block)
		case isListItem(line):
			var block mdBlock
			block, i = parseList(lines, i)
			blocks = append(blocks, block)
		case mdHTMLRe.MatchString(line), isTableStart(lines, i),
			mdLinkDefinitionRe.MatchString(line):
			end := i + 1
			for end < len(lines) && !isBlank(lines[end]) {
				end++
			}
			blocks = append(blocks, mdBlock{kind: mdVerbatim, lines: lines[i:end]})
			i = end
		default:
			var block mdBlock
			block, i = parseParagraph(lines, i)
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func isListItem(line string) bool {
	_, ok := parseListMarker(line)
	return ok
}

func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if indentWidth(line) > 3 || !strings.HasPrefix(trimmed, fence) {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}

func parseParagraph(lines []string, i int) (mdBlock, int) {
	paragraph := []string{lines[i]}
	i++
	for i < len(lines) {
		line := lines[i]
		if isBlank(line) {
			break
		}
		if m := mdSetextUnderline.FindStringSubmatch(line); m != nil {
			level := 1
			if m[1][0] == '-' {
				level = 2
			}
			heading := strings.Join(inlineWords(strings.Join(paragraph, "\n")), " ")
			return mdBlock{kind: mdHeading, level: level, text: heading}, i + 1
		}
		if interruptsParagraph(line) {
			break
		}
		paragraph = append(paragraph, line)
		i++
	}
	return mdBlock{kind: mdParagraph, lines: paragraph}, i
}

func parseQuote(lines []string, i int) (mdBlock, int) {
	var content []string
	lazyAllowed := false
	for i < len(lines) {
		line := lines[i]
		if m := mdQuoteRe.FindStringSubmatch(line); m != nil {
			content = append(content, m[1])
			lazyAllowed = !isBlank(m[1]) && !mdFenceRe.MatchString(m[1])
			i++
			continue
		}
		if lazyAllowed && !isBlank(line) && !interruptsParagraph(line) {
			content = append(content, line)
			i++
			continue
		}
		break
	}
	return mdBlock{kind: mdQuote, children: parseMarkdown(content)}, i
}

func parseList(lines []string, i int) (mdBlock, int) {
	first, _ := parseListMarker(lines[i])
	list := mdListBlock{ordered: first.ordered, marker: first.bullet}
	if first.ordered {
		list.marker = first.number + first.delimiter
	}

	for i < len(lines) {
		marker, ok := parseListMarker(lines[i])
		if !ok || !marker.sameList(first) {
			break
		}
		if len(list.items) > 0 && isBlank(lines[i-1]) {
			list.loose = true
		}

		item := []string{marker.rest}
		inFence := mdFenceRe.MatchString(marker.rest)
		lastBlank := isBlank(marker.rest)
		i++
		for i < len(lines) {
			line := lines[i]
			if isBlank(line) {
				item = append(item, "")
				lastBlank = true
				i++
				continue
			}
			if indentWidth(line) >= marker.contentIndent {
				content := stripIndent(line, marker.contentIndent)
				if lastBlank && !inFence && len(strings.TrimSpace(strings.Join(item, ""))) > 0 {
					list.loose = true
				}
				if mdFenceRe.MatchString(content) {
					inFence = !inFence
				}
				item = append(item, content)
				lastBlank = false
				i++
				continue
			}
			if !lastBlank && !inFence && !interruptsParagraph(line) && !isListItem(line) {
				item = append(item, strings.TrimLeft(line, " \t"))
				i++
				continue
			}
			break
		}

		// Trailing blank lines belong to the gap between items. The first line is
		// the marker line itself.
		for len(item) > 1 && isBlank(item[len(item)-1]) {
			item = item[:len(item)-1]
			i--
		}
		list.items = append(list.items, parseMarkdown(item))

		next := i
		for next < len(lines) && isBlank(lines[next]) {
			next++
		}
		if next > i {
			if next == len(lines) {
				return mdBlock{kind: mdList, list: &list}, next
			}
			if marker, ok := parseListMarker(lines[next]); !ok || !marker.sameList(first) {
				return mdBlock{kind: mdList, list: &list}, next
			}
			i = next
		}
	}
	return mdBlock{kind: mdList, list: &list}, i
}

// renderMarkdownBlocks renders blocks separated by blank lines if separate is true.
func renderMarkdownBlocks(blocks []mdBlock, width int, separate bool) []string {
	var out []string
	for i, block := range blocks {
		if i > 0 && separate {
			out = append(out, "")
		}
		out = append(out, renderMarkdownBlock(block, width)...)
	}
	return out
}

func renderMarkdownBlock(block mdBlock, width int) []string {
	switch block.kind {
	case mdHeading:
		heading := strings.Repeat("#", block.level)
		if block.text != "" {
			heading += " " + block.text
		}
		return []string{heading}
	case mdVerbatim:
		return block.lines
	case mdThematicBreak:
		return []string{thematicBreak}
	case mdQuote:
		inner := renderMarkdownBlocks(block.children, width-2, true)
		out := make([]string, 0, len(inner))
		for _, line := range inner {
			if line == "" {
				out = append(out, ">")
			} else {
				out = append(out, "> "+line)
			}
		}
		if len(out) == 0 {
			out = append(out, ">")
		}
		return out
	case mdList:
		return renderMarkdownList(block.list, width)
	default:
		return renderParagraph(block.lines, width)
	}
}

func renderMarkdownList(list *mdListBlock, width int) []string {
	marker := "-"
	if list.ordered {
		marker = list.marker
	}
	indent := strings.Repeat(" ", len(marker)+1)

	var out []string
	for i, item := range list.items {
		if i > 0 && list.loose {
			out = append(out, "")
		}
		content := renderMarkdownBlocks(item, width-len(indent), list.loose)
		if len(content) == 0 {
			out = append(out, marker)
			continue
		}
		for j, line := range content {
			switch {
			case j == 0:
				out = append(out, marker+" "+line)
			case line == "":
				out = append(out, "")
			default:
				out = append(out, indent+line)
			}
		}
	}
	return out
}

// renderParagraph joins paragraph lines and wraps them to width. Hard line breaks
// are kept and rendered as a trailing backslash.
func renderParagraph(lines []string, width int) []string {
	var segments [][]string
	var segment []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		hardBreak := false
		if i < len(lines)-1 {
			if strings.HasSuffix(line, "  ") {
				hardBreak = true
			} else if strings.HasSuffix(trimmed, `\`) && !strings.HasSuffix(trimmed, `\\`) {
				hardBreak = true
				trimmed = strings.TrimSuffix(trimmed, `\`)
			}
		}
		segment = append(segment, trimmed)
		if hardBreak {
			segments = append(segments, inlineWords(strings.Join(segment, "\n")))
			segment = nil
		}
	}
	segments = append(segments, inlineWords(strings.Join(segment, "\n")))

	var out []string
	for i, words := range segments {
		wrapped := wrapWords(words, width)
		if i < len(segments)-1 {
			wrapped[len(wrapped)-1] += `\`
		}
		out = append(out, wrapped...)
	}
	return out
}

// inlineWords splits inline text into words at whitespace. Code spans are kept
// verbatim inside of their words, line breaks in them become spaces.
func inlineWords(in string) []string {
	var words []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for i := 0; i < len(in); {
		c := in[i]
		switch {
		case c == '\\' && i+1 < len(in) && in[i+1] != '\n':
			word.WriteString(in[i : i+2])
			i += 2
		case c == '`':
			n := backtickRunLen(in, i)
			end := closingBackticks(in, i+n, n)
			if end < 0 {
				end = i + n
			}
			word.WriteString(strings.ReplaceAll(in[i:end], "\n", " "))
			i = end
		case c == ' ' || c == '\t' || c == '\n':
			flush()
			i++
		default:
			word.WriteByte(c)
			i++
		}
	}
	flush()
	return words
}

func backtickRunLen(in string, start int) int {
	n := 0
	for start+n < len(in) && in[start+n] == '`' {
		n++
	}
	return n
}

// closingBackticks returns the offset after the first run of exactly n backticks
// at or after start, or -1 if there is none.
func closingBackticks(in string, start, n int) int {
	for i := start; i < len(in); {
		if in[i] != '`' {
			i++
			continue
		}
		run := backtickRunLen(in, i)
		if run == n {
			return i + run
		}
		i += run
	}
	return -1
}

// wrapWords greedily fills lines up to width. A word which would change the
// meaning of the line it starts stays on the previous line.
func wrapWords(words []string, width int) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range words {
		wordWidth := text.StringWidthWithoutEscSequences(word)
		if lineWidth > 0 && lineWidth+1+wordWidth > width && !mdLineStartRe.MatchString(word) {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += wordWidth
	}
	return append(lines, line.String())
}
