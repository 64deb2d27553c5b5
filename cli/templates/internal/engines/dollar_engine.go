// Package engines provides template engine implementations.
package engines

import (
	"regexp"
	"strings"
)

// placeholderRe matches an escaped dollar, a named placeholder or a braced placeholder.
var placeholderRe = regexp.MustCompile(
	`\$(?:(\$)|([_A-Za-z][_A-Za-z0-9]*)|\{([_A-Za-z][_A-Za-z0-9]*)\})`)

// Span links a placeholder token of a template to its value in the rendered text.
// Offsets are byte offsets, ends are exclusive.
type Span struct {
	From, To                 int
	RenderedFrom, RenderedTo int
}

// DollarEngine substitutes `$name` and `${name}` placeholders. Placeholders missing
// in data are kept as is, `$$` is an escaped `$`. Any other `$` is left untouched.
type DollarEngine struct{}

// RenderText renders in text. It never fails on missing values.
func (e DollarEngine) RenderText(in string, data map[string]string) (string, error) {
	out, _, err := e.RenderSpans(in, data)
	return out, err
}

// RenderSpans renders in text like RenderText and returns a span for every token,
// unknown placeholders and `$$` included. Spans are ordered by offset.
func (DollarEngine) RenderSpans(in string, data map[string]string) (string, []Span, error) {
	matches := placeholderRe.FindAllStringSubmatchIndex(in, -1)
	if len(matches) == 0 {
		return in, nil, nil
	}

	var out strings.Builder
	out.Grow(len(in))
	spans := make([]Span, 0, len(matches))
	last := 0
	for _, m := range matches {
		out.WriteString(in[last:m[0]])
		last = m[1]

		span := Span{From: m[0], To: m[1], RenderedFrom: out.Len()}
		switch {
		case m[2] >= 0:
			out.WriteByte('$')
		case m[4] >= 0:
			out.WriteString(lookup(data, in[m[4]:m[5]], in[m[0]:m[1]]))
		case m[6] >= 0:
			out.WriteString(lookup(data, in[m[6]:m[7]], in[m[0]:m[1]]))
		}
		span.RenderedTo = out.Len()
		spans = append(spans, span)
	}
	out.WriteString(in[last:])

	return out.String(), spans, nil
}

// Placeholders returns all placeholder tokens of in, `$$` included.
func (DollarEngine) Placeholders(in string) []string {
	return placeholderRe.FindAllString(in, -1)
}

func lookup(data map[string]string, name, token string) string {
	if value, found := data[name]; found {
		return value
	}
	return token
}
