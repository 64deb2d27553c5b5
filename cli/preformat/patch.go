package preformat

import (
	"fmt"
	"strings"

	"github.com/jaustinpage/tmplfmt/cli/templates"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// EditScript is a character level diff between a rendered template and its formatted
// version. It is applied to the template the text was rendered from, placeholder
// spans map rendered offsets back to template offsets.
type EditScript struct {
	dmp   *diffmatchpatch.DiffMatchPatch
	from  string
	diffs []diffmatchpatch.Diff
}

// NewEditScript creates an edit script turning from into to.
func NewEditScript(from, to string) EditScript {
	dmp := diffmatchpatch.New()
	return EditScript{dmp: dmp, from: from, diffs: dmp.DiffMain(from, to, false)}
}

// Len returns the number of insertions and deletions.
func (s EditScript) Len() int {
	count := 0
	for _, diff := range s.diffs {
		if diff.Type != diffmatchpatch.DiffEqual {
			count++
		}
	}
	return count
}

// Apply applies the script to the template text. Spans locate placeholder tokens of
// text and their values in the script source, text outside of spans must match the
// source. An edit inside of a placeholder value fails with ErrBadPatch.
func (s EditScript) Apply(text string, spans []templates.Span) (string, error) {
	m := spanMapper{source: s.from, text: text, spans: spans}
	for _, diff := range s.diffs {
		end := m.src + len(diff.Text)
		var err error
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			err = m.advance(end, true)
		case diffmatchpatch.DiffDelete:
			err = m.advance(end, false)
		case diffmatchpatch.DiffInsert:
			m.out.WriteString(diff.Text)
		}
		if err != nil {
			return "", err
		}
	}
	if err := m.finish(len(s.from)); err != nil {
		return "", err
	}
	return m.out.String(), nil
}

// String returns the patches in the GNU diff like textual form.
func (s EditScript) String() string {
	return s.dmp.PatchToText(s.dmp.PatchMake(s.from, s.diffs))
}

// spanMapper walks the script source and the template text in parallel.
type spanMapper struct {
	source string
	text   string
	spans  []templates.Span
	out    strings.Builder
	// next is the first span not passed yet.
	next int
	// src and orig are the current offsets in the source and in the template text.
	src, orig int
}

// copyTo moves to the source offset to without crossing a span. Passed template text
// is written to the output if keep is set.
func (m *spanMapper) copyTo(to int, keep bool) error {
	n := to - m.src
	if m.orig+n > len(m.text) || m.text[m.orig:m.orig+n] != m.source[m.src:to] {
		return fmt.Errorf("%w: template text does not match the formatted text", ErrBadPatch)
	}
	if keep {
		m.out.WriteString(m.text[m.orig : m.orig+n])
	}
	m.src, m.orig = to, m.orig+n
	return nil
}

// advance moves to the source offset to. Deleted text (keep is false) may only
// contain empty placeholder values, their tokens are kept.
func (m *spanMapper) advance(to int, keep bool) error {
	for ; m.next < len(m.spans); m.next++ {
		span := m.spans[m.next]
		if span.RenderedFrom >= to {
			break
		}
		if span.RenderedTo > to || !keep && span.RenderedTo > span.RenderedFrom {
			return fmt.Errorf("%w: formatting changes placeholder %s", ErrBadPatch,
				m.text[span.From:span.To])
		}
		if err := m.copyTo(span.RenderedFrom, keep); err != nil {
			return err
		}
		if m.orig != span.From {
			return fmt.Errorf("%w: placeholder offsets do not match the template", ErrBadPatch)
		}
		m.out.WriteString(m.text[span.From:span.To])
		m.src, m.orig = span.RenderedTo, span.To
	}
	return m.copyTo(to, keep)
}

// finish writes the tokens of empty values at the end of the source and checks the
// whole template was consumed.
func (m *spanMapper) finish(end int) error {
	if err := m.advance(end, true); err != nil {
		return err
	}
	for ; m.next < len(m.spans); m.next++ {
		span := m.spans[m.next]
		if span.RenderedFrom != end || span.RenderedTo != end || m.orig != span.From {
			return fmt.Errorf("%w: placeholder offsets do not match the template", ErrBadPatch)
		}
		m.out.WriteString(m.text[span.From:span.To])
		m.orig = span.To
	}
	if m.orig != len(m.text) {
		return fmt.Errorf("%w: template text does not match the formatted text", ErrBadPatch)
	}
	return nil
}

// textChanged compares two texts with a semantically cleaned up diff. A single diff
// segment is not a change.
func textChanged(from, to string) bool {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, true))
	return len(diffs) > 1
}
