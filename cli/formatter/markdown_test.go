package formatter_test

import (
	"strings"
	"testing"

	"github.com/jaustinpage/tmplfmt/cli/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownFormat(t *testing.T) {
	cases := []struct {
		name     string
		wrap     int
		in       string
		expected string
	}{
		{
			name:     "paragraph reflow",
			in:       "Hello\nworld.  This   is a\nparagraph.\n",
			expected: "Hello world. This is a paragraph.\n",
		},
		{
			name:     "wrap",
			wrap:     20,
			in:       "aaaa bbbb cccc dddd eeee\n",
			expected: "aaaa bbbb cccc dddd\neeee\n",
		},
		{
			name:     "headings",
			in:       "Title\n=====\n\nSub\n---\n### Third ###\n",
			expected: "# Title\n\n## Sub\n\n### Third\n",
		},
		{
			name:     "blank lines",
			in:       "\n\n# Title\n\n\n\ntext\n\n\n",
			expected: "# Title\n\ntext\n",
		},
		{
			name:     "tight list",
			in:       "* one\n* two\n  continued\n",
			expected: "- one\n- two continued\n",
		},
		{
			name:     "loose list",
			in:       "- one\n\n- two\n",
			expected: "- one\n\n- two\n",
		},
		{
			name:     "ordered list",
			in:       "1. a\n2. b\n3. c\n",
			expected: "1. a\n1. b\n1. c\n",
		},
		{
			name:     "nested list",
			in:       "- a\n  - b\n  - c\n- d\n",
			expected: "- a\n  - b\n  - c\n- d\n",
		},
		{
			name:     "code span",
			in:       "text *emph* and `code  span` here\n",
			expected: "text *emph* and `code  span` here\n",
		},
		{
			name:     "code span across lines",
			in:       "see ``a  `b`\nc`` and  `x`\n",
			expected: "see ``a  `b` c`` and `x`\n",
		},
		{
			name:     "unclosed backticks",
			in:       "a ``b  c` d\n",
			expected: "a ``b c` d\n",
		},
		{
			name:     "escaped backtick",
			in:       "a \\`b  c` d\n",
			expected: "a \\`b c` d\n",
		},
		{
			name:     "heading with code span",
			in:       "#  Use `a  b`\n",
			expected: "# Use `a  b`\n",
		},
		{
			name:     "code fence",
			in:       "```python\nx  =  1\n\n\ny = 2\n```\n",
			expected: "```python\nx  =  1\n\n\ny = 2\n```\n",
		},
		{
			name:     "indented code",
			in:       "text\n\n    code  here\n",
			expected: "text\n\n    code  here\n",
		},
		{
			name:     "thematic break",
			in:       "***\n",
			expected: strings.Repeat("_", 70) + "\n",
		},
		{
			name:     "quote",
			in:       "> a\n> b\n",
			expected: "> a b\n",
		},
		{
			name:     "table",
			in:       "| a | b |\n|---|---|\n| 1 | 2 |\n",
			expected: "| a | b |\n|---|---|\n| 1 | 2 |\n",
		},
		{
			name:     "hard break",
			in:       "first\\\nsecond\n",
			expected: "first\\\nsecond\n",
		},
		{
			name:     "placeholders",
			in:       "# ${name}\n\n${description}\nis a project.\n",
			expected: "# ${name}\n\n${description} is a project.\n",
		},
		{
			name:     "empty",
			in:       "\n\n",
			expected: "",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			md := formatter.NewMarkdown(formatter.MarkdownOpts{Wrap: c.wrap})
			out, err := md.Format(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.expected, out)

			again, err := md.Format(out)
			require.NoError(t, err)
			assert.Equal(t, out, again, "formatting is not idempotent")
		})
	}
}

func TestMarkdownWrapKeepsBlockMarkers(t *testing.T) {
	md := formatter.NewMarkdown(formatter.MarkdownOpts{Wrap: 10})
	out, err := md.Format("aaaaaaaaa - bbbb\n")
	require.NoError(t, err)
	// A line must not start with a list marker.
	assert.Equal(t, "aaaaaaaaa -\nbbbb\n", out)
}
