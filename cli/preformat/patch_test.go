package preformat

import (
	"testing"

	"github.com/jaustinpage/tmplfmt/cli/formatter"
	"github.com/jaustinpage/tmplfmt/cli/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditScriptApply(t *testing.T) {
	script := NewEditScript("a = 1\nb  =  2\n", "a = 1\nb = 2\n")
	require.Positive(t, script.Len())
	assert.NotEmpty(t, script.String())

	result, err := script.Apply("a = 1\nb  =  2\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nb = 2\n", result)
}

func TestEditScriptEmpty(t *testing.T) {
	script := NewEditScript("same\n", "same\n")
	assert.Equal(t, 0, script.Len())
	assert.Empty(t, script.String())

	result, err := script.Apply("same\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "same\n", result)

	_, err = script.Apply("other\n", nil)
	require.ErrorIs(t, err, ErrBadPatch)
}

func renderSpans(t *testing.T, template string, vars map[string]string) (string, []templates.Span) {
	t.Helper()
	rendered, spans, err := templates.NewDefaultEngine().RenderSpans(template, vars)
	require.NoError(t, err)
	return rendered, spans
}

func TestEditScriptApplyPlaceholders(t *testing.T) {
	vars := map[string]string{"package": "myproject", "name": "demo", "empty": ""}
	cases := []struct {
		name      string
		template  string
		formatted string
		expected  string
	}{
		{
			"spaces before placeholder",
			"import os\nimport sys\nclass  ${package}:\n    pass\n",
			"import os\nimport sys\n\n\nclass myproject:\n    pass\n",
			"import os\nimport sys\n\n\nclass ${package}:\n    pass\n",
		},
		{
			"reflow around placeholder",
			"Some text with $name and\nmore   words.\n",
			"Some text with demo and more words.\n",
			"Some text with $name and more words.\n",
		},
		{
			"placeholder at text start",
			"${name}   is here\n",
			"demo is here\n",
			"${name} is here\n",
		},
		{
			"empty value in deleted text",
			"a  ${empty}  b\n",
			"a b\n",
			"a ${empty}b\n",
		},
		{
			"empty value at text end",
			"a  b${empty}",
			"a b\n",
			"a b\n${empty}",
		},
		{
			"escaped dollar and unknown placeholder",
			"cost  $$5 for $unknown\n",
			"cost $5 for $unknown\n",
			"cost $$5 for $unknown\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rendered, spans := renderSpans(t, c.template, vars)
			result, err := NewEditScript(rendered, c.formatted).Apply(c.template, spans)
			require.NoError(t, err)
			assert.Equal(t, c.expected, result)
		})
	}
}

func TestEditScriptApplyChangedValue(t *testing.T) {
	vars := map[string]string{"name": "demo project"}
	for _, formatted := range []string{
		"About demo\nproject.\n",
		"About Demo project.\n",
		"About .\n",
	} {
		rendered, spans := renderSpans(t, "About $name.\n", vars)
		_, err := NewEditScript(rendered, formatted).Apply("About $name.\n", spans)
		require.ErrorIs(t, err, ErrBadPatch, formatted)
	}
}

func TestTextChanged(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
		expected bool
	}{
		{"same", "text\n", "text\n", false},
		{"empty", "", "", false},
		{"insert", "a\n", "a\n\n", true},
		{"insert only", "", "a\n", false},
		{"delete only", "a\n", "", false},
		{"whole text replaced", "a\n", "b\n", true},
		{"replace", "a b\n", "a  b\n", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, textChanged(c.from, c.to))
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "rewritten", Rewritten.String())
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.PanicsWithValue(t, "Unknown status", func() { _ = Status(2023).String() })
}

func TestCheckPlaceholders(t *testing.T) {
	reformatter := NewReformatter(formatter.NewRegistry(formatter.DefaultOpts()), Opts{})
	ctx := fileCtx{
		Original:  "${a}\n$b\n$$\n",
		Result:    "$b\n${a}\n$$\n",
		Formatted: "$b\n${a}\n$\n",
	}
	require.NoError(t, checkPlaceholders{}.Run(reformatter, &ctx))

	ctx.Result = "${a}\n$ b\n$$\n"
	require.ErrorIs(t, checkPlaceholders{}.Run(reformatter, &ctx), ErrPlaceholdersChanged)

	ctx.Result = "${a}\n$b\n$b\n$$\n"
	require.ErrorIs(t, checkPlaceholders{}.Run(reformatter, &ctx), ErrPlaceholdersChanged)
}

func TestCheckPlaceholdersDamagedText(t *testing.T) {
	reformatter := NewReformatter(formatter.NewRegistry(formatter.DefaultOpts()), Opts{})
	ctx := fileCtx{
		Original:  "import os\nimport sys\nclass  ${package}:\n    pass\n",
		Formatted: "import os\nimport sys\n\n\nclass myproject:\n    pass\n",
		Result:    "import os\nimport sys\n\n\nclass${package}:\n    pass\n",
	}
	err := checkPlaceholders{}.Run(reformatter, &ctx)
	require.ErrorIs(t, err, ErrPlaceholdersChanged)
	assert.ErrorContains(t, err, "does not render to the formatted text")

	ctx.Result = "import os\nimport sys\n\n\nclass ${package}:\n    pass\n"
	require.NoError(t, checkPlaceholders{}.Run(reformatter, &ctx))
}

func TestUnifiedDiff(t *testing.T) {
	diff, err := UnifiedDiff("a.md.template", "a\nb  c\n", "a\nb c\n", false)
	require.NoError(t, err)
	assert.Equal(t, "--- a.md.template\n+++ a.md.template (formatted)\n"+
		"@@ -1,2 +1,2 @@\n a\n-b  c\n+b c\n", diff)
}
