package engines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRendering(t *testing.T) {
	data := map[string]string{
		"name":    "myproject",
		"package": "my_project",
		"author":  "Jane Doe",
	}

	cases := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain placeholder", "# $name\n", "# myproject\n"},
		{"braced placeholder", "import ${package}.skeleton", "import my_project.skeleton"},
		{"adjacent identifier chars", "${package}_test", "my_project_test"},
		{"greedy name", "$package_test", "$package_test"},
		{"unknown placeholder kept", "$unknown and ${unknown}", "$unknown and ${unknown}"},
		{"escaped dollar", "costs $$5 by $author", "costs $5 by Jane Doe"},
		{"invalid placeholder kept", "$ 5 ${ name } $1", "$ 5 ${ name } $1"},
		{"trailing dollar", "end$", "end$"},
		{"no placeholders", "nothing here", "nothing here"},
		{"empty", "", ""},
	}

	engine := DollarEngine{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := engine.RenderText(tc.in, data)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestTextRenderingNilData(t *testing.T) {
	actual, err := DollarEngine{}.RenderText("class ${package}:\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "class ${package}:\n", actual)
}

func TestPlaceholders(t *testing.T) {
	engine := DollarEngine{}
	assert.Equal(t, []string{"${package}", "$name", "$$", "${package}"},
		engine.Placeholders("from ${package} import $name # $$ ${package} $ {x}"))
	assert.Empty(t, engine.Placeholders("no placeholders $"))
}

func TestRenderSpans(t *testing.T) {
	data := map[string]string{"name": "demo", "empty": ""}
	in := "# ${name} $$ $unknown $empty!"
	out, spans, err := DollarEngine{}.RenderSpans(in, data)
	require.NoError(t, err)
	assert.Equal(t, "# demo $ $unknown !", out)
	assert.Equal(t, []Span{
		{From: 2, To: 9, RenderedFrom: 2, RenderedTo: 6},
		{From: 10, To: 12, RenderedFrom: 7, RenderedTo: 8},
		{From: 13, To: 21, RenderedFrom: 9, RenderedTo: 17},
		{From: 22, To: 28, RenderedFrom: 18, RenderedTo: 18},
	}, spans)

	assert.Equal(t, "${name}", in[spans[0].From:spans[0].To])
	assert.Equal(t, "demo", out[spans[0].RenderedFrom:spans[0].RenderedTo])

	out, spans, err = DollarEngine{}.RenderSpans("plain", data)
	require.NoError(t, err)
	assert.Equal(t, "plain", out)
	assert.Empty(t, spans)
}
