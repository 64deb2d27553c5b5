package templates

import (
	"github.com/jaustinpage/tmplfmt/cli/templates/internal/engines"
)

// Span links a placeholder token of a template to its value in the rendered text.
type Span = engines.Span

// TemplateEngine is an interface to support to use for template text substitution.
type TemplateEngine interface {
	// RenderText applies data to the template text. Returns instantiated text.
	RenderText(in string, data map[string]string) (string, error)

	// RenderSpans works like RenderText and also returns the location of every
	// placeholder token in both texts, ordered by offset.
	RenderSpans(in string, data map[string]string) (string, []Span, error)

	// Placeholders returns all placeholder tokens of the template text in order of
	// appearance. Tokens are returned exactly as written in the text.
	Placeholders(in string) []string
}

// NewDefaultEngine creates and returns default template engine.
func NewDefaultEngine() TemplateEngine {
	return engines.DollarEngine{}
}
