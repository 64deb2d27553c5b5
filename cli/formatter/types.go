package formatter

// Formatter is a text to text transformation applied to the content of a file.
// Implementations should be idempotent: formatting formatted text changes nothing.
type Formatter interface {
	// Format returns formatted text.
	Format(text string) (string, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(text string) (string, error)

// Format calls f(text).
func (f FormatterFunc) Format(text string) (string, error) {
	return f(text)
}

// Kind defines a set of supported formatters.
type Kind int

const (
	MarkdownKind Kind = iota
	PythonKind
	SortKind
)

const (
	markdownKindStr = "markdown"
	pythonKindStr   = "python"
	sortKindStr     = "sort"
)

// Kinds lists all supported formatter kinds.
var Kinds = []Kind{MarkdownKind, PythonKind, SortKind}

// ParseKind parses a formatter kind string representation.
func ParseKind(str string) (Kind, bool) {
	switch str {
	case markdownKindStr, "md":
		return MarkdownKind, true
	case pythonKindStr, "py":
		return PythonKind, true
	case sortKindStr:
		return SortKind, true
	}
	return MarkdownKind, false
}

// String returns a string representation of the formatter kind.
func (k Kind) String() string {
	switch k {
	case MarkdownKind:
		return markdownKindStr
	case PythonKind:
		return pythonKindStr
	case SortKind:
		return sortKindStr
	default:
		panic("Unknown formatter kind")
	}
}
