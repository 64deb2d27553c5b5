package formatter

const (
	// DefaultMarkdownWrap is a default markdown wrap width.
	DefaultMarkdownWrap = 88
	// DefaultLineLength is a default python line length.
	DefaultLineLength = 88
)

// MarkdownOpts contains markdown formatting options.
type MarkdownOpts struct {
	// Wrap is a maximum width of reflowed paragraphs.
	Wrap int
}

// PythonOpts contains python formatting options.
type PythonOpts struct {
	// LineLength is a maximum line length. Long from-imports are wrapped to fit it.
	LineLength int
	// StringNormalization enables conversion of single quoted strings to double quotes.
	StringNormalization bool
	// KnownFirstParty is a list of modules sorted into the first party import section.
	KnownFirstParty []string
}

// Opts contains formatting options.
type Opts struct {
	Markdown MarkdownOpts
	Python   PythonOpts
	// Commands maps a formatter kind to an external command used instead of the
	// built-in formatter. The text is passed through the command's stdin and stdout.
	Commands map[Kind][]string
	// WorkDir is a working directory for external commands.
	WorkDir string
}

// DefaultOpts returns formatting options filled with default values.
func DefaultOpts() Opts {
	return Opts{
		Markdown: MarkdownOpts{Wrap: DefaultMarkdownWrap},
		Python: PythonOpts{
			LineLength:          DefaultLineLength,
			StringNormalization: true,
		},
	}
}
