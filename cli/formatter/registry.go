package formatter

import (
	"path/filepath"
	"strings"
)

var (
	// suffixKinds maps a lower case file extension to a formatter kind.
	suffixKinds = map[string]Kind{
		".md": MarkdownKind,
		".py": PythonKind,
	}
	// nameKinds maps an exact file name to a formatter kind. It is used for files
	// which extension is not registered.
	nameKinds = map[string]Kind{
		"whitelist.txt": SortKind,
	}
)

// Detect returns the formatter kind for the file name. The extension is checked
// first, then the whole base name.
func Detect(fileName string) (Kind, bool) {
	baseName := filepath.Base(fileName)
	if kind, found := suffixKinds[strings.ToLower(filepath.Ext(baseName))]; found {
		return kind, true
	}
	kind, found := nameKinds[baseName]
	return kind, found
}

// Registry holds formatter instances for all kinds.
type Registry struct {
	formatters map[Kind]Formatter
}

// NewRegistry creates a registry of formatters configured with opts.
func NewRegistry(opts Opts) *Registry {
	registry := Registry{formatters: map[Kind]Formatter{
		MarkdownKind: NewMarkdown(opts.Markdown),
		PythonKind:   NewPython(opts.Python),
		SortKind:     FormatterFunc(SortLines),
	}}
	for kind, command := range opts.Commands {
		if len(command) > 0 {
			registry.Set(kind, NewExternal(command, opts.WorkDir))
		}
	}
	return &registry
}

// Set replaces the formatter of the kind.
func (r *Registry) Set(kind Kind, formatter Formatter) {
	r.formatters[kind] = formatter
}

// Get returns the formatter of the kind.
func (r *Registry) Get(kind Kind) Formatter {
	return r.formatters[kind]
}

// Lookup returns the formatter for the file name, see Detect.
func (r *Registry) Lookup(fileName string) (Kind, Formatter, bool) {
	kind, found := Detect(fileName)
	if !found {
		return kind, nil, false
	}
	return kind, r.formatters[kind], true
}
