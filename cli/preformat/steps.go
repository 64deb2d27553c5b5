package preformat

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jaustinpage/tmplfmt/cli/formatter"
	"github.com/jaustinpage/tmplfmt/cli/templates"
)

// fileCtx contains the state of a single template processing.
type fileCtx struct {
	// Path is a path to the template file.
	Path string
	// Original is the template text as written.
	Original string
	// Substituted is the template text with known placeholders substituted.
	Substituted string
	// Spans locate placeholders in Original and their values in Substituted.
	Spans []templates.Span
	// Kind and Formatter are selected by the template file name.
	Kind      formatter.Kind
	Formatter formatter.Formatter
	// Formatted is the formatted substituted text.
	Formatted string
	// Result is the formatted original template.
	Result string
	// Changed is set if Result differs from Original.
	Changed bool
}

// step is a single step of the template processing chain. A step error stops the
// chain.
type step interface {
	Run(reformatter *Reformatter, ctx *fileCtx) error
}

// substitute replaces known placeholders with their values.
type substitute struct{}

func (substitute) Run(reformatter *Reformatter, ctx *fileCtx) error {
	substituted, spans, err := reformatter.engine.RenderSpans(ctx.Original, reformatter.opts.Vars)
	if err != nil {
		return fmt.Errorf("failed to substitute placeholders: %w", err)
	}
	ctx.Substituted, ctx.Spans = substituted, spans
	return nil
}

// selectFormatter picks a formatter by the file name without the template suffix.
type selectFormatter struct{}

func (selectFormatter) Run(reformatter *Reformatter, ctx *fileCtx) error {
	fileName := strings.TrimSuffix(filepath.Base(ctx.Path), reformatter.opts.Suffix)
	kind, fmtr, found := reformatter.registry.Lookup(fileName)
	if !found || fmtr == nil {
		return ErrFormatterNotFound
	}
	ctx.Kind, ctx.Formatter = kind, fmtr
	return nil
}

// format runs the formatter on the substituted text.
type format struct{}

func (format) Run(_ *Reformatter, ctx *fileCtx) error {
	formatted, err := ctx.Formatter.Format(ctx.Substituted)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", ctx.Kind, err)
	}
	ctx.Formatted = formatted
	return nil
}

// patchOriginal applies formatting changes of the substituted text to the original
// template. Changes inside of substituted values are rejected.
type patchOriginal struct{}

func (patchOriginal) Run(_ *Reformatter, ctx *fileCtx) error {
	script := NewEditScript(ctx.Substituted, ctx.Formatted)
	result, err := script.Apply(ctx.Original, ctx.Spans)
	if err != nil {
		return err
	}
	ctx.Result = result
	return nil
}

// checkPlaceholders makes sure the patched template has the same placeholders and
// renders to the formatted text. Placeholders are compared as multisets since
// formatters may reorder lines.
type checkPlaceholders struct{}

func (checkPlaceholders) Run(reformatter *Reformatter, ctx *fileCtx) error {
	before := reformatter.engine.Placeholders(ctx.Original)
	after := reformatter.engine.Placeholders(ctx.Result)
	slices.Sort(before)
	slices.Sort(after)
	if !slices.Equal(before, after) {
		return ErrPlaceholdersChanged
	}

	rendered, err := reformatter.engine.RenderText(ctx.Result, reformatter.opts.Vars)
	if err != nil {
		return fmt.Errorf("failed to substitute placeholders: %w", err)
	}
	if rendered != ctx.Formatted {
		return fmt.Errorf("%w: template does not render to the formatted text",
			ErrPlaceholdersChanged)
	}
	return nil
}

// detectChange compares the patched template with the original one.
type detectChange struct{}

func (detectChange) Run(_ *Reformatter, ctx *fileCtx) error {
	ctx.Changed = textChanged(ctx.Original, ctx.Result)
	return nil
}
