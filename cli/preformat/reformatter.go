// Package preformat keeps template files formatted. Placeholders of a template are
// substituted, the result is formatted and the formatting changes are patched back
// onto the original template, so placeholders stay intact.
package preformat

import (
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/jaustinpage/tmplfmt/cli/formatter"
	"github.com/jaustinpage/tmplfmt/cli/templates"
	"github.com/jaustinpage/tmplfmt/cli/util"
)

// DefaultSuffix is a default suffix of template files.
const DefaultSuffix = ".template"

// Opts contains template processing options.
type Opts struct {
	// Vars is a substitution map used for placeholders.
	Vars map[string]string
	// Suffix is a suffix of template files.
	Suffix string
	// Check disables writing of formatted templates.
	Check bool
	// ColorDiff enables colored diffs in the log.
	ColorDiff bool
}

// Reformatter formats templates.
type Reformatter struct {
	opts     Opts
	engine   templates.TemplateEngine
	registry *formatter.Registry
	chain    []step
}

// NewReformatter creates a template reformatter using formatters of the registry.
func NewReformatter(registry *formatter.Registry, opts Opts) *Reformatter {
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	if opts.Vars == nil {
		opts.Vars = DefaultVars()
	}
	return &Reformatter{
		opts:     opts,
		engine:   templates.NewDefaultEngine(),
		registry: registry,
		chain: []step{
			substitute{},
			selectFormatter{},
			format{},
			patchOriginal{},
			checkPlaceholders{},
			detectChange{},
		},
	}
}

// Process formats the original text of the template at path. Formatter and
// substitution errors are returned, all other results are reported as an outcome.
func (r *Reformatter) Process(path, original string) (Outcome, error) {
	ctx := fileCtx{Path: path, Original: original}
	for _, step := range r.chain {
		err := step.Run(r, &ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrFormatterNotFound):
			log.Infof("Could not find formatter for %s", path)
			return Outcome{Status: Skipped, Reason: ErrFormatterNotFound.Error()}, nil
		case errors.Is(err, ErrBadPatch), errors.Is(err, ErrPlaceholdersChanged):
			log.Warnf("Patches did not apply correctly for %s: %s", path, err)
			return Outcome{Status: Rejected, Reason: err.Error()}, nil
		default:
			return Outcome{}, fmt.Errorf("failed to format %s: %w", path, err)
		}
	}

	if !ctx.Changed {
		log.Infof("No changes needed for %s", path)
		return Outcome{Status: Unchanged}, nil
	}

	diff, err := UnifiedDiff(path, ctx.Original, ctx.Result, r.opts.ColorDiff)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to diff %s: %w", path, err)
	}
	if r.opts.Check {
		log.Warnf("Would change %s:\n%s", path, diff)
	} else {
		log.Warnf("Changing %s:\n%s", path, diff)
	}
	return Outcome{Status: Rewritten, Text: ctx.Result, Diff: diff}, nil
}

// ProcessFile formats the template file. A rewritten template replaces the file
// content atomically unless the reformatter is in check mode.
func (r *Reformatter) ProcessFile(path string) (Outcome, error) {
	original, err := util.GetFileContent(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	outcome, err := r.Process(path, original)
	if err != nil {
		return outcome, err
	}
	if outcome.Status == Rewritten && !r.opts.Check {
		if err := util.ReplaceFileContent(path, []byte(outcome.Text)); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}
