package preformat

import (
	"errors"

	"github.com/fatih/color"
)

var (
	// ErrFormatterNotFound is reported for files of a type without a formatter.
	ErrFormatterNotFound = errors.New("no formatter found")
	// ErrBadPatch is reported when formatting changes can not be applied to the
	// original template.
	ErrBadPatch = errors.New("bad patch")
	// ErrPlaceholdersChanged is reported when patching the original template
	// adds, removes or breaks placeholders.
	ErrPlaceholdersChanged = errors.New("placeholders changed")
)

// Status is a result kind of a template processing.
type Status int

const (
	// Unchanged means the template is already formatted.
	Unchanged Status = iota
	// Rewritten means the template formatting was updated.
	Rewritten
	// Skipped means there is no formatter for the template.
	Skipped
	// Rejected means formatting changes could not be safely applied.
	Rejected
)

const (
	unchangedStr = "unchanged"
	rewrittenStr = "rewritten"
	skippedStr   = "skipped"
	rejectedStr  = "rejected"
)

// Statuses lists all statuses in the report order.
var Statuses = []Status{Unchanged, Rewritten, Skipped, Rejected}

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case Unchanged:
		return unchangedStr
	case Rewritten:
		return rewrittenStr
	case Skipped:
		return skippedStr
	case Rejected:
		return rejectedStr
	default:
		panic("Unknown status")
	}
}

// ColorSprint returns the status string colored for a terminal.
func (s Status) ColorSprint() string {
	switch s {
	case Rewritten:
		return color.YellowString(s.String())
	case Rejected:
		return color.RedString(s.String())
	case Unchanged:
		return color.GreenString(s.String())
	default:
		return s.String()
	}
}

// Outcome is a result of a template processing.
type Outcome struct {
	Status Status
	// Text is the formatted original template. It is set for rewritten templates.
	Text string
	// Reason describes why the template was skipped or rejected.
	Reason string
	// Diff is a unified diff of the template changes.
	Diff string
}
