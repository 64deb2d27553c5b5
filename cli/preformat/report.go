package preformat

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// FileResult is an outcome of a single file.
type FileResult struct {
	Path    string
	Outcome Outcome
}

// Report contains outcomes of a run in processing order.
type Report struct {
	Results []FileResult
}

// Add appends the file outcome.
func (r *Report) Add(path string, outcome Outcome) {
	r.Results = append(r.Results, FileResult{Path: path, Outcome: outcome})
}

// Count returns the number of files with the status.
func (r *Report) Count(status Status) int {
	count := 0
	for _, result := range r.Results {
		if result.Outcome.Status == status {
			count++
		}
	}
	return count
}

// Failed returns true if a template was rejected. In check mode a template which
// needs formatting is a failure too.
func (r *Report) Failed(check bool) bool {
	return r.Count(Rejected) > 0 || check && r.Count(Rewritten) > 0
}

// Summary returns counters of all statuses in one line.
func (r *Report) Summary() string {
	summary := fmt.Sprintf("%d files", len(r.Results))
	for _, status := range Statuses {
		summary += fmt.Sprintf(", %d %s", r.Count(status), status)
	}
	return summary
}

// Print writes the report as a table.
func (r *Report) Print(w io.Writer, colored bool) {
	ts := table.NewWriter()
	ts.SetOutputMirror(w)
	ts.AppendHeader(table.Row{"FILE", "STATUS", "DETAILS"})
	for _, result := range r.Results {
		status := result.Outcome.Status.String()
		if colored {
			status = result.Outcome.Status.ColorSprint()
		}
		ts.AppendRow(table.Row{result.Path, status, result.Outcome.Reason})
	}
	ts.AppendFooter(table.Row{"", "", r.Summary()})
	ts.Style().Options.DrawBorder = false
	ts.Style().Options.SeparateColumns = false
	ts.Style().Options.SeparateHeader = false
	ts.Style().Options.SeparateFooter = false
	ts.Style().Format.Footer = text.FormatDefault
	ts.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	ts.Render()
}
