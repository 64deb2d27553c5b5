package preformat_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/jaustinpage/tmplfmt/cli/formatter"
	"github.com/jaustinpage/tmplfmt/cli/preformat"
	"github.com/otiai10/copy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	skeletonTemplate = "import os\nimport sys\nclass  ${package}:\n    pass\n"
	skeletonExpected = "import os\nimport sys\n\n\nclass ${package}:\n    pass\n"
)

func newReformatter(opts preformat.Opts) *preformat.Reformatter {
	return preformat.NewReformatter(formatter.NewRegistry(formatter.DefaultOpts()), opts)
}

func captureLog(t *testing.T) *memory.Handler {
	handler := memory.New()
	log.SetHandler(handler)
	log.SetLevel(log.DebugLevel)
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })
	return handler
}

func logMessages(handler *memory.Handler, level log.Level) []string {
	var messages []string
	for _, entry := range handler.Entries {
		if entry.Level == level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}

func TestProcessPythonTemplate(t *testing.T) {
	handler := captureLog(t)
	reformatter := newReformatter(preformat.Opts{})

	outcome, err := reformatter.Process("src/skeleton.py.template", skeletonTemplate)
	require.NoError(t, err)
	assert.Equal(t, preformat.Rewritten, outcome.Status)
	assert.Equal(t, skeletonExpected, outcome.Text)
	assert.Contains(t, outcome.Diff, "-class  ${package}:")
	assert.Contains(t, outcome.Diff, "+class ${package}:")

	warnings := logMessages(handler, log.WarnLevel)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Changing src/skeleton.py.template")

	// Formatted template stays as is.
	outcome, err = reformatter.Process("src/skeleton.py.template", outcome.Text)
	require.NoError(t, err)
	assert.Equal(t, preformat.Unchanged, outcome.Status)
	assert.Empty(t, outcome.Text)
}

func TestProcessKeepsPlaceholders(t *testing.T) {
	captureLog(t)
	reformatter := newReformatter(preformat.Opts{Vars: map[string]string{"name": "demo"}})

	original := "# ${name}\n\nThis   text is   about the $name project.\n"
	outcome, err := reformatter.Process("README.md.template", original)
	require.NoError(t, err)
	require.Equal(t, preformat.Rewritten, outcome.Status)
	assert.Equal(t, "# ${name}\n\nThis text is about the $name project.\n", outcome.Text)
}

func TestProcessSkipped(t *testing.T) {
	handler := captureLog(t)
	reformatter := newReformatter(preformat.Opts{})

	outcome, err := reformatter.Process("notes.txt.template", "Notes  about ${name}.\n")
	require.NoError(t, err)
	assert.Equal(t, preformat.Skipped, outcome.Status)
	assert.Equal(t, preformat.ErrFormatterNotFound.Error(), outcome.Reason)
	assert.Equal(t, []string{"Could not find formatter for notes.txt.template"},
		logMessages(handler, log.InfoLevel))
}

func TestProcessCustomSuffix(t *testing.T) {
	captureLog(t)
	reformatter := newReformatter(preformat.Opts{Suffix: ".tmpl"})

	outcome, err := reformatter.Process("whitelist.txt.tmpl", "b\na\n")
	require.NoError(t, err)
	assert.Equal(t, preformat.Rewritten, outcome.Status)
	assert.Equal(t, "a\nb\n", outcome.Text)
}

func TestProcessPlaceholdersChanged(t *testing.T) {
	handler := captureLog(t)
	registry := formatter.NewRegistry(formatter.DefaultOpts())
	registry.Set(formatter.MarkdownKind, formatter.FormatterFunc(func(text string) (string, error) {
		return text + "see ${unknown}\n", nil
	}))
	reformatter := preformat.NewReformatter(registry, preformat.Opts{})

	outcome, err := reformatter.Process("README.md.template", "cost ${unknown} now\n")
	require.NoError(t, err)
	assert.Equal(t, preformat.Rejected, outcome.Status)
	assert.Equal(t, preformat.ErrPlaceholdersChanged.Error(), outcome.Reason)
	assert.Len(t, logMessages(handler, log.WarnLevel), 1)
}

func TestProcessChangedValue(t *testing.T) {
	handler := captureLog(t)
	registry := formatter.NewRegistry(formatter.DefaultOpts())
	registry.Set(formatter.MarkdownKind, formatter.FormatterFunc(func(text string) (string, error) {
		return strings.ReplaceAll(text, "demo", "Demo"), nil
	}))
	reformatter := preformat.NewReformatter(registry, preformat.Opts{
		Vars: map[string]string{"name": "demo"},
	})

	outcome, err := reformatter.Process("README.md.template", "# $name\n")
	require.NoError(t, err)
	assert.Equal(t, preformat.Rejected, outcome.Status)
	assert.Contains(t, outcome.Reason, preformat.ErrBadPatch.Error())
	assert.Contains(t, outcome.Reason, "$name")
	assert.Len(t, logMessages(handler, log.WarnLevel), 1)
}

func TestProcessMarkdownReflow(t *testing.T) {
	captureLog(t)
	reformatter := newReformatter(preformat.Opts{})

	original := "Some text with $name and\nmore words about ${package}.\n"
	outcome, err := reformatter.Process("README.md.template", original)
	require.NoError(t, err)
	require.Equal(t, preformat.Rewritten, outcome.Status)
	assert.Equal(t, "Some text with $name and more words about ${package}.\n", outcome.Text)

	outcome, err = reformatter.Process("README.md.template", outcome.Text)
	require.NoError(t, err)
	assert.Equal(t, preformat.Unchanged, outcome.Status)
}

func TestProcessEmptyTemplate(t *testing.T) {
	captureLog(t)
	reformatter := newReformatter(preformat.Opts{})

	outcome, err := reformatter.Process("whitelist.txt.template", "")
	require.NoError(t, err)
	assert.Equal(t, preformat.Unchanged, outcome.Status)
}

func TestProcessFormatterError(t *testing.T) {
	captureLog(t)
	registry := formatter.NewRegistry(formatter.DefaultOpts())
	registry.Set(formatter.MarkdownKind, formatter.FormatterFunc(func(text string) (string, error) {
		return "", os.ErrInvalid
	}))
	reformatter := preformat.NewReformatter(registry, preformat.Opts{})

	_, err := reformatter.Process("README.md.template", "text\n")
	require.ErrorIs(t, err, os.ErrInvalid)
	assert.ErrorContains(t, err, "failed to format README.md.template: markdown formatter failed")
}

func TestProcessFileBadPatch(t *testing.T) {
	handler := captureLog(t)
	reformatter := newReformatter(preformat.Opts{Vars: map[string]string{
		"words": "zulu\nyankee\nxray\nwhiskey\nvictor\nuniform\ntango\nsierra\nromeo\nquebec",
	}})

	path := filepath.Join(t.TempDir(), "whitelist.txt.template")
	const original = "${words}\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	outcome, err := reformatter.ProcessFile(path)
	require.NoError(t, err)
	assert.Equal(t, preformat.Rejected, outcome.Status)
	assert.NotEmpty(t, outcome.Reason)
	assert.NotEmpty(t, logMessages(handler, log.WarnLevel))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestProcessFileMissing(t *testing.T) {
	captureLog(t)
	_, err := newReformatter(preformat.Opts{}).ProcessFile(
		filepath.Join(t.TempDir(), "missing.md.template"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	captureLog(t)
	workDir := t.TempDir()
	require.NoError(t, copy.Copy("testdata/src", workDir))
	reformatter := newReformatter(preformat.Opts{})

	templates, err := reformatter.Templates(workDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(workDir, "README.md.template"),
		filepath.Join(workDir, "docs", "whitelist.txt.template"),
		filepath.Join(workDir, "notes.txt.template"),
		filepath.Join(workDir, "pkg", "skeleton.py.template"),
	}, templates)

	report, err := reformatter.Run(workDir)
	require.NoError(t, err)
	require.Len(t, report.Results, 4)
	assert.Equal(t, preformat.Unchanged, report.Results[0].Outcome.Status)
	assert.Equal(t, preformat.Rewritten, report.Results[1].Outcome.Status)
	assert.Equal(t, preformat.Skipped, report.Results[2].Outcome.Status)
	assert.Equal(t, preformat.Rewritten, report.Results[3].Outcome.Status)
	assert.False(t, report.Failed(false))
	assert.True(t, report.Failed(true))
	assert.Equal(t, "4 files, 1 unchanged, 2 rewritten, 1 skipped, 0 rejected", report.Summary())

	content, err := os.ReadFile(filepath.Join(workDir, "pkg", "skeleton.py.template"))
	require.NoError(t, err)
	assert.Equal(t, skeletonExpected, string(content))
	content, err = os.ReadFile(filepath.Join(workDir, "docs", "whitelist.txt.template"))
	require.NoError(t, err)
	assert.Equal(t, "Apple\nbanana\ncherry\n", string(content))
	content, err = os.ReadFile(filepath.Join(workDir, "LICENSE"))
	require.NoError(t, err)
	assert.Equal(t, "MIT License\n", string(content))

	// The second run finds nothing to change.
	report, err = reformatter.Run(workDir)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count(preformat.Rewritten))
	assert.Equal(t, 3, report.Count(preformat.Unchanged))
	assert.False(t, report.Failed(true))
}

func TestRunCheck(t *testing.T) {
	captureLog(t)
	workDir := t.TempDir()
	require.NoError(t, copy.Copy("testdata/src", workDir))
	reformatter := newReformatter(preformat.Opts{Check: true})

	report, err := reformatter.Run(workDir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(preformat.Rewritten))
	assert.True(t, report.Failed(true))

	content, err := os.ReadFile(filepath.Join(workDir, "pkg", "skeleton.py.template"))
	require.NoError(t, err)
	assert.Equal(t, skeletonTemplate, string(content))
}

func TestRunSingleFile(t *testing.T) {
	captureLog(t)
	workDir := t.TempDir()
	require.NoError(t, copy.Copy("testdata/src", workDir))
	reformatter := newReformatter(preformat.Opts{})

	report, err := reformatter.Run(filepath.Join(workDir, "pkg", "skeleton.py.template"))
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, preformat.Rewritten, report.Results[0].Outcome.Status)
}

func TestRunStopsOnError(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false is not found")
	}
	captureLog(t)
	workDir := t.TempDir()
	require.NoError(t, copy.Copy("testdata/src", workDir))

	opts := formatter.DefaultOpts()
	opts.Commands = map[formatter.Kind][]string{formatter.PythonKind: {"false"}}
	reformatter := preformat.NewReformatter(formatter.NewRegistry(opts), preformat.Opts{})

	report, err := reformatter.Run(workDir)
	require.Error(t, err)
	assert.Len(t, report.Results, 3)
}

func TestRunMissingRoot(t *testing.T) {
	_, err := newReformatter(preformat.Opts{}).Run(filepath.Join(t.TempDir(), "src"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReportPrint(t *testing.T) {
	var report preformat.Report
	report.Add("a.md.template", preformat.Outcome{Status: preformat.Unchanged})
	report.Add("b.txt.template", preformat.Outcome{
		Status: preformat.Skipped,
		Reason: preformat.ErrFormatterNotFound.Error(),
	})

	var out strings.Builder
	report.Print(&out, false)
	assert.Contains(t, out.String(), "FILE")
	assert.Contains(t, out.String(), "b.txt.template")
	assert.Contains(t, out.String(), "no formatter found")
	assert.Contains(t, out.String(), "2 files, 1 unchanged, 0 rewritten, 1 skipped, 0 rejected")
}
