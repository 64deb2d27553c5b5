package cmd

import (
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/apex/log"
	"github.com/jaustinpage/tmplfmt/cli/cmdcontext"
	"github.com/jaustinpage/tmplfmt/cli/config"
	"github.com/jaustinpage/tmplfmt/cli/configure"
	"github.com/jaustinpage/tmplfmt/cli/formatter"
	"github.com/jaustinpage/tmplfmt/cli/preformat"
	"github.com/jaustinpage/tmplfmt/cli/util"
	"github.com/spf13/cobra"
)

// formatFlags contains format command flags. Zero values keep the configured
// options.
type formatFlags struct {
	check      bool
	vars       []string
	varsFile   string
	suffix     string
	wrap       int
	lineLength int
}

var formatCmdFlags formatFlags

// NewFormatCmd creates a new format command.
func NewFormatCmd() *cobra.Command {
	formatCmd := &cobra.Command{
		Use:   "format [PATH]",
		Short: "Format templates",
		Long: "Format all templates under PATH. PATH is a directory or a single " +
			"template, the configured source directory is used by default.",
		Example: `$ tmplfmt format
  $ tmplfmt format --check src
  $ tmplfmt format --var name=demo --vars-file vars.txt src/README.md.template`,
		Args: cobra.MaximumNArgs(1),
		Run:  RunModuleFunc(internalFormatModule),
	}

	formatCmd.Flags().BoolVar(&formatCmdFlags.check, "check", false,
		"Do not write templates, fail if any template would change")
	formatCmd.Flags().StringArrayVar(&formatCmdFlags.vars, "var", nil,
		"Set a substitution variable: name=value")
	formatCmd.Flags().StringVar(&formatCmdFlags.varsFile, "vars-file", "",
		"File with substitution variables, one name=value per line")
	formatCmd.Flags().StringVar(&formatCmdFlags.suffix, "suffix", "",
		"Template file name suffix")
	formatCmd.Flags().IntVar(&formatCmdFlags.wrap, "wrap", 0,
		"Markdown paragraph width")
	formatCmd.Flags().IntVar(&formatCmdFlags.lineLength, "line-length", 0,
		"Python line length")

	return formatCmd
}

// internalFormatModule is a default format module.
func internalFormatModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	root := cliOpts.Source
	if len(args) > 0 {
		root = args[0]
	}
	return runFormat(os.Stdout, util.ColorEnabled(os.Stdout), cmdCtx, cliOpts,
		formatCmdFlags, root)
}

// newReformatter creates a reformatter configured by the options and the command
// line flags.
func newReformatter(cmdCtx *cmdcontext.CmdCtx, cliOpts *config.CliOpts,
	flags formatFlags, colored bool) (*preformat.Reformatter, error) {
	formatterOpts, err := configure.FormatterOpts(cliOpts, cmdCtx.Cli.ConfigDir)
	if err != nil {
		return nil, err
	}
	if flags.wrap > 0 {
		formatterOpts.Markdown.Wrap = flags.wrap
	}
	if flags.lineLength > 0 {
		formatterOpts.Python.LineLength = flags.lineLength
	}

	vars := maps.Clone(cliOpts.Vars)
	if vars == nil {
		vars = preformat.DefaultVars()
	}
	if flags.varsFile != "" {
		if err := preformat.LoadVarsFile(vars, flags.varsFile); err != nil {
			return nil, err
		}
	}
	if err := preformat.SetVarsFromCli(vars, flags.vars); err != nil {
		return nil, util.NewArgError(err.Error())
	}

	suffix := cliOpts.Suffix
	if flags.suffix != "" {
		suffix = flags.suffix
	}

	return preformat.NewReformatter(formatter.NewRegistry(formatterOpts), preformat.Opts{
		Vars:      vars,
		Suffix:    suffix,
		Check:     flags.check,
		ColorDiff: colored,
	}), nil
}

// runFormat formats templates under root and prints the report. util.ErrCmdAbort
// is returned if a template was rejected, or would change in check mode.
func runFormat(w io.Writer, colored bool, cmdCtx *cmdcontext.CmdCtx,
	cliOpts *config.CliOpts, flags formatFlags, root string) error {
	reformatter, err := newReformatter(cmdCtx, cliOpts, flags, colored)
	if err != nil {
		return err
	}

	log.Debugf("Formatting templates in %s", root)
	report, err := reformatter.Run(root)
	if report != nil && len(report.Results) > 0 {
		if colored {
			fmt.Fprintln(w, util.Bold("Templates in "+root))
		}
		report.Print(w, colored)
	}
	if err != nil {
		return err
	}

	if report.Failed(flags.check) {
		log.Errorf("Formatting failed: %s", report.Summary())
		return util.ErrCmdAbort
	}
	log.Infof("Done: %s", report.Summary())
	return nil
}
