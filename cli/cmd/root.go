package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/jaustinpage/tmplfmt/cli/cmdcontext"
	"github.com/jaustinpage/tmplfmt/cli/config"
	"github.com/jaustinpage/tmplfmt/cli/configure"
	"github.com/jaustinpage/tmplfmt/cli/runlog"
	"github.com/jaustinpage/tmplfmt/cli/util"
	"github.com/spf13/cobra"
)

var (
	cmdCtx  cmdcontext.CmdCtx
	cliOpts *config.CliOpts
	rootCmd *cobra.Command
	// fileLogger is a run log, nil if it is disabled.
	fileLogger *runlog.Logger
)

// NewCmdRoot creates a new root command.
func NewCmdRoot() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmplfmt",
		Short: "Template pre-formatter",
		Long: "Formats templates without breaking their placeholders. Placeholders are " +
			"substituted, the text is formatted and the formatting changes are " +
			"patched back onto the template.",
		Example: `$ tmplfmt format
  $ tmplfmt format --check --var name=demo src
  $ tmplfmt sort src/docs/whitelist.txt`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := InitRoot(); err != nil {
				log.Fatalf(err.Error())
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeRunLog()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cmdCtx.Cli.ConfigPath, "cfg", "c",
		"", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&cmdCtx.Cli.Verbose, "verbose", "V",
		false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&cmdCtx.Cli.LogFile, "log-file",
		"", "Write the run log to the file")

	rootCmd.AddCommand(
		NewVersionCmd(),
		NewCompletionCmd(),
		NewFormatCmd(),
		NewSortCmd(),
		NewCfgCmd(),
	)

	rootCmd.InitDefaultHelpCmd()

	log.SetHandler(cli.Default)

	return rootCmd
}

// Execute root command.
func Execute() {
	rootCmd = NewCmdRoot()
	util.OnExit(closeRunLog)
	if err := rootCmd.Execute(); err != nil {
		closeRunLog()
		log.Fatalf(err.Error())
	}
}

// InitRoot configures tmplfmt, loads the configuration and sets up the run log.
func InitRoot() error {
	if err := configure.Cli(&cmdCtx); err != nil {
		return fmt.Errorf("failed to configure tmplfmt: %s", err)
	}

	configPath := cmdCtx.Cli.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(cmdCtx.Cli.ConfigDir, configure.ConfigName)
	}
	var err error
	if cliOpts, _, err = configure.GetCliOpts(configPath); err != nil {
		return fmt.Errorf("failed to get tmplfmt configuration: %s", err)
	}

	return setupRunLog()
}

// setupRunLog adds the file handler if the run log is enabled by a flag or by the
// configuration.
func setupRunLog() error {
	logFile := cmdCtx.Cli.LogFile
	if logFile == "" {
		logFile = cliOpts.Log.File
	}
	if logFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %s", err)
	}

	fileLogger = runlog.NewLogger(runlog.LoggerOpts{
		Filename:   logFile,
		MaxSize:    cliOpts.Log.MaxSize,
		MaxBackups: cliOpts.Log.MaxBackups,
		MaxAge:     cliOpts.Log.MaxAge,
	})
	log.SetHandler(runlog.Handler(cli.Default, fileLogger))
	log.Debugf("Run log: %s", logFile)
	return nil
}

func closeRunLog() {
	if fileLogger == nil {
		return
	}
	if err := fileLogger.Close(); err != nil {
		log.Warnf("Failed to close the run log: %s", err)
	}
	fileLogger = nil
	log.SetHandler(cli.Default)
}
