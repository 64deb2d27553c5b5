package cmd

import (
	"os"

	"github.com/jaustinpage/tmplfmt/cli/cfg"
	"github.com/jaustinpage/tmplfmt/cli/cmdcontext"
	"github.com/spf13/cobra"
)

var cfgDumpCtx cfg.DumpCtx

// NewCfgCmd creates the cfg command group. It inspects the tmplfmt.yaml in effect.
func NewCfgCmd() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "cfg <command>",
		Short: "Inspect tmplfmt configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the configuration with defaults applied",
		Long: "Print the tmplfmt configuration in effect. Defaults are filled in and " +
			"paths are resolved against the configuration file directory.",
		Example: `$ tmplfmt cfg dump
  $ tmplfmt -c tmplfmt.yaml cfg dump --raw`,
		Args: cobra.NoArgs,
		Run:  RunModuleFunc(internalCfgDumpModule),
	}
	dumpCmd.Flags().BoolVarP(&cfgDumpCtx.RawDump, "raw", "r", false,
		"Print the configuration file as written")

	cfgCmd.AddCommand(dumpCmd)
	return cfgCmd
}

// internalCfgDumpModule prints the configuration to stdout.
func internalCfgDumpModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	return cfg.RunDump(os.Stdout, cmdCtx, &cfgDumpCtx, cliOpts)
}
