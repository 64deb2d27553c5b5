package cmd

import (
	"github.com/jaustinpage/tmplfmt/cli/cmdcontext"
	"github.com/jaustinpage/tmplfmt/cli/util"
	"github.com/spf13/cobra"
)

// internalModule is a command implementation.
type internalModule func(cmdCtx *cmdcontext.CmdCtx, args []string) error

// RunModuleFunc returns a cobra Run function calling the module and handling
// its error.
func RunModuleFunc(module internalModule) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		cmdCtx.CommandName = cmd.Name()
		err := module(&cmdCtx, args)
		util.HandleCmdErr(cmd, err)
	}
}
