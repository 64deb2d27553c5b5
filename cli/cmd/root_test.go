package cmd

import (
	"testing"

	"github.com/jaustinpage/tmplfmt/cli/cmdcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFlags(t *testing.T) {
	t.Cleanup(func() { cmdCtx = cmdcontext.CmdCtx{} })
	rootCmd = NewCmdRoot()
	require.NoError(t, rootCmd.ParseFlags([]string{"-c", "one.yaml", "-V", "--log-file", "run.log"}))
	assert.Equal(t, "one.yaml", cmdCtx.Cli.ConfigPath)
	assert.True(t, cmdCtx.Cli.Verbose)
	assert.Equal(t, "run.log", cmdCtx.Cli.LogFile)
}

func TestRootCommands(t *testing.T) {
	rootCmd = NewCmdRoot()
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Subset(t, names, []string{"cfg", "completion", "format", "sort", "version"})

	dumpCmd, _, err := rootCmd.Find([]string{"cfg", "dump"})
	require.NoError(t, err)
	assert.Equal(t, "dump", dumpCmd.Name())

	t.Cleanup(func() { cfgDumpCtx.RawDump = false })
	require.NoError(t, dumpCmd.ParseFlags([]string{"--raw"}))
	assert.True(t, cfgDumpCtx.RawDump)
}
