package cfg

import (
	"fmt"
	"io"
	"os"

	"github.com/jaustinpage/tmplfmt/cli/cmdcontext"
	"github.com/jaustinpage/tmplfmt/cli/config"
	"gopkg.in/yaml.v3"
)

// DumpCtx contains information for tmplfmt config dump.
type DumpCtx struct {
	// RawDump is a dump mode flag. If set, raw contents of tmplfmt configuration
	// file is printed.
	RawDump bool
}

// dumpRaw prints raw content of tmplfmt config file.
func dumpRaw(writer io.Writer, cmdCtx *cmdcontext.CmdCtx) error {
	if cmdCtx.Cli.ConfigPath == "" {
		return fmt.Errorf("tmplfmt configuration file is not found")
	}
	fileContent, err := os.ReadFile(cmdCtx.Cli.ConfigPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(writer, "%s:\n", cmdCtx.Cli.ConfigPath)
	_, err = writer.Write(fileContent)
	return err
}

// dumpConfiguration prints effective tmplfmt configuration with defaults applied
// and all paths resolved.
func dumpConfiguration(writer io.Writer, cmdCtx *cmdcontext.CmdCtx,
	cliOpts *config.CliOpts) error {
	if cmdCtx.Cli.ConfigPath != "" {
		fmt.Fprintf(writer, "%s:\n", cmdCtx.Cli.ConfigPath)
	}
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(config.Config{CliConfig: cliOpts}); err != nil {
		return err
	}
	return encoder.Close()
}

// RunDump prints tmplfmt configuration.
func RunDump(writer io.Writer, cmdCtx *cmdcontext.CmdCtx, dumpCtx *DumpCtx,
	cliOpts *config.CliOpts) error {
	if dumpCtx.RawDump {
		return dumpRaw(writer, cmdCtx)
	}
	return dumpConfiguration(writer, cmdCtx, cliOpts)
}
