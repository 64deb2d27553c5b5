package cmdcontext

// CmdCtx is the main structure of the program context.
// Contains within itself other structures of CLI modules.
type CmdCtx struct {
	// Cli - CLI context. Contains flags passed when starting
	// tmplfmt and some other parameters.
	Cli CliCtx
	// CommandName contains name of the command.
	CommandName string
}

// CliCtx - CLI context. Contains flags passed when starting
// tmplfmt and some other parameters.
type CliCtx struct {
	// Path to tmplfmt (tmplfmt.yaml) config.
	ConfigPath string
	// ConfigDir is tmplfmt configuration file directory.
	// And current working directory, if there is no config.
	ConfigDir string
	// LogFile is a path to the run log file set in the command line.
	LogFile string
	// Verbose logging flag. Enables debug log output.
	Verbose bool
}
