package configure

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/apex/log"
	"github.com/jaustinpage/tmplfmt/cli/cmdcontext"
	"github.com/jaustinpage/tmplfmt/cli/config"
	"github.com/jaustinpage/tmplfmt/cli/formatter"
	"github.com/jaustinpage/tmplfmt/cli/preformat"
	"github.com/jaustinpage/tmplfmt/cli/util"
	"github.com/mitchellh/mapstructure"
)

const (
	// ConfigName is a name of the tmplfmt configuration file.
	ConfigName = "tmplfmt.yaml"
	// configSection is a name of the top level configuration section.
	configSection = "tmplfmt"
	// DefaultSource is a default directory searched for templates.
	DefaultSource = "src"
)

const (
	defaultLogMaxSize    = 10
	defaultLogMaxAge     = 7
	defaultLogMaxBackups = 3
)

// GetDefaultCliOpts returns `CliOpts` filled with default values.
func GetDefaultCliOpts() *config.CliOpts {
	return &config.CliOpts{
		Source: DefaultSource,
		Suffix: preformat.DefaultSuffix,
		Vars:   preformat.DefaultVars(),
		Markdown: &config.MarkdownOpts{
			Wrap: formatter.DefaultMarkdownWrap,
		},
		Python: &config.PythonOpts{
			LineLength:          formatter.DefaultLineLength,
			StringNormalization: true,
		},
		Log: &config.LogOpts{
			MaxSize:    defaultLogMaxSize,
			MaxAge:     defaultLogMaxAge,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}

// defaultKnownFirstParty returns the qualified package of the project and its
// skeleton module.
func defaultKnownFirstParty(vars map[string]string) config.StringOrList {
	qualPkg, found := vars["qual_pkg"]
	if !found || qualPkg == "" {
		return config.StringOrList{}
	}
	return config.StringOrList{qualPkg, qualPkg + ".skeleton"}
}

// adjustPathWithConfigLocation adjust provided filePath with configDir.
// Absolute filePath is returned as is. Relative filePath is calculated relative to configDir.
// Empty filePath stays empty.
func adjustPathWithConfigLocation(filePath, configDir string) (string, error) {
	if filePath == "" || filepath.IsAbs(filePath) {
		return filePath, nil
	}
	return filepath.Abs(filepath.Join(configDir, filePath))
}

// updateCliOpts resolves all paths in config relative to specified location, and
// sets uninitialized values to defaults.
func updateCliOpts(cliOpts *config.CliOpts, configDir string) error {
	defaults := GetDefaultCliOpts()
	if cliOpts.Source == "" {
		cliOpts.Source = defaults.Source
	}
	if cliOpts.Suffix == "" {
		cliOpts.Suffix = defaults.Suffix
	}
	if cliOpts.Vars == nil {
		cliOpts.Vars = defaults.Vars
	}
	if cliOpts.Markdown == nil {
		cliOpts.Markdown = defaults.Markdown
	}
	if cliOpts.Python == nil {
		cliOpts.Python = defaults.Python
	}
	if cliOpts.Log == nil {
		cliOpts.Log = defaults.Log
	}
	if cliOpts.Python.KnownFirstParty == nil {
		cliOpts.Python.KnownFirstParty = defaultKnownFirstParty(cliOpts.Vars)
	}

	var err error
	for _, path := range []*string{&cliOpts.Source, &cliOpts.Log.File} {
		if *path, err = adjustPathWithConfigLocation(*path, configDir); err != nil {
			return err
		}
	}
	return nil
}

func decodeStringAsListField(from, to reflect.Type, value interface{}) (
	interface{}, error,
) {
	if to != reflect.TypeOf(config.StringOrList{}) || from.Kind() != reflect.String {
		return value, nil
	}
	return []string{value.(string)}, nil
}

func decodeConfig(input map[string]any, cfg *config.Config) error {
	// Weak typing lets numeric vars like `version: 1.0` decode into strings.
	decoderConfig := mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(decodeStringAsListField),
	}
	decoder, err := mapstructure.NewDecoder(&decoderConfig)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// GetCliOpts returns tmplfmt options from the config file located at path
// configurePath. Defaults are returned if the file does not exist. Relative paths
// of the config are resolved against the config directory, or against the current
// directory if there is no config.
func GetCliOpts(configurePath string) (*config.CliOpts, string, error) {
	cfg := config.Config{CliConfig: GetDefaultCliOpts()}
	configPath, err := util.GetYamlFileName(configurePath, true)
	if err == nil {
		if configPath, err = filepath.Abs(configPath); err != nil {
			return nil, "", fmt.Errorf("cannot determine config file path: %s", err)
		}
		rawConfigOpts, err := util.ParseYAML(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse tmplfmt configuration: %s", err)
		}
		if _, found := rawConfigOpts[configSection]; !found {
			return nil, "", fmt.Errorf(
				"failed to parse tmplfmt configuration: missing %s section", configSection)
		}
		if err := decodeConfig(rawConfigOpts, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse tmplfmt configuration: %s", err)
		}
		log.Debugf("Configuration loaded from %s", configPath)
	} else if !os.IsNotExist(err) {
		return nil, "", fmt.Errorf("failed to get access to configuration file: %s", err)
	} else {
		configPath = ""
	}

	configDir := ""
	if configPath == "" {
		if configDir, err = os.Getwd(); err != nil {
			return cfg.CliConfig, configPath, err
		}
	} else {
		configDir = filepath.Dir(configPath)
	}

	if err = updateCliOpts(cfg.CliConfig, configDir); err != nil {
		return cfg.CliConfig, "", err
	}
	return cfg.CliConfig, configPath, nil
}

// FormatterOpts converts configuration options into formatter options. External
// commands are started in workDir and must be found in PATH.
func FormatterOpts(cliOpts *config.CliOpts, workDir string) (formatter.Opts, error) {
	opts := formatter.DefaultOpts()
	opts.WorkDir = workDir
	if cliOpts.Markdown != nil {
		opts.Markdown.Wrap = cliOpts.Markdown.Wrap
	}
	if cliOpts.Python != nil {
		opts.Python.LineLength = cliOpts.Python.LineLength
		opts.Python.StringNormalization = cliOpts.Python.StringNormalization
		opts.Python.KnownFirstParty = cliOpts.Python.KnownFirstParty
	}
	for name, override := range cliOpts.Formatters {
		kind, found := formatter.ParseKind(name)
		if !found {
			return opts, fmt.Errorf("unknown formatter %q in configuration", name)
		}
		if len(override.Command) > 0 {
			if err := util.CheckRequiredBinaries(override.Command[0]); err != nil {
				return opts, fmt.Errorf("%s formatter: %s", kind, err)
			}
		}
		if opts.Commands == nil {
			opts.Commands = map[formatter.Kind][]string{}
		}
		opts.Commands[kind] = override.Command
	}
	return opts, nil
}

// Cli performs initial CLI configuration.
func Cli(cmdCtx *cmdcontext.CmdCtx) error {
	if cmdCtx.Cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if cmdCtx.Cli.ConfigPath != "" {
		if _, err := os.Stat(cmdCtx.Cli.ConfigPath); err != nil {
			return fmt.Errorf("specified path to the configuration file is invalid: %s", err)
		}
	} else {
		// Look for the config in the current directory, going down to root directory.
		var err error
		if cmdCtx.Cli.ConfigPath, err = getConfigPath(ConfigName); err != nil {
			return fmt.Errorf("failed to get tmplfmt config: %s", err)
		}
	}

	if cmdCtx.Cli.ConfigPath != "" {
		configDir, err := filepath.Abs(filepath.Dir(cmdCtx.Cli.ConfigPath))
		if err != nil {
			return err
		}
		cmdCtx.Cli.ConfigDir = configDir
	} else {
		configDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to detect current directory: %s", err)
		}
		cmdCtx.Cli.ConfigDir = configDir
	}
	return nil
}

// getConfigPath looks for the path to the tmplfmt.yaml configuration file,
// looking through all directories from the current one to the root.
func getConfigPath(configName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to detect current directory: %s", err)
	}

	for {
		configPath, err := util.GetYamlFileName(filepath.Join(curDir, configName), true)
		if err == nil {
			return configPath, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(curDir)
		if parent == curDir {
			break
		}
		curDir = parent
	}

	return "", nil
}
