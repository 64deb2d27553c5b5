package config

// Config used to store all information from the
// tmplfmt.yaml configuration file.
type Config struct {
	CliConfig *CliOpts `mapstructure:"tmplfmt" yaml:"tmplfmt"`
}

// CliOpts stores information about tmplfmt configuration.
// Filled in when parsing the tmplfmt.yaml configuration file.
//
// tmplfmt.yaml file format:
// tmplfmt:
//   source: path
//   suffix: string
//   vars:
//     name: value
//   markdown:
//     wrap: num
//   python:
//     line_length: num
//     string_normalization: bool
//     known_first_party: string or list
//   formatters:
//     kind:
//       command: string or list
//   log:
//     file: path
//     maxsize: num (MB)
//     maxage: num (Days)
//     maxbackups: num

// MarkdownOpts is used to store markdown formatter options.
type MarkdownOpts struct {
	// Wrap is a maximum width of reflowed paragraphs.
	Wrap int `mapstructure:"wrap" yaml:"wrap"`
}

// PythonOpts is used to store python formatter options.
type PythonOpts struct {
	// LineLength is a maximum line length.
	LineLength int `mapstructure:"line_length" yaml:"line_length"`
	// StringNormalization enables conversion of string literals to double quotes.
	StringNormalization bool `mapstructure:"string_normalization" yaml:"string_normalization"`
	// KnownFirstParty is a list of modules sorted into the first party import section.
	KnownFirstParty StringOrList `mapstructure:"known_first_party" yaml:"known_first_party"`
}

// FormatterOpts is used to override a built-in formatter.
type FormatterOpts struct {
	// Command is an external command. It reads the text from stdin and writes the
	// formatted text to stdout.
	Command StringOrList `mapstructure:"command" yaml:"command"`
}

// LogOpts is used to store run log options.
type LogOpts struct {
	// File is a path to the log file. Empty value disables the file log.
	File string `mapstructure:"file" yaml:"file"`
	// MaxSize is a maximum size in MB of the log file before
	// it gets rotated.
	MaxSize int `mapstructure:"maxsize" yaml:"maxsize"`
	// MaxAge is the maximum number of days to retain old log files.
	MaxAge int `mapstructure:"maxage" yaml:"maxage"`
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int `mapstructure:"maxbackups" yaml:"maxbackups"`
}

// CliOpts is used to store tmplfmt options.
type CliOpts struct {
	// Source is a directory searched for templates.
	Source string `mapstructure:"source" yaml:"source"`
	// Suffix is a template file name suffix.
	Suffix string `mapstructure:"suffix" yaml:"suffix"`
	// Vars is a substitution map used to render templates before formatting.
	Vars map[string]string `mapstructure:"vars" yaml:"vars"`
	// Markdown contains markdown formatter options.
	Markdown *MarkdownOpts `mapstructure:"markdown" yaml:"markdown"`
	// Python contains python formatter options.
	Python *PythonOpts `mapstructure:"python" yaml:"python"`
	// Formatters maps a formatter kind name to its override.
	Formatters map[string]FormatterOpts `mapstructure:"formatters" yaml:"formatters,omitempty"`
	// Log contains run log options.
	Log *LogOpts `mapstructure:"log" yaml:"log"`
}
