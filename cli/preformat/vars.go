package preformat

import (
	"fmt"
	"maps"
	"os"
	"regexp"
	"strings"

	"github.com/apex/log"
	"github.com/jaustinpage/tmplfmt/cli/util"
)

const varFormatError = `wrong variable definition format: %s
Format: var-name=value`

var varDefinitionRe = regexp.MustCompile(`(?s)^(?P<name>[^=]+)=(?P<value>.*)$`)

// defaultVars are substitution values of the scaffolding extension templates.
var defaultVars = map[string]string{
	"distribution": "myproject",
	"name":         "myproject",
	"package":      "myproject",
	"author":       "Austin Page",
	"email":        "jaustinpage@gmail.com",
	"license":      "MIT",
	"description":  "A description",
	"version":      "0.0.1",
	"qual_pkg":     "my.ns.myproject",
}

// DefaultVars returns a copy of the default substitution map.
func DefaultVars() map[string]string {
	return maps.Clone(defaultVars)
}

// parseVarDefinition parses a `name=value` definition. The value may be empty.
func parseVarDefinition(definition string) (string, string, error) {
	definition = strings.TrimSpace(definition)
	matches := util.FindNamedMatches(varDefinitionRe, definition)
	name := strings.TrimSpace(matches["name"])
	if name == "" {
		return "", "", fmt.Errorf(varFormatError, definition)
	}
	return name, matches["value"], nil
}

// SetVarsFromCli sets variables passed as `name=value` definitions.
func SetVarsFromCli(vars map[string]string, definitions []string) error {
	for _, definition := range definitions {
		name, value, err := parseVarDefinition(definition)
		if err != nil {
			return err
		}
		log.Debugf("Setting var from CLI: %s = %s", name, value)
		vars[name] = value
	}
	return nil
}

// LoadVarsFile sets variables from a file of `name=value` lines. Empty lines and
// lines starting with # are ignored.
func LoadVarsFile(vars map[string]string, path string) error {
	varsFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("vars file loading error: %w", err)
	}
	defer varsFile.Close()

	scanner := util.FileLinesScanner(varsFile)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, err := parseVarDefinition(line)
		if err != nil {
			return fmt.Errorf("failed to load vars from %s: %w", path, err)
		}
		log.Debugf("Setting var from vars file: %s = %s", name, value)
		vars[name] = value
	}
	return scanner.Err()
}
