package formatter

import (
	"fmt"

	"github.com/jaustinpage/tmplfmt/cli/util"
)

// External is a formatter running an external command, for example `black -q -`.
type External struct {
	command []string
	workDir string
}

// NewExternal creates an external command formatter. The command must read the text
// from stdin and print the formatted text to stdout.
func NewExternal(command []string, workDir string) *External {
	return &External{command: command, workDir: workDir}
}

// Format pipes text through the command.
func (e *External) Format(text string) (string, error) {
	if len(e.command) == 0 {
		return "", fmt.Errorf("external formatter command is empty")
	}
	out, err := util.ExecuteFilter(e.command[0], e.workDir, []byte(text), e.command[1:]...)
	if err != nil {
		return "", fmt.Errorf("external formatter failed: %w", err)
	}
	return string(out), nil
}
