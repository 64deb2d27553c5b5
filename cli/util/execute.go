package util

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/apex/log"
)

// ExecuteFilter runs program with args, writes stdinData to its standard input and
// returns everything the program printed to its standard output. Standard error is
// included in the returned error if the program fails.
func ExecuteFilter(program string, workDir string, stdinData []byte,
	args ...string,
) ([]byte, error) {
	cmd := exec.Command(program, args...)
	log.Debugf("Run: %s", cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(stdinData)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = workDir

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%q failed: %w: %s", program, err, msg)
		}
		return nil, fmt.Errorf("%q failed: %w", program, err)
	}

	return stdout.Bytes(), nil
}

// CheckRequiredBinaries returns an error if some binaries not found in PATH
func CheckRequiredBinaries(binaries ...string) error {
	missedBinaries := []string{}
	for _, binary := range binaries {
		if _, err := exec.LookPath(binary); err != nil {
			missedBinaries = append(missedBinaries, binary)
		}
	}

	if len(missedBinaries) > 0 {
		return fmt.Errorf("missed required binaries %s", strings.Join(missedBinaries, ", "))
	}

	return nil
}
