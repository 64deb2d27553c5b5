package util

import (
	"fmt"
	"os"

	"github.com/moby/sys/atomicwriter"
)

// ReplaceFileContent replaces the content of an existing regular file. The new content
// is written to a temporary file which is then renamed over filePath, so readers see
// either the old or the new content. The file mode is preserved.
func ReplaceFileContent(filePath string, content []byte) error {
	stat, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error getting file info %s: %w", filePath, err)
	}
	if err := atomicwriter.WriteFile(filePath, content, stat.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	return nil
}
