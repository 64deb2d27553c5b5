package cmd

import (
	"fmt"

	"github.com/apex/log"
	"github.com/jaustinpage/tmplfmt/cli/cmdcontext"
	"github.com/jaustinpage/tmplfmt/cli/formatter"
	"github.com/jaustinpage/tmplfmt/cli/util"
	"github.com/spf13/cobra"
)

var sortCheck bool

// NewSortCmd creates a new sort command.
func NewSortCmd() *cobra.Command {
	sortCmd := &cobra.Command{
		Use:   "sort FILE...",
		Short: "Sort lines of files case-insensitively",
		Example: `$ tmplfmt sort docs/whitelist.txt
  $ tmplfmt sort --check docs/whitelist.txt`,
		Args: cobra.MinimumNArgs(1),
		Run:  RunModuleFunc(internalSortModule),
	}

	sortCmd.Flags().BoolVar(&sortCheck, "check", false,
		"Do not write files, fail if any file is not sorted")

	return sortCmd
}

// internalSortModule is a default sort module.
func internalSortModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	return runSort(args, sortCheck)
}

// runSort sorts lines of the files in place. util.ErrCmdAbort is returned in check
// mode if a file is not sorted.
func runSort(paths []string, check bool) error {
	unsorted := 0
	for _, path := range paths {
		if !util.IsRegularFile(path) {
			return util.NewArgError(fmt.Sprintf("%s is not a regular file", path))
		}
		content, err := util.GetFileContent(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		sorted, err := formatter.SortLines(content)
		if err != nil {
			return fmt.Errorf("failed to sort %s: %w", path, err)
		}

		switch {
		case sorted == content:
			log.Infof("No changes needed for %s", path)
		case check:
			log.Warnf("Would sort %s", path)
			unsorted++
		default:
			if err := util.ReplaceFileContent(path, []byte(sorted)); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			log.Infof("Sorted %s", path)
		}
	}

	if unsorted > 0 {
		return util.ErrCmdAbort
	}
	return nil
}
