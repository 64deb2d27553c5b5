package preformat

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// isTemplate checks the file name has the template suffix.
func (r *Reformatter) isTemplate(name string) bool {
	return len(name) > len(r.opts.Suffix) && strings.HasSuffix(name, r.opts.Suffix)
}

// Templates returns paths of all template files under root in lexical order. Root
// may be a template file itself.
func (r *Reformatter) Templates(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.Type().IsRegular() && r.isTemplate(entry.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search templates in %s: %w", root, err)
	}
	return paths, nil
}

// Run formats all templates under root. Processing stops on the first error, the
// report contains the files processed before it.
func (r *Reformatter) Run(root string) (*Report, error) {
	paths, err := r.Templates(root)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, path := range paths {
		outcome, err := r.ProcessFile(path)
		if err != nil {
			return report, err
		}
		report.Add(path, outcome)
	}
	return report, nil
}
