package store

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Local is a storage root on the local filesystem.
type Local struct {
	dir string
}

// NewLocal creates a root over the given directory.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Dir returns the root directory.
func (l *Local) Dir() string {
	return l.dir
}

// Glob implements Root.
func (l *Local) Glob(_ context.Context, epochGlob, pattern, extension string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == l.dir {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.dir, p)
		if err != nil {
			return err
		}
		if matchRel(filepath.ToSlash(rel), epochGlob, pattern, extension) {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
