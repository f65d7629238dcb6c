// Package fs provides filesystem adapters for snapshotting source trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/zerr"
)

// vcsDirs are version-control metadata directories, always excluded.
var vcsDirs = map[string]bool{
	".git": true,
	".jj":  true,
	".hg":  true,
	".svn": true,
}

// defaultExcludes filter previous build outputs and editor/OS artifacts.
// Matched against the base name of files and directories.
var defaultExcludes = []string{
	"target",
	"result",
	".DS_Store",
	"*.swp",
	"*~",
	"*.log",
}

// Walker walks source trees applying the snapshot exclusion filter.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all non-excluded files under root in lexical order.
// The extra patterns are applied on top of the built-in exclusions. A walk
// failure (e.g. an unreadable directory) is yielded as the final pair, so
// callers never mistake a truncated walk for a complete one.
func (w *Walker) WalkFiles(root string, extra []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}

			if w.excluded(d.Name(), extra) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", zerr.With(zerr.Wrap(err, "failed to walk source tree"), "root", root))
		}
	}
}

func (w *Walker) excluded(name string, extra []string) bool {
	if vcsDirs[name] {
		return true
	}
	for _, pattern := range defaultExcludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	for _, pattern := range extra {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
