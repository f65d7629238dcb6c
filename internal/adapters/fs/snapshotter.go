package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"github.com/kilnhq/kiln/internal/paths"
	"go.trai.ch/zerr"
)

var _ ports.Snapshotter = (*Snapshotter)(nil)

// Snapshotter produces filtered, deterministic source tree copies. Files are
// visited in lexical order and hashed into a single fingerprint, so an
// unchanged tree always snapshots to identical bytes and an identical
// fingerprint.
type Snapshotter struct {
	walker *Walker
}

// NewSnapshotter creates a new Snapshotter.
func NewSnapshotter(walker *Walker) *Snapshotter {
	return &Snapshotter{walker: walker}
}

// Snapshot copies the filtered tree rooted at root into dest.
func (s *Snapshotter) Snapshot(root, dest string, excludes []string) (*domain.SourceTree, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve source root"), "root", root)
	}

	if err := os.MkdirAll(dest, paths.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create snapshot root"), "dest", dest)
	}

	digest := xxhash.New()

	for src, walkErr := range s.walker.WalkFiles(absRoot, excludes) {
		if walkErr != nil {
			return nil, walkErr
		}

		rel, err := filepath.Rel(absRoot, src)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", src)
		}

		// The fingerprint binds the relative path and the content, not
		// timestamps or absolute locations.
		_, _ = digest.WriteString(filepath.ToSlash(rel))
		_, _ = digest.Write([]byte{0})

		if err := copyFile(src, filepath.Join(dest, rel), digest); err != nil {
			return nil, err
		}
	}

	return &domain.SourceTree{
		Root:        dest,
		Fingerprint: fmt.Sprintf("%016x", digest.Sum64()),
	}, nil
}

func copyFile(src, dest string, digest io.Writer) error {
	info, err := os.Lstat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dest), paths.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create snapshot directory"), "path", dest)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", src)
		}
		_, _ = digest.Write([]byte(target))
		if err := os.Symlink(target, dest); err != nil && !os.IsExist(err) {
			return zerr.With(zerr.Wrap(err, "failed to recreate symlink"), "path", dest)
		}
		return nil
	}

	in, err := os.Open(src) //nolint:gosec // path comes from the walked source tree
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // read-only close

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // dest is under our snapshot root
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create snapshot file"), "path", dest)
	}

	if _, err := io.Copy(io.MultiWriter(out, digest), in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", src)
	}

	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close snapshot file"), "path", dest)
	}
	return nil
}
