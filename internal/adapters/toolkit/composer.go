// Package toolkit composes native library packages into one merged view.
package toolkit

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"github.com/kilnhq/kiln/internal/paths"
	"go.trai.ch/zerr"
)

var _ ports.ToolkitComposer = (*Composer)(nil)

// defaultMetadataDirs are package-manager provenance directories stripped
// from every composed bundle. Left in place they would advertise the merged
// bundle as one of its input packages to any tool that introspects it.
var defaultMetadataDirs = []string{"nix-support", ".pkg-meta"}

// Composer merges an ordered list of native packages into a fresh root.
// Files are brought in as hard links so the view stays in sync with the
// underlying packages without duplicating payloads; a copy is the fallback
// when linking is not possible. Inputs are never mutated.
type Composer struct{}

// NewComposer creates a new Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose overlays the packages into dest in list order. Where a later
// package's relative path collides with an earlier one's, the later package
// wins; the caller's ordering is the tie-break, never an inference made
// here. After the overlay, metadata directories are deleted from the merged
// view.
func (c *Composer) Compose(ctx context.Context, packages []domain.NativePackage, dest string, metadataDirs []string) (*domain.Toolkit, error) {
	if err := os.MkdirAll(dest, paths.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create merged root"), "dest", dest)
	}

	for _, pkg := range packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := overlay(pkg, dest); err != nil {
			return nil, err
		}
	}

	strip := metadataDirs
	if strip == nil {
		strip = defaultMetadataDirs
	}
	if err := stripMetadata(dest, strip); err != nil {
		return nil, err
	}

	return &domain.Toolkit{Root: dest, Packages: packages}, nil
}

// overlay links one package tree into the merged root, shadowing existing
// paths (last writer wins).
func overlay(pkg domain.NativePackage, dest string) error {
	err := filepath.WalkDir(pkg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk package tree"), "package", pkg.Name)
		}

		rel, err := filepath.Rel(pkg.Root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			// An earlier package may have put a file where this package has
			// a directory; the later package shadows it.
			if info, statErr := os.Lstat(target); statErr == nil && !info.IsDir() {
				if rmErr := os.Remove(target); rmErr != nil {
					return zerr.With(zerr.Wrap(rmErr, "failed to shadow path"), "path", target)
				}
			}
			return os.MkdirAll(target, paths.DirPerm)
		}

		if _, statErr := os.Lstat(target); statErr == nil {
			if rmErr := os.RemoveAll(target); rmErr != nil {
				return zerr.With(zerr.Wrap(rmErr, "failed to shadow path"), "path", target)
			}
		}

		if d.Type()&os.ModeSymlink != 0 {
			linkTarget, readErr := os.Readlink(path)
			if readErr != nil {
				return zerr.With(zerr.Wrap(readErr, "failed to read symlink"), "path", path)
			}
			return os.Symlink(linkTarget, target)
		}

		if linkErr := os.Link(path, target); linkErr != nil {
			return copyFallback(path, target)
		}
		return nil
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to overlay package"), "package", pkg.Spec())
	}
	return nil
}

// copyFallback copies a file when hard linking fails (e.g. across devices).
func copyFallback(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // path comes from the walked package tree
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // read-only close

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // dest is under the merged root
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// stripMetadata deletes metadata directories anywhere in the merged view.
func stripMetadata(root string, names []string) error {
	var doomed []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && slices.Contains(names, d.Name()) {
			doomed = append(doomed, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return zerr.Wrap(err, "failed to scan merged view for metadata")
	}

	for _, dir := range doomed {
		if err := os.RemoveAll(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to strip metadata directory"), "path", dir)
		}
	}
	return nil
}
