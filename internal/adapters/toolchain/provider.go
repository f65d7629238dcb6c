// Package toolchain materializes pinned toolchain bundles into a local store.
package toolchain

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"github.com/kilnhq/kiln/internal/paths"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.ToolchainProvider = (*Provider)(nil)

// allTools lists the entry points a bundle may carry under bin/. Only the
// compiler is mandatory.
var allTools = []domain.Tool{
	domain.ToolCompile,
	domain.ToolLink,
	domain.ToolFormat,
	domain.ToolLint,
}

// Provider resolves pinned toolchain bundles. The first resolution for a
// given pin and platform materializes the bundle into the local store;
// concurrent callers are collapsed onto one fetch and later callers observe
// the populated store entry without re-fetching.
type Provider struct {
	storeDir string
	fetches  singleflight.Group
}

// NewProvider creates a provider backed by the default toolchain store.
func NewProvider() *Provider {
	return NewProviderAt(paths.ToolchainsDir())
}

// NewProviderAt creates a provider backed by the store at storeDir.
func NewProviderAt(storeDir string) *Provider {
	return &Provider{storeDir: storeDir}
}

// Resolve returns the toolchain bundle for the platform.
func (p *Provider) Resolve(ctx context.Context, pin domain.ToolchainPin, platform domain.Platform) (*domain.Toolchain, error) {
	src, ok := pin.SourceFor(platform)
	if !ok {
		err := zerr.Wrap(domain.ErrToolchainUnavailable, "no bundle pinned for "+platform.String())
		return nil, zerr.With(err, "toolchain", pin.Name+"-"+pin.Version)
	}

	key := pin.Name + "-" + pin.Version + "-" + platform.String()
	root := filepath.Join(p.storeDir, key)

	_, err, _ := p.fetches.Do(key, func() (any, error) {
		return nil, p.fetch(ctx, src, root)
	})
	if err != nil {
		return nil, err
	}

	tc := &domain.Toolchain{
		Name:     pin.Name,
		Version:  pin.Version,
		Platform: platform,
		Root:     root,
		Tools:    make(map[domain.Tool]string, len(allTools)),
	}
	for _, tool := range allTools {
		entry := filepath.Join(root, "bin", string(tool))
		if _, statErr := os.Stat(entry); statErr == nil {
			tc.Tools[tool] = entry
		}
	}

	if _, ok := tc.Tools[domain.ToolCompile]; !ok {
		err := zerr.Wrap(domain.ErrToolchainUnavailable, "bundle has no compile entry point")
		err = zerr.With(err, "toolchain", tc.ID())
		return nil, zerr.With(err, "platform", platform.String())
	}

	return tc, nil
}

// fetch materializes the bundle at src into root. It stages into a sibling
// temp directory and publishes with a rename, so a populated root is always
// complete and a concurrent external invocation either wins the rename or
// observes the winner's result.
func (p *Provider) fetch(ctx context.Context, src, root string) error {
	if _, err := os.Stat(root); err == nil {
		return nil
	}

	if _, err := os.Stat(src); err != nil {
		werr := zerr.Wrap(domain.ErrToolchainUnavailable, "bundle source missing: "+err.Error())
		return zerr.With(werr, "source", src)
	}

	staging, err := os.MkdirTemp(p.storeDir, filepath.Base(root)+"-fetch-")
	if err != nil {
		if mkErr := os.MkdirAll(p.storeDir, paths.DirPerm); mkErr == nil {
			staging, err = os.MkdirTemp(p.storeDir, filepath.Base(root)+"-fetch-")
		}
		if err != nil {
			return zerr.Wrap(err, "failed to create toolchain staging directory")
		}
	}
	defer os.RemoveAll(staging) //nolint:errcheck // no-op after publish

	if err := copyTree(ctx, src, staging); err != nil {
		return err
	}

	if err := os.Rename(staging, root); err != nil {
		if _, statErr := os.Stat(root); statErr == nil {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to publish toolchain bundle"), "root", root)
	}
	return nil
}

func copyTree(ctx context.Context, src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk toolchain source"), "path", path)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, paths.DirPerm)
		}

		info, err := d.Info()
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stat toolchain file"), "path", path)
		}

		if info.Mode()&os.ModeSymlink != 0 {
			linkTarget, err := os.Readlink(path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", path)
			}
			return os.Symlink(linkTarget, target)
		}

		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dest string, perm os.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // path comes from the walked bundle source
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open toolchain file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // read-only close

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //nolint:gosec // dest is under our staging dir
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create toolchain file"), "path", dest)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy toolchain file"), "path", src)
	}
	return out.Close()
}
