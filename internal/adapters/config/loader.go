// Package config provides the configuration loader for kiln.
package config

import (
	"os"
	"sort"

	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader reads kiln.yaml project files and kiln.lock dependency manifests.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and validates the configuration file at path.
func (l *Loader) Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file kilnfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	if file.Toolchain.Name == "" || file.Toolchain.Version == "" {
		err := zerr.Wrap(domain.ErrInvalidConfig, "toolchain name and version are required")
		return nil, zerr.With(err, "path", path)
	}

	project := &domain.Project{
		SourceRoot: file.Source.Root,
		Excludes:   file.Source.Exclude,
		LockPath:   file.Lockfile,
		Toolchain: domain.ToolchainPin{
			Name:      file.Toolchain.Name,
			Version:   file.Toolchain.Version,
			Platforms: file.Toolchain.Platforms,
		},
		ExtraInputs: file.Extra,
		Toolkit: domain.ToolkitSpec{
			Repository:   file.Toolkit.Repository,
			MetadataDirs: file.Toolkit.MetadataDirs,
		},
		Env: domain.EnvNames{
			Root: file.Env.RootVar,
			Src:  file.Env.SrcVar,
		},
	}
	if project.SourceRoot == "" {
		project.SourceRoot = "."
	}
	if project.LockPath == "" {
		project.LockPath = "kiln.lock"
	}

	for _, pkg := range file.Toolkit.Packages {
		if pkg.Name == "" || pkg.Version == "" {
			err := zerr.Wrap(domain.ErrInvalidConfig, "toolkit packages need name and version")
			return nil, zerr.With(err, "path", path)
		}
		project.Toolkit.Packages = append(project.Toolkit.Packages, domain.PackageRef{
			Name:    pkg.Name,
			Version: pkg.Version,
		})
	}

	return project, nil
}

// LoadLock reads the dependency lock manifest at path. The manifest is a
// flat name-to-version map produced by the external dependency resolver.
// The raw bytes are preserved because the cache key binds to them.
func (l *Loader) LoadLock(path string) (domain.LockManifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the config file
	if err != nil {
		return domain.LockManifest{}, zerr.With(zerr.Wrap(err, "failed to read lock manifest"), "path", path)
	}

	var versions map[string]string
	if err := yaml.Unmarshal(data, &versions); err != nil {
		return domain.LockManifest{}, zerr.With(zerr.Wrap(err, "failed to parse lock manifest"), "path", path)
	}

	manifest := domain.LockManifest{
		Path:    path,
		Raw:     data,
		Entries: make([]domain.LockEntry, 0, len(versions)),
	}
	for name, version := range versions {
		manifest.Entries = append(manifest.Entries, domain.LockEntry{Name: name, Version: version})
	}
	// Deterministic compile order.
	sort.Slice(manifest.Entries, func(i, j int) bool {
		return manifest.Entries[i].Name < manifest.Entries[j].Name
	})

	return manifest, nil
}
