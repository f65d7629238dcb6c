// Package session derives environment bindings for a development session.
package session

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EnvironmentComposer = (*Composer)(nil)

// Composer produces the variable bindings for an interactive session from a
// composed toolkit and a toolchain. The result is ephemeral; nothing is
// persisted.
type Composer struct{}

// NewComposer creates a new Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose returns the session bindings in sorted KEY=VALUE form.
//
// The toolkit root and source-directory variables are fixed bindings; PATH
// and LD_LIBRARY_PATH gain the toolchain's and toolkit's directories in
// front of whatever base already carries, never replacing existing entries.
func (c *Composer) Compose(toolkit *domain.Toolkit, toolchain *domain.Toolchain, names domain.EnvNames, base []string) (domain.DevEnvironment, error) {
	if toolkit == nil || toolkit.Root == "" {
		return nil, zerr.Wrap(domain.ErrInvalidBundle, "no bundle root")
	}
	info, err := os.Stat(toolkit.Root)
	if err != nil || !info.IsDir() {
		werr := zerr.Wrap(domain.ErrInvalidBundle, "bundle root is not a directory")
		return nil, zerr.With(werr, "root", toolkit.Root)
	}

	env := make(map[string]string, len(base)+4)
	for _, entry := range base {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}

	env[names.RootVar()] = toolkit.Root
	env[names.SrcVar()] = filepath.Join(toolkit.Root, "src")

	prependExisting(env, "PATH",
		toolchain.BinDir(),
		filepath.Join(toolkit.Root, "bin"),
	)
	prependExisting(env, "LD_LIBRARY_PATH",
		filepath.Join(toolkit.Root, "lib"),
		filepath.Join(toolkit.Root, "lib64"),
	)

	result := make(domain.DevEnvironment, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result, nil
}

// prependExisting puts dirs in front of the variable's current entries,
// skipping dirs that do not exist and dirs already present.
func prependExisting(env map[string]string, key string, dirs ...string) {
	current := filepath.SplitList(env[key])

	var prefix []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if slices.Contains(current, dir) || slices.Contains(prefix, dir) {
			continue
		}
		prefix = append(prefix, dir)
	}
	if len(prefix) == 0 {
		return
	}

	merged := append(prefix, current...)
	env[key] = strings.Join(merged, string(os.PathListSeparator))
}
