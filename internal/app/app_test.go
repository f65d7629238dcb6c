package app_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kilnhq/kiln/internal/adapters/cas"
	"github.com/kilnhq/kiln/internal/adapters/config"
	"github.com/kilnhq/kiln/internal/adapters/fs"
	"github.com/kilnhq/kiln/internal/adapters/logger"
	"github.com/kilnhq/kiln/internal/adapters/session"
	"github.com/kilnhq/kiln/internal/adapters/telemetry"
	"github.com/kilnhq/kiln/internal/adapters/toolchain"
	"github.com/kilnhq/kiln/internal/adapters/toolkit"
	"github.com/kilnhq/kiln/internal/app"
	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"github.com/kilnhq/kiln/internal/core/ports/mocks"
	"github.com/kilnhq/kiln/internal/engine/pipeline"
)

// newAppWith assembles an App around the given compiler and toolchain
// provider, with real adapters everywhere else. Callers point
// KILN_CACHE_DIR at a throwaway directory first.
func newAppWith(t *testing.T, compiler ports.Compiler, provider ports.ToolchainProvider) *app.App {
	t.Helper()

	store, err := cas.NewStore()
	require.NoError(t, err)

	lg := logger.New()
	lg.SetOutput(io.Discard)

	pipe := pipeline.New(
		fs.NewSnapshotter(fs.NewWalker()),
		compiler,
		store,
		toolkit.NewRepository(),
		toolkit.NewComposer(),
		session.NewComposer(),
		lg,
		telemetry.NewNoOp(),
	)

	return app.New(config.NewLoader(), provider, pipe, lg)
}

func newTestApp(t *testing.T) (*app.App, *mocks.MockCompiler) {
	t.Helper()
	t.Setenv("KILN_CACHE_DIR", t.TempDir())
	compiler := mocks.NewMockCompiler(gomock.NewController(t))
	return newAppWith(t, compiler, toolchain.NewProvider()), compiler
}

// writeProject lays out a complete project fixture: config, lock manifest,
// source file, a toolchain bundle for the host platform and a one-package
// repository. Returns the config path.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	host := domain.HostPlatform().String()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bundle", "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bundle", "bin", "compile"), []byte("#!/bin/sh\n"), 0o755))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "repo", "cudart", "12.4", host, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repo", "cudart", "12.4", host, "lib", "libcudart.so"), []byte("so"), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.rs"), []byte("fn main() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kiln.lock"), []byte("serde: \"1.0.200\"\n"), 0o644))

	cfg := fmt.Sprintf(`
version: "1"
toolchain:
  name: rustc
  version: "1.79.0"
  platforms:
    %s: bundle
toolkit:
  repository: repo
  packages:
    - name: cudart
      version: "12.4"
`, host)
	path := filepath.Join(dir, "kiln.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func TestApp_Build(t *testing.T) {
	a, compiler := newTestApp(t)
	configPath := writeProject(t)

	compiler.EXPECT().
		CompileDependency(gomock.Any(), gomock.Any(), domain.LockEntry{Name: "serde", Version: "1.0.200"}, gomock.Any()).
		Return(nil)
	compiler.EXPECT().
		CompileProject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tc *domain.Toolchain, tree *domain.SourceTree, _, outDir string) error {
			assert.Equal(t, "rustc-1.79.0", tc.ID())
			assert.FileExists(t, filepath.Join(tree.Root, "main.rs"))
			return os.WriteFile(filepath.Join(outDir, "app"), []byte("elf"), 0o755)
		})

	err := a.Build(context.Background(), app.Invocation{ConfigPath: configPath})
	require.NoError(t, err)
}

func TestApp_DepsAreCachedAcrossRuns(t *testing.T) {
	a, compiler := newTestApp(t)
	configPath := writeProject(t)

	compiler.EXPECT().
		CompileDependency(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	require.NoError(t, a.Deps(context.Background(), app.Invocation{ConfigPath: configPath}))
	require.NoError(t, a.Deps(context.Background(), app.Invocation{ConfigPath: configPath}))
}

func TestApp_BuildUnknownPlatform(t *testing.T) {
	a, _ := newTestApp(t)
	configPath := writeProject(t)

	err := a.Build(context.Background(), app.Invocation{
		ConfigPath: configPath,
		Platform:   "freebsd-riscv64",
	})
	require.ErrorIs(t, err, domain.ErrToolchainUnavailable)
}

func TestApp_Env(t *testing.T) {
	a, _ := newTestApp(t)
	configPath := writeProject(t)

	env, err := a.Env(context.Background(), app.Invocation{ConfigPath: configPath})
	require.NoError(t, err)

	var sawRoot bool
	for _, kv := range env {
		if len(kv) > 13 && kv[:13] == "TOOLKIT_ROOT=" {
			sawRoot = true
		}
	}
	assert.True(t, sawRoot, "expected TOOLKIT_ROOT binding, got %v", env)
}

func TestApp_ResolvesPinnedToolchainForHost(t *testing.T) {
	t.Setenv("KILN_CACHE_DIR", t.TempDir())
	configPath := writeProject(t)

	ctrl := gomock.NewController(t)
	compiler := mocks.NewMockCompiler(ctrl)
	provider := mocks.NewMockToolchainProvider(ctrl)
	a := newAppWith(t, compiler, provider)

	host := domain.HostPlatform()
	bundleRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(bundleRoot, "bin"), 0o755))

	provider.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), host).
		DoAndReturn(func(_ context.Context, pin domain.ToolchainPin, platform domain.Platform) (*domain.Toolchain, error) {
			assert.Equal(t, "rustc", pin.Name)
			assert.Equal(t, "1.79.0", pin.Version)
			return &domain.Toolchain{
				Name:     pin.Name,
				Version:  pin.Version,
				Platform: platform,
				Root:     bundleRoot,
				Tools:    map[domain.Tool]string{domain.ToolCompile: filepath.Join(bundleRoot, "bin", "compile")},
			}, nil
		})
	compiler.EXPECT().
		CompileDependency(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	require.NoError(t, a.Deps(context.Background(), app.Invocation{ConfigPath: configPath}))
}

func TestApp_ToolchainResolutionFailureAborts(t *testing.T) {
	t.Setenv("KILN_CACHE_DIR", t.TempDir())
	configPath := writeProject(t)

	ctrl := gomock.NewController(t)
	compiler := mocks.NewMockCompiler(ctrl)
	provider := mocks.NewMockToolchainProvider(ctrl)
	a := newAppWith(t, compiler, provider)

	provider.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrToolchainUnavailable)

	// No compiler expectations: resolution failure must stop the run
	// before anything is compiled.
	err := a.Build(context.Background(), app.Invocation{ConfigPath: configPath})
	require.ErrorIs(t, err, domain.ErrToolchainUnavailable)
}

func TestApp_MissingConfig(t *testing.T) {
	a, _ := newTestApp(t)

	err := a.Build(context.Background(), app.Invocation{ConfigPath: filepath.Join(t.TempDir(), "kiln.yaml")})
	require.Error(t, err)
}
