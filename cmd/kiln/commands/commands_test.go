package commands_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kilnhq/kiln/cmd/kiln/commands"
	"github.com/kilnhq/kiln/internal/adapters/cas"
	"github.com/kilnhq/kiln/internal/adapters/config"
	"github.com/kilnhq/kiln/internal/adapters/fs"
	"github.com/kilnhq/kiln/internal/adapters/logger"
	"github.com/kilnhq/kiln/internal/adapters/session"
	"github.com/kilnhq/kiln/internal/adapters/telemetry"
	"github.com/kilnhq/kiln/internal/adapters/toolchain"
	"github.com/kilnhq/kiln/internal/adapters/toolkit"
	"github.com/kilnhq/kiln/internal/app"
	"github.com/kilnhq/kiln/internal/build"
	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports/mocks"
	"github.com/kilnhq/kiln/internal/engine/pipeline"
)

func newCLI(t *testing.T) (*commands.CLI, *mocks.MockCompiler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("KILN_CACHE_DIR", t.TempDir())

	ctrl := gomock.NewController(t)
	compiler := mocks.NewMockCompiler(ctrl)

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
	a := app.New(config.NewLoader(), toolchain.NewProvider(), pipe, lg)

	cli := commands.New(a)
	var out bytes.Buffer
	cli.SetOutput(&out)
	return cli, compiler, &out
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	host := domain.HostPlatform().String()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bundle", "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bundle", "bin", "compile"), []byte("#!/bin/sh\n"), 0o755))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "repo", "cudart", "12.4", host, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repo", "cudart", "12.4", host, "bin", "nvcc"), []byte("nvcc"), 0o755))

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

func TestDeps(t *testing.T) {
	cli, compiler, _ := newCLI(t)
	configPath := writeProject(t)

	compiler.EXPECT().
		CompileDependency(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	cli.SetArgs([]string{"deps", "--config", configPath})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestBuild(t *testing.T) {
	cli, compiler, _ := newCLI(t)
	configPath := writeProject(t)

	compiler.EXPECT().
		CompileDependency(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	compiler.EXPECT().
		CompileProject(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	cli.SetArgs([]string{"build", "--config", configPath})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestBuild_DependencyFailureSurfaces(t *testing.T) {
	cli, compiler, _ := newCLI(t)
	configPath := writeProject(t)

	compiler.EXPECT().
		CompileDependency(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ErrDependencyCompileFailed)

	cli.SetArgs([]string{"build", "--config", configPath})
	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrDependencyCompileFailed)
}

func TestToolkit_PrintsBundleRoot(t *testing.T) {
	cli, _, out := newCLI(t)
	configPath := writeProject(t)

	cli.SetArgs([]string{"toolkit", "--config", configPath})
	require.NoError(t, cli.Execute(context.Background()))

	root := strings.TrimSpace(out.String())
	require.NotEmpty(t, root)
	assert.FileExists(t, filepath.Join(root, "bin", "nvcc"))
}

func TestEnv_PrintsBindings(t *testing.T) {
	cli, _, out := newCLI(t)
	configPath := writeProject(t)

	cli.SetArgs([]string{"env", "--config", configPath})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Contains(t, out.String(), "TOOLKIT_ROOT=")
	assert.Contains(t, out.String(), "TOOLKIT_SRC=")
}

func TestEnv_UnknownPlatform(t *testing.T) {
	cli, _, _ := newCLI(t)
	configPath := writeProject(t)

	cli.SetArgs([]string{"env", "--config", configPath, "--platform", "freebsd-riscv64"})
	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrToolchainUnavailable)
}

func TestVersion(t *testing.T) {
	cli, _, out := newCLI(t)

	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), build.Version)
}

func TestHelp(t *testing.T) {
	cli, _, _ := newCLI(t)

	cli.SetArgs([]string{"--help"})
	require.NoError(t, cli.Execute(context.Background()))
}
