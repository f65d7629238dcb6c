// Package shell invokes the toolchain's own command line interface.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Runner)(nil)

// Runner implements ports.Compiler over the toolchain's compile entry point.
// Diagnostics written by the toolchain to stderr are carried on the returned
// error unmodified.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// CompileDependency compiles a single external dependency into outDir.
func (r *Runner) CompileDependency(ctx context.Context, tc *domain.Toolchain, dep domain.LockEntry, outDir string) error {
	args := []string{"--dependency", dep.Spec(), "--out", outDir}
	diagnostic, err := r.run(ctx, tc, args)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrToolchainUnavailable) {
		return err
	}
	wrapped := zerr.Wrap(domain.ErrDependencyCompileFailed, compileMessage(dep.Spec(), diagnostic))
	wrapped = zerr.With(wrapped, "dependency", dep.Spec())
	return zerr.With(wrapped, "toolchain", tc.ID())
}

// CompileProject compiles the snapshotted project source against the
// dependency artifacts in depsDir.
func (r *Runner) CompileProject(ctx context.Context, tc *domain.Toolchain, tree *domain.SourceTree, depsDir, outDir string) error {
	args := []string{"--source", tree.Root, "--deps", depsDir, "--out", outDir}
	diagnostic, err := r.run(ctx, tc, args)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrToolchainUnavailable) {
		return err
	}
	wrapped := zerr.Wrap(domain.ErrProjectCompileFailed, compileMessage("project source", diagnostic))
	wrapped = zerr.With(wrapped, "toolchain", tc.ID())
	return zerr.With(wrapped, "source", tree.Root)
}

// compileMessage keeps the toolchain's stderr in the error message itself,
// so the diagnostic survives up to the invocation boundary unmodified.
func compileMessage(subject, diagnostic string) string {
	if diagnostic == "" {
		return "compiling " + subject
	}
	return "compiling " + subject + ": " + diagnostic
}

// run executes the compile entry point. On failure it returns the
// toolchain's stderr verbatim as the diagnostic.
func (r *Runner) run(ctx context.Context, tc *domain.Toolchain, args []string) (string, error) {
	compile, ok := tc.Tools[domain.ToolCompile]
	if !ok {
		werr := zerr.Wrap(domain.ErrToolchainUnavailable, "bundle has no compile entry point")
		return "", zerr.With(werr, "toolchain", tc.ID())
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, compile, args...) //nolint:gosec // entry point comes from the resolved bundle
	cmd.Env = prependPath(os.Environ(), tc.BinDir())
	cmd.Stdout = &logWriter{logger: r.logger}
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return strings.TrimSpace(stderr.String()), err
	}
	return "", nil
}

// prependPath puts the toolchain's bin directory in front of the existing
// PATH entries without dropping them.
func prependPath(env []string, binDir string) []string {
	result := make([]string, 0, len(env)+1)
	found := false
	for _, entry := range env {
		if rest, ok := strings.CutPrefix(entry, "PATH="); ok {
			found = true
			if rest == "" {
				result = append(result, "PATH="+binDir)
			} else {
				result = append(result, "PATH="+binDir+string(os.PathListSeparator)+rest)
			}
			continue
		}
		result = append(result, entry)
	}
	if !found {
		result = append(result, "PATH="+binDir)
	}
	return result
}

type logWriter struct {
	logger ports.Logger
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		w.logger.Info(line)
	}
	return len(p), nil
}
