package ports

import (
	"context"

	"github.com/kilnhq/kiln/internal/core/domain"
)

// Compiler is the invocation interface of the underlying toolchain. It is an
// external capability: kiln drives it, it never reimplements it.
//
// Implementations surface the toolchain's diagnostics verbatim on failure,
// attached to the matching domain sentinel so dependency failures are never
// misattributed to the project's own source.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// CompileDependency compiles a single external dependency into outDir.
	// Failure is domain.ErrDependencyCompileFailed with the dependency
	// identity and diagnostic attached.
	CompileDependency(ctx context.Context, toolchain *domain.Toolchain, dep domain.LockEntry, outDir string) error

	// CompileProject compiles the snapshotted project source against the
	// read-only dependency artifacts in depsDir, writing output to outDir.
	// Failure is domain.ErrProjectCompileFailed with diagnostics attached.
	CompileProject(ctx context.Context, toolchain *domain.Toolchain, tree *domain.SourceTree, depsDir, outDir string) error
}
