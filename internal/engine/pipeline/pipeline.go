// Package pipeline orchestrates the build phases: dependency compilation,
// project compilation, toolkit composition and session environments.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"github.com/kilnhq/kiln/internal/paths"
)

// Pipeline drives the build phases against the injected adapters. It holds
// no per-invocation state; everything an invocation needs travels in the
// BuildConfig.
type Pipeline struct {
	snapshotter ports.Snapshotter
	compiler    ports.Compiler
	store       ports.ArtifactStore
	repository  ports.PackageRepository
	composer    ports.ToolkitComposer
	session     ports.EnvironmentComposer
	logger      ports.Logger
	telemetry   ports.Telemetry
}

// New creates a Pipeline.
func New(
	snapshotter ports.Snapshotter,
	compiler ports.Compiler,
	store ports.ArtifactStore,
	repository ports.PackageRepository,
	composer ports.ToolkitComposer,
	session ports.EnvironmentComposer,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Pipeline {
	return &Pipeline{
		snapshotter: snapshotter,
		compiler:    compiler,
		store:       store,
		repository:  repository,
		composer:    composer,
		session:     session,
		logger:      logger,
		telemetry:   telemetry,
	}
}

// BuildDeps ensures the dependency artifact set for cfg exists in the store
// and returns it. On a hit nothing is compiled; on a miss every lock entry
// is compiled into a staging directory that is published atomically under
// the config's cache key.
func (p *Pipeline) BuildDeps(ctx context.Context, cfg *domain.BuildConfig) (*domain.ArtifactSet, error) {
	key := cfg.CacheKey()
	ctx, vertex := p.telemetry.Record(ctx, "compile dependencies")

	set, err := p.store.Get(key)
	if err != nil {
		vertex.Complete(err)
		return nil, err
	}
	if set != nil {
		p.logger.Info("dependency artifacts up to date, key " + shorten(key))
		vertex.Cached()
		vertex.Complete(nil)
		return set, nil
	}

	p.logger.Info(fmt.Sprintf("compiling %d dependencies, key %s", len(cfg.Lock.Entries), shorten(key)))

	manifest := domain.Manifest{
		Key:       key,
		Toolchain: cfg.Toolchain.ID(),
		Platform:  cfg.Platform.String(),
		CreatedAt: time.Now().UTC(),
	}
	set, err = p.store.Put(ctx, manifest, func(dir string) error {
		for _, dep := range cfg.Lock.Entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(vertex.Stdout(), "compiling %s\n", dep.Spec())
			if err := p.compiler.CompileDependency(ctx, cfg.Toolchain, dep, dir); err != nil {
				return err
			}
		}
		return nil
	})
	vertex.Complete(err)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// BuildPackage snapshots the project source and compiles it against the
// given dependency artifact set. The set must have been derived from the
// same config; a key mismatch aborts before anything is compiled.
func (p *Pipeline) BuildPackage(ctx context.Context, cfg *domain.BuildConfig, deps *domain.ArtifactSet) (*domain.Artifact, error) {
	key := cfg.CacheKey()
	if deps == nil || deps.Key != key {
		got := "<nil>"
		if deps != nil {
			got = deps.Key
		}
		return nil, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrCacheMismatch, "refusing to compile against foreign artifacts"),
			"want", key), "got", got)
	}

	ctx, vertex := p.telemetry.Record(ctx, "compile project")

	tree, err := p.snapshot(cfg)
	if err != nil {
		vertex.Complete(err)
		return nil, err
	}
	p.logger.Info("source snapshot " + shorten(tree.Fingerprint))

	outDir := filepath.Join(paths.OutDir(), key)
	if err := resetDir(outDir); err != nil {
		vertex.Complete(err)
		return nil, err
	}

	err = p.compiler.CompileProject(ctx, cfg.Toolchain, tree, deps.Dir, outDir)
	vertex.Complete(err)
	if err != nil {
		return nil, err
	}

	return &domain.Artifact{
		Dir:       outDir,
		Toolchain: cfg.Toolchain.ID(),
		Platform:  cfg.Platform.String(),
	}, nil
}

func (p *Pipeline) snapshot(cfg *domain.BuildConfig) (*domain.SourceTree, error) {
	if err := os.MkdirAll(paths.SnapshotsDir(), paths.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create snapshot directory")
	}
	dest, err := os.MkdirTemp(paths.SnapshotsDir(), "src-")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create snapshot directory")
	}
	return p.snapshotter.Snapshot(cfg.SourceRoot, dest, cfg.Excludes)
}

// ComposeToolkit fetches the declared native packages and merges them into
// one toolkit bundle. Packages are fetched concurrently but composed in
// declaration order, so later packages shadow earlier ones on collisions.
func (p *Pipeline) ComposeToolkit(ctx context.Context, spec domain.ToolkitSpec, platform domain.Platform) (*domain.Toolkit, error) {
	ctx, vertex := p.telemetry.Record(ctx, "compose toolkit")

	packages := make([]domain.NativePackage, len(spec.Packages))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range spec.Packages {
		g.Go(func() error {
			pkg, err := p.repository.Fetch(gctx, spec.Repository, ref, platform)
			if err != nil {
				return err
			}
			packages[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		vertex.Complete(err)
		return nil, err
	}

	dest := filepath.Join(paths.ToolkitsDir(), toolkitID(spec, platform))
	if err := resetDir(dest); err != nil {
		vertex.Complete(err)
		return nil, err
	}

	p.logger.Info(fmt.Sprintf("composing toolkit from %d packages", len(packages)))
	toolkit, err := p.composer.Compose(ctx, packages, dest, spec.MetadataDirs)
	vertex.Complete(err)
	if err != nil {
		return nil, err
	}
	return toolkit, nil
}

// ComposeEnvironment composes the toolkit and derives the session
// environment bindings on top of base.
func (p *Pipeline) ComposeEnvironment(
	ctx context.Context,
	spec domain.ToolkitSpec,
	toolchain *domain.Toolchain,
	names domain.EnvNames,
	platform domain.Platform,
	base []string,
) (domain.DevEnvironment, error) {
	toolkit, err := p.ComposeToolkit(ctx, spec, platform)
	if err != nil {
		return nil, err
	}
	return p.session.Compose(toolkit, toolchain, names, base)
}

// toolkitID derives a stable bundle directory name from the ordered package
// list and the platform, so recomposing an unchanged toolkit reuses its
// location.
func toolkitID(spec domain.ToolkitSpec, platform domain.Platform) string {
	specs := make([]string, 0, len(spec.Packages)+1)
	for _, ref := range spec.Packages {
		specs = append(specs, ref.Spec())
	}
	specs = append(specs, platform.String())
	return digest.FromString(strings.Join(specs, "\n")).Encoded()[:16]
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear output directory"), "dir", dir)
	}
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", dir)
	}
	return nil
}

func shorten(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
