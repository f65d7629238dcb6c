// Package cas implements the persistent dependency artifact store.
package cas

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kilnhq/kiln/internal/core/domain"
	"github.com/kilnhq/kiln/internal/core/ports"
	"github.com/kilnhq/kiln/internal/paths"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ArtifactStore = (*Store)(nil)

const (
	manifestFile = "manifest.yaml"
	artifactsDir = "artifacts"
	stagingDir   = ".tmp"

	// Transient store IO is retried a bounded number of times before
	// surfacing as terminal.
	readAttempts = 3
	readBackoff  = 50 * time.Millisecond
)

// Store is a filesystem-backed artifact cache. One subdirectory per entry,
// named by the cache key, holding a manifest and the opaque payload.
//
// Entries are immutable once published. Writers stage into a private
// directory under .tmp and publish with a single rename, so a reader can
// never observe a half-written entry; competing writers for one key race
// harmlessly and the loser adopts the published entry.
type Store struct {
	root string
}

// NewStore creates a store rooted at the default cache location.
func NewStore() (*Store, error) {
	return NewStoreAt(paths.DepsDir())
}

// NewStoreAt creates a store rooted at root, creating it if needed.
func NewStoreAt(root string) (*Store, error) {
	root = filepath.Clean(root)
	if err := os.MkdirAll(filepath.Join(root, stagingDir), paths.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create artifact store"), "root", root)
	}
	return &Store{root: root}, nil
}

// Get returns the published entry for key, or nil, nil on a miss.
func (s *Store) Get(key string) (*domain.ArtifactSet, error) {
	entryDir := filepath.Join(s.root, key)

	data, err := s.readManifest(filepath.Join(entryDir, manifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var manifest domain.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse entry manifest"), "key", key)
	}
	if manifest.Key != key {
		// A manifest that disagrees with its directory name means the store
		// was tampered with or corrupted; refuse to serve it.
		err := zerr.With(zerr.New("entry manifest key mismatch"), "key", key)
		return nil, zerr.With(err, "manifest_key", manifest.Key)
	}

	return &domain.ArtifactSet{
		Key:      key,
		Dir:      filepath.Join(entryDir, artifactsDir),
		Manifest: manifest,
	}, nil
}

// Put publishes a new entry for manifest.Key. populate fills the staging
// payload directory; the entry becomes visible only after the staging
// directory is renamed into place. If another writer won the race, their
// entry is returned unchanged.
func (s *Store) Put(ctx context.Context, manifest domain.Manifest, populate func(dir string) error) (*domain.ArtifactSet, error) {
	staging, err := os.MkdirTemp(filepath.Join(s.root, stagingDir), manifest.Key+"-")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create staging directory")
	}
	defer os.RemoveAll(staging) //nolint:errcheck // best effort cleanup; no-op after publish

	payload := filepath.Join(staging, artifactsDir)
	if err := os.MkdirAll(payload, paths.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create staging payload directory")
	}

	if err := populate(payload); err != nil {
		return nil, err
	}

	// A cancelled build must never publish a partial entry.
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "build cancelled before publish")
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal entry manifest")
	}
	if err := os.WriteFile(filepath.Join(staging, manifestFile), data, paths.FilePerm); err != nil {
		return nil, zerr.Wrap(err, "failed to write entry manifest")
	}

	entryDir := filepath.Join(s.root, manifest.Key)
	if err := os.Rename(staging, entryDir); err != nil {
		// Another writer published this key first. Entries for one key are
		// identical by construction, so adopt theirs.
		if existing, getErr := s.Get(manifest.Key); getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to publish entry"), "key", manifest.Key)
	}

	return &domain.ArtifactSet{
		Key:      manifest.Key,
		Dir:      filepath.Join(entryDir, artifactsDir),
		Manifest: manifest,
	}, nil
}

// readManifest reads the manifest file, retrying transient failures.
// A missing file is a cache miss and returns immediately.
func (s *Store) readManifest(path string) ([]byte, error) {
	var lastErr error
	backoff := readBackoff

	for attempt := 0; attempt < readAttempts; attempt++ {
		data, err := os.ReadFile(path) //nolint:gosec // path is under the store root
		if err == nil {
			return data, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		lastErr = err
		time.Sleep(backoff)
		backoff *= 2
	}

	return nil, zerr.With(zerr.Wrap(lastErr, "failed to read entry manifest"), "path", path)
}
