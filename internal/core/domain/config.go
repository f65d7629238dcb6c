package domain

import (
	"github.com/opencontainers/go-digest"
)

// LockEntry is one resolved dependency from the lock manifest.
type LockEntry struct {
	Name    string
	Version string
}

// Spec renders the entry as "name@version".
func (e LockEntry) Spec() string {
	return e.Name + "@" + e.Version
}

// LockManifest is the resolved dependency state produced by the external
// dependency resolver. Raw holds the manifest bytes exactly as read; the
// cache key binds to Raw, not to the parsed entries, so any change to the
// lock file invalidates dependent cache entries.
type LockManifest struct {
	Path    string
	Raw     []byte
	Entries []LockEntry
}

// BuildConfig aggregates everything one invocation builds against. It is
// constructed once by the application layer and shared by reference between
// the dependency cache and the package builder, so both derive the cache key
// from the identical configuration.
type BuildConfig struct {
	SourceRoot string
	Excludes   []string
	Lock       LockManifest
	Toolchain  *Toolchain
	Platform   Platform

	// ExtraInputs are platform-conditional additional inputs, already
	// filtered down to the invocation platform.
	ExtraInputs []string
}

// CacheKey derives the dependency artifact cache key: a sha256 digest over
// the lock manifest bytes, the toolchain identity and the platform. The full
// lock content is bound so two differing lock states can never share a key.
func (c *BuildConfig) CacheKey() string {
	d := digest.SHA256.Digester()
	h := d.Hash()
	_, _ = h.Write(c.Lock.Raw)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(c.Toolchain.ID()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(c.Platform.String()))
	return d.Digest().Encoded()
}
