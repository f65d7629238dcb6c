package domain

import "time"

// Manifest describes a published dependency artifact cache entry.
type Manifest struct {
	Key       string    `yaml:"key"`
	Toolchain string    `yaml:"toolchain"`
	Platform  string    `yaml:"platform"`
	CreatedAt time.Time `yaml:"createdAt"`
}

// ArtifactSet is a published, immutable set of compiled dependency
// artifacts. Dir points at the entry's payload directory inside the store;
// consumers treat it as read-only.
type ArtifactSet struct {
	Key      string
	Dir      string
	Manifest Manifest
}

// Artifact is the output of a project build.
type Artifact struct {
	Dir       string
	Toolchain string
	Platform  string
}

// SourceTree is a filtered, deterministic snapshot of the project source.
// Fingerprint is a content hash over the snapshot, useful for logging and
// verification; the dependency cache key does not depend on it.
type SourceTree struct {
	Root        string
	Fingerprint string
}
