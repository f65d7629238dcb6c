package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilnhq/kiln/internal/adapters/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newSource(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.c"), "int main(void) { return 0; }\n")
	writeFile(t, filepath.Join(root, "src", "util.c"), "static int x;\n")
	writeFile(t, filepath.Join(root, "Makefile"), "all:\n")
	return root
}

func TestSnapshot_Deterministic(t *testing.T) {
	root := newSource(t)
	snap := fs.NewSnapshotter(fs.NewWalker())

	first, err := snap.Snapshot(root, filepath.Join(t.TempDir(), "a"), nil)
	require.NoError(t, err)

	second, err := snap.Snapshot(root, filepath.Join(t.TempDir(), "b"), nil)
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)

	a, err := os.ReadFile(filepath.Join(first.Root, "src", "main.c"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second.Root, "src", "main.c"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSnapshot_ExcludedFilesDoNotChangeResult(t *testing.T) {
	root := newSource(t)
	snap := fs.NewSnapshotter(fs.NewWalker())

	before, err := snap.Snapshot(root, filepath.Join(t.TempDir(), "before"), nil)
	require.NoError(t, err)

	// Volatile files that must not poison the fingerprint.
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main\n")
	writeFile(t, filepath.Join(root, "build.log"), "2026-08-30T10:00:00 compiling\n")
	writeFile(t, filepath.Join(root, "target", "old.o"), "\x7fELF")
	writeFile(t, filepath.Join(root, ".DS_Store"), "junk")

	after, err := snap.Snapshot(root, filepath.Join(t.TempDir(), "after"), nil)
	require.NoError(t, err)

	assert.Equal(t, before.Fingerprint, after.Fingerprint)
	assert.NoFileExists(t, filepath.Join(after.Root, "build.log"))
	assert.NoDirExists(t, filepath.Join(after.Root, ".git"))
	assert.NoDirExists(t, filepath.Join(after.Root, "target"))
}

func TestSnapshot_ContentChangeChangesFingerprint(t *testing.T) {
	root := newSource(t)
	snap := fs.NewSnapshotter(fs.NewWalker())

	before, err := snap.Snapshot(root, filepath.Join(t.TempDir(), "before"), nil)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "src", "main.c"), "int main(void) { return 1; }\n")

	after, err := snap.Snapshot(root, filepath.Join(t.TempDir(), "after"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, before.Fingerprint, after.Fingerprint)
}

func TestSnapshot_CustomExcludes(t *testing.T) {
	root := newSource(t)
	writeFile(t, filepath.Join(root, "notes.tmp"), "scratch")

	snap := fs.NewSnapshotter(fs.NewWalker())
	tree, err := snap.Snapshot(root, filepath.Join(t.TempDir(), "out"), []string{"*.tmp"})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(tree.Root, "notes.tmp"))
	assert.FileExists(t, filepath.Join(tree.Root, "Makefile"))
}

func TestWalker_LexicalOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.c"), "b")
	writeFile(t, filepath.Join(root, "a.c"), "a")
	writeFile(t, filepath.Join(root, "sub", "c.c"), "c")

	var got []string
	for path, walkErr := range fs.NewWalker().WalkFiles(root, nil) {
		require.NoError(t, walkErr)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, rel)
	}

	assert.Equal(t, []string{"a.c", "b.c", filepath.Join("sub", "c.c")}, got)
}

func TestSnapshot_WalkFailureSurfaces(t *testing.T) {
	snap := fs.NewSnapshotter(fs.NewWalker())

	missing := filepath.Join(t.TempDir(), "vanished")
	_, err := snap.Snapshot(missing, filepath.Join(t.TempDir(), "out"), nil)
	require.Error(t, err, "a failed walk must never produce a silently truncated snapshot")
}
