package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates the fixture tree used by most tests:
//
//	a.txt
//	ignored.log        (excluded by the root .gitignore)
//	sub/b.txt
//	sub/deep/c.txt
//	.hidden/d.txt
//	.hiddenfile
//	.git/config
//	.gitignore         ("*.log")
func buildTree(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "sub", "deep"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, ".hidden"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, ".git"), 0755))

	files := map[string]string{
		"a.txt":            "a",
		"ignored.log":      "log",
		"sub/b.txt":        "b",
		"sub/deep/c.txt":   "c",
		".hidden/d.txt":    "d",
		".hiddenfile":      "h",
		".git/config":      "cfg",
		".gitignore":       "*.log\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmp, filepath.FromSlash(name)), []byte(content), 0644))
	}

	return tmp
}

// collect runs Walk and returns the reported paths relative to root,
// slash-separated and sorted.
func collect(t *testing.T, root string, opts Options) []string {
	t.Helper()

	var paths []string
	err := Walk(root, opts, func(path string, d fs.DirEntry) error {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)

	sort.Strings(paths)
	return paths
}

func TestWalkDefaults(t *testing.T) {
	tmp := buildTree(t)

	paths := collect(t, tmp, Options{ReadIgnoreFiles: true})

	assert.Equal(t, []string{"a.txt", "sub", "sub/b.txt", "sub/deep", "sub/deep/c.txt"}, paths)
}

func TestWalkIncludeHidden(t *testing.T) {
	tmp := buildTree(t)

	paths := collect(t, tmp, Options{ReadIgnoreFiles: true, IncludeHidden: true})

	assert.Contains(t, paths, ".hiddenfile")
	assert.Contains(t, paths, ".hidden")
	assert.Contains(t, paths, ".hidden/d.txt")
	assert.Contains(t, paths, ".gitignore")

	// Ignore rules still apply, and .git is still pruned
	assert.NotContains(t, paths, "ignored.log")
	assert.NotContains(t, paths, ".git")
	assert.NotContains(t, paths, ".git/config")
}

func TestWalkNoIgnoreFiles(t *testing.T) {
	tmp := buildTree(t)

	paths := collect(t, tmp, Options{ReadIgnoreFiles: false})

	assert.Contains(t, paths, "ignored.log")
}

func TestWalkNestedIgnoreFile(t *testing.T) {
	tmp := buildTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "sub", ".gitignore"), []byte("b.txt\n"), 0644))

	paths := collect(t, tmp, Options{ReadIgnoreFiles: true})

	assert.NotContains(t, paths, "sub/b.txt")
	assert.Contains(t, paths, "sub/deep/c.txt")
	assert.Contains(t, paths, "a.txt")
}

func TestWalkDotIgnoreFile(t *testing.T) {
	tmp := buildTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".ignore"), []byte("sub\n"), 0644))

	paths := collect(t, tmp, Options{ReadIgnoreFiles: true})

	assert.NotContains(t, paths, "sub")
	assert.NotContains(t, paths, "sub/b.txt")
	assert.Contains(t, paths, "a.txt")
}

func TestWalkMaxDepth(t *testing.T) {
	tmp := buildTree(t)

	paths := collect(t, tmp, Options{ReadIgnoreFiles: true, MaxDepth: 1})
	assert.Equal(t, []string{"a.txt", "sub"}, paths)

	paths = collect(t, tmp, Options{ReadIgnoreFiles: true, MaxDepth: 2})
	assert.Equal(t, []string{"a.txt", "sub", "sub/b.txt", "sub/deep"}, paths)
}

func TestWalkSymlinkedDirNotFollowedByDefault(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "real"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "real", "inside.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(tmp, "real"), filepath.Join(tmp, "linked")))

	paths := collect(t, tmp, Options{})
	assert.Contains(t, paths, "linked")
	assert.NotContains(t, paths, "linked/inside.txt")
}

func TestWalkFollowSymlinks(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "real"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "real", "inside.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(tmp, "real"), filepath.Join(tmp, "linked")))

	paths := collect(t, tmp, Options{FollowSymlinks: true})
	assert.Contains(t, paths, "linked/inside.txt")
}

func TestWalkSymlinkCycleDoesNotRecurseForever(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "dir"), 0755))
	require.NoError(t, os.Symlink(tmp, filepath.Join(tmp, "dir", "loop")))

	paths := collect(t, tmp, Options{FollowSymlinks: true})

	// The loop entry is reported once but never descended into
	assert.Contains(t, paths, "dir/loop")
	for _, p := range paths {
		assert.NotContains(t, p, "loop/")
	}
}

func TestWalkPropagatesCallbackError(t *testing.T) {
	tmp := buildTree(t)

	sentinel := assert.AnError
	err := Walk(tmp, Options{}, func(path string, d fs.DirEntry) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestWalkMissingRootIsNotFatal(t *testing.T) {
	err := Walk(filepath.Join(t.TempDir(), "gone"), Options{}, func(path string, d fs.DirEntry) error {
		t.Fatal("no entries expected")
		return nil
	})
	assert.NoError(t, err)
}
