package vfs

import (
	"testing"

	"github.com/quarkos-dev/quark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Root(t *testing.T) {
	fs, root := newRootedFS(t, "test")

	for _, p := range []string{"", "/", "//"} {
		n, err := Resolve(fs, p)
		require.NoError(t, err, "path %q", p)
		assert.Same(t, root, n.(*Directory), "path %q", p)
	}
}

func TestResolve_Nested(t *testing.T) {
	fs, _ := newRootedFS(t, "test")
	dir, err := EnsureDir(fs, "/a/b")
	require.NoError(t, err)
	f, _ := addFile(t, fs, dir, "c.txt", []byte("x"))

	n, err := Resolve(fs, "/a/b/c.txt")
	require.NoError(t, err)
	assert.Same(t, f, n.(*File))
}

func TestResolve_Missing(t *testing.T) {
	fs, _ := newRootedFS(t, "test")

	_, err := Resolve(fs, "/nope")
	assert.ErrorIs(t, err, quark.ErrNotFound)
}

func TestResolve_ThroughNonDirectory(t *testing.T) {
	fs, root := newRootedFS(t, "test")
	addFile(t, fs, root, "a.txt", nil)

	_, err := Resolve(fs, "/a.txt/child")
	assert.ErrorIs(t, err, quark.ErrNotFound)
}

func TestResolve_NoRoot(t *testing.T) {
	fs := New("rootless")

	_, err := Resolve(fs, "/x")
	assert.ErrorIs(t, err, quark.ErrNotFound)
}

func TestEnsureDir_CreatesMissing(t *testing.T) {
	fs, root := newRootedFS(t, "test")

	leaf, err := EnsureDir(fs, "/a/b/c")
	require.NoError(t, err)

	// every level exists, is linked and is registered
	e, err := root.GetEntry("a")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Node().Refs())

	n, err := Resolve(fs, "/a/b/c")
	require.NoError(t, err)
	assert.Same(t, leaf, n.(*Directory))
}

func TestEnsureDir_Idempotent(t *testing.T) {
	fs, _ := newRootedFS(t, "test")

	first, err := EnsureDir(fs, "/a/b")
	require.NoError(t, err)
	second, err := EnsureDir(fs, "/a/b")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestEnsureDir_ThroughFile(t *testing.T) {
	fs, root := newRootedFS(t, "test")
	addFile(t, fs, root, "a.txt", nil)

	_, err := EnsureDir(fs, "/a.txt/sub")
	assert.ErrorIs(t, err, quark.ErrNotFound)
}
