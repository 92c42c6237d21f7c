package vfs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/quarkos-dev/quark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRootedFS creates a filesystem with a registered root directory.
func newRootedFS(t *testing.T, name string) (*FileSystem, *Directory) {
	t.Helper()

	fs := New(name)
	root := NewDirectory()
	fs.AddNode(root)
	rootEntry := NewEntry("/", root)
	require.NoError(t, fs.AddEntry(rootEntry))
	fs.SetRoot(rootEntry)
	return fs, root
}

// addFile registers a new file and links it into dir.
func addFile(t *testing.T, fs *FileSystem, dir DirNode, name string, data []byte) (*File, *Entry) {
	t.Helper()

	f := NewFile(data)
	fs.AddNode(f)
	e := NewEntry(name, f)
	require.NoError(t, dir.AddEntry(e))
	require.NoError(t, fs.AddEntry(e))
	return f, e
}

func TestFileSystem_AddGetRemoveNode(t *testing.T) {
	fs := New("test")
	f := NewFile([]byte("data"))

	assert.Nil(t, f.FS())
	fs.AddNode(f)
	assert.Same(t, fs, f.FS())

	got, err := fs.GetNode(f.ID())
	require.NoError(t, err)
	assert.Same(t, f, got.(*File))

	removed, err := fs.RemoveNode(f.ID())
	require.NoError(t, err)
	assert.Same(t, f, removed.(*File))

	_, err = fs.GetNode(f.ID())
	assert.ErrorIs(t, err, quark.ErrNotFound)
}

func TestFileSystem_RemoveNode_NotFound(t *testing.T) {
	fs := New("test")

	_, err := fs.RemoveNode(uuid.New())
	assert.ErrorIs(t, err, quark.ErrNotFound)
}

func TestFileSystem_AddEntry_UnregisteredTarget(t *testing.T) {
	fs := New("test")
	f := NewFile(nil) // never registered
	e := NewEntry("a.txt", f)

	err := fs.AddEntry(e)
	assert.ErrorIs(t, err, quark.ErrNotFound)
	assert.Zero(t, f.Refs())
}

func TestFileSystem_RefcountTracksEntries(t *testing.T) {
	fs, root := newRootedFS(t, "test")

	f := NewFile([]byte("payload"))
	fs.AddNode(f)
	assert.Zero(t, f.Refs())

	e1 := NewEntry("a.txt", f)
	require.NoError(t, root.AddEntry(e1))
	require.NoError(t, fs.AddEntry(e1))
	assert.Equal(t, 1, f.Refs())

	// second name for the same node, directly in the flat registry
	e2 := NewEntry("b.txt", f)
	require.NoError(t, fs.AddEntry(e2))
	assert.Equal(t, 2, f.Refs())

	_, err := fs.RemoveEntry(e2.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, f.Refs())

	// node survives while one entry remains
	_, err = fs.GetNode(f.ID())
	require.NoError(t, err)
}

func TestFileSystem_RemoveEntry_AutoDestroysNode(t *testing.T) {
	fs, root := newRootedFS(t, "test")
	f, e := addFile(t, fs, root, "a.txt", []byte("x"))

	removed, err := fs.RemoveEntry(e.ID())
	require.NoError(t, err)
	assert.Same(t, e, removed)

	// refcount hit zero, so the node is gone from the registry
	_, err = fs.GetNode(f.ID())
	assert.ErrorIs(t, err, quark.ErrNotFound)
}

func TestFileSystem_RemoveEntry_CascadesToParent(t *testing.T) {
	fs, root := newRootedFS(t, "test")
	_, e := addFile(t, fs, root, "a.txt", []byte("x"))

	_, err := fs.RemoveEntry(e.ID())
	require.NoError(t, err)

	_, err = root.GetEntry("a.txt")
	assert.ErrorIs(t, err, quark.ErrNotFound)
	assert.Nil(t, e.Parent())
}

func TestFileSystem_RemoveEntry_NotFound(t *testing.T) {
	fs := New("test")

	_, err := fs.RemoveEntry(uuid.New())
	assert.ErrorIs(t, err, quark.ErrNotFound)
}

func TestFileSystem_GetEntry_Entries(t *testing.T) {
	fs, root := newRootedFS(t, "test")
	_, e := addFile(t, fs, root, "a.txt", nil)

	got, err := fs.GetEntry(e.ID())
	require.NoError(t, err)
	assert.Same(t, e, got)

	_, err = fs.GetEntry(uuid.New())
	assert.ErrorIs(t, err, quark.ErrNotFound)

	// root entry + file entry
	assert.Len(t, fs.Entries(), 2)
}

func TestFileSystem_RemoveNode_LeavesEntriesDangling(t *testing.T) {
	fs, root := newRootedFS(t, "test")
	f, e := addFile(t, fs, root, "a.txt", []byte("x"))

	_, err := fs.RemoveNode(f.ID())
	require.NoError(t, err)

	// the entry still exists and still points at the removed node
	got, err := fs.GetEntry(e.ID())
	require.NoError(t, err)
	assert.Same(t, f, got.Node().(*File))
	_, err = root.GetEntry("a.txt")
	assert.NoError(t, err)
}

func TestFileSystem_RootIsExplicit(t *testing.T) {
	fs := New("test")
	assert.Nil(t, fs.Root())

	root := NewDirectory()
	fs.AddNode(root)
	rootEntry := NewEntry("/", root)
	require.NoError(t, fs.AddEntry(rootEntry))

	// registering the entry does not imply rootness
	assert.Nil(t, fs.Root())
	fs.SetRoot(rootEntry)
	assert.Same(t, rootEntry, fs.Root())
}

// Mirrors the end-to-end lifecycle: link a file under the root, remove its
// entry, and observe auto-destruction plus the directory cascade.
func TestFileSystem_Scenario(t *testing.T) {
	fs, root := newRootedFS(t, "fs")

	f := NewFile([]byte{0x41, 0x42})
	fs.AddNode(f)
	e := NewEntry("a.txt", f)
	require.NoError(t, root.AddEntry(e))
	require.NoError(t, fs.AddEntry(e))
	assert.Equal(t, 1, f.Refs())

	_, err := fs.RemoveEntry(e.ID())
	require.NoError(t, err)

	_, err = fs.GetNode(f.ID())
	assert.ErrorIs(t, err, quark.ErrNotFound)
	_, err = root.GetEntry("a.txt")
	assert.ErrorIs(t, err, quark.ErrNotFound)
}
