package vfs

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/quarkos-dev/quark"
	"github.com/zeebo/blake3"
)

// Noder is the contract shared by every node kind a FileSystem can register
// (File, Directory, ExternDirectory). Implementations embed Node.
type Noder interface {
	ID() uuid.UUID
	Refs() int
	FS() *FileSystem
	Remove() error

	base() *Node
}

// Node is the identity-bearing base of all stored data: a generated id, the
// owning filesystem (nil until registered via [FileSystem.AddNode]) and an
// entry-based reference count.
//
// A node that never receives an entry is never removed automatically; auto
// removal only fires on the refcount transition caused by entry removal.
type Node struct {
	id   uuid.UUID
	fs   *FileSystem
	refs atomic.Int64
}

func newNode() Node {
	return Node{id: uuid.New()}
}

func (n *Node) ID() uuid.UUID { return n.id }

// Refs returns the number of live entries currently targeting the node.
func (n *Node) Refs() int { return int(n.refs.Load()) }

// FS returns the owning filesystem; nil while the node is detached.
func (n *Node) FS() *FileSystem { return n.fs }

// Remove unregisters the node from its filesystem regardless of the current
// reference count. Entries still targeting the node are NOT cleaned up and
// are left dangling; avoiding that is the caller's responsibility.
func (n *Node) Remove() error {
	if n.fs == nil {
		return fmt.Errorf("node %s is not registered: %w", n.id, quark.ErrNotFound)
	}
	_, err := n.fs.RemoveNode(n.id)
	return err
}

func (n *Node) base() *Node { return n }

// entryAdded increments the reference count. Called by [FileSystem.AddEntry].
func (n *Node) entryAdded(*Entry) {
	n.refs.Add(1)
}

// entryRemoved decrements the reference count and removes the node from its
// filesystem once no entries target it anymore.
func (n *Node) entryRemoved(*Entry) {
	if n.refs.Add(-1) <= 0 {
		n.Remove() // nolint:errcheck // node may already have been removed manually
	}
}

// File is a node holding an opaque byte payload.
type File struct {
	Node
	data []byte
}

// NewFile builds a detached file node. Register it with [FileSystem.AddNode]
// before targeting it with entries.
func NewFile(data []byte) *File {
	return &File{Node: newNode(), data: data}
}

func (f *File) Data() []byte { return f.data }

func (f *File) SetData(data []byte) { f.data = data }

func (f *File) Size() int { return len(f.data) }

// Sum returns the BLAKE3-256 checksum of the current payload.
func (f *File) Sum() [32]byte {
	return blake3.Sum256(f.data)
}
