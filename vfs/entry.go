package vfs

import "github.com/google/uuid"

// Entry is a named pointer from a directory listing to a node. Its parent
// directory is set when it is linked via [Directory.AddEntry] and cleared
// when it is detached again.
type Entry struct {
	id     uuid.UUID
	name   string
	node   Noder
	parent DirNode
}

// NewEntry builds a detached entry targeting node. It takes effect only once
// added to a directory and registered with [FileSystem.AddEntry].
func NewEntry(name string, node Noder) *Entry {
	return &Entry{id: uuid.New(), name: name, node: node}
}

func (e *Entry) ID() uuid.UUID { return e.id }

func (e *Entry) Name() string { return e.name }

// Node returns the entry's target node.
func (e *Entry) Node() Noder { return e.node }

// Parent returns the directory currently listing this entry; nil when the
// entry is not linked into any directory.
func (e *Entry) Parent() DirNode { return e.parent }
