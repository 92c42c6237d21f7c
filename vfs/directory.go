package vfs

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/quarkos-dev/quark"
)

// DirNode is the listing contract implemented by [Directory] and
// [ExternDirectory].
type DirNode interface {
	Noder

	AddEntry(e *Entry) error
	RemoveEntry(name string) (*Entry, error)
	GetEntry(name string) (*Entry, error)
	Entries() []*Entry
}

// Directory is a node whose payload is a name→entry mapping. The mapping is
// private to the directory; the filesystem's flat entry registry is a
// separate index.
type Directory struct {
	Node
	children *xsync.Map[string, *Entry]
}

// NewDirectory builds a detached, empty directory node.
func NewDirectory() *Directory {
	return &Directory{
		Node:     newNode(),
		children: xsync.NewMap[string, *Entry](),
	}
}

// AddEntry links e into the listing and sets its parent to this directory.
// Fails if the name is already taken.
func (d *Directory) AddEntry(e *Entry) error {
	if _, loaded := d.children.LoadOrStore(e.name, e); loaded {
		return fmt.Errorf("entry %q: %w", e.name, quark.ErrDuplicateName)
	}
	e.parent = d
	return nil
}

// RemoveEntry unlinks and returns the named entry, clearing its parent.
func (d *Directory) RemoveEntry(name string) (*Entry, error) {
	e, ok := d.children.LoadAndDelete(name)
	if !ok {
		return nil, fmt.Errorf("entry %q: %w", name, quark.ErrNotFound)
	}
	e.parent = nil
	return e, nil
}

func (d *Directory) GetEntry(name string) (*Entry, error) {
	e, ok := d.children.Load(name)
	if !ok {
		return nil, fmt.Errorf("entry %q: %w", name, quark.ErrNotFound)
	}
	return e, nil
}

// Entries returns the current listing in no particular order.
func (d *Directory) Entries() []*Entry {
	entries := make([]*Entry, 0, d.children.Size())
	d.children.Range(func(_ string, e *Entry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}
