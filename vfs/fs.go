// Package vfs implements the in-memory, reference-counted virtual file
// system: identity-bearing nodes, named entries, directories and mount
// bridges between otherwise independent filesystems.
package vfs

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/quarkos-dev/quark"
	"github.com/quarkos-dev/quark/internal/util"
	"github.com/rs/zerolog"
)

// FileSystem is the owning registry of a namespace: flat id-keyed indexes of
// all nodes and entries, plus an optional root entry set by the caller.
//
// All operations are synchronous and run to completion; failures are
// immediate and surfaced to the direct caller.
type FileSystem struct {
	name    string
	nodes   *xsync.Map[uuid.UUID, Noder]
	entries *xsync.Map[uuid.UUID, *Entry]
	root    *Entry
	log     zerolog.Logger
}

// New creates an empty filesystem. The name is diagnostic only.
func New(name string) *FileSystem {
	return &FileSystem{
		name:    name,
		nodes:   xsync.NewMap[uuid.UUID, Noder](),
		entries: xsync.NewMap[uuid.UUID, *Entry](),
		log:     util.GetLogger("vfs").With().Str("fs", name).Logger(),
	}
}

func (fs *FileSystem) Name() string { return fs.name }

// Root returns the root entry; nil until set by the caller.
func (fs *FileSystem) Root() *Entry { return fs.root }

// SetRoot designates the namespace's root entry. No operation implies it.
func (fs *FileSystem) SetRoot(e *Entry) { fs.root = e }

// AddNode registers n under its id and binds it to this filesystem. Node ids
// are generated uniquely at construction, so there is no collision to fail
// on.
func (fs *FileSystem) AddNode(n Noder) {
	n.base().fs = fs
	fs.nodes.Store(n.ID(), n)
	fs.log.Trace().Stringer("node", n.ID()).Msg("Node registered")
}

// RemoveNode unregisters and returns the node. It does not inspect or clean
// up entries still pointing at the node; see [Node.Remove].
func (fs *FileSystem) RemoveNode(id uuid.UUID) (Noder, error) {
	n, ok := fs.nodes.LoadAndDelete(id)
	if !ok {
		return nil, fmt.Errorf("node %s: %w", id, quark.ErrNotFound)
	}
	fs.log.Trace().Stringer("node", id).Msg("Node removed")
	return n, nil
}

func (fs *FileSystem) GetNode(id uuid.UUID) (Noder, error) {
	n, ok := fs.nodes.Load(id)
	if !ok {
		return nil, fmt.Errorf("node %s: %w", id, quark.ErrNotFound)
	}
	return n, nil
}

// AddEntry registers e under its id and notifies the target node, which
// increments its reference count. The target must already be registered so
// that no entry can ever point outside the node registry.
func (fs *FileSystem) AddEntry(e *Entry) error {
	if e.node == nil {
		return fmt.Errorf("entry %q has no target node: %w", e.name, quark.ErrNotFound)
	}
	if _, ok := fs.nodes.Load(e.node.ID()); !ok {
		return fmt.Errorf("entry %q targets unregistered node %s: %w", e.name, e.node.ID(), quark.ErrNotFound)
	}
	fs.entries.Store(e.id, e)
	e.node.base().entryAdded(e)
	fs.log.Trace().Stringer("entry", e.id).Str("name", e.name).Msg("Entry registered")
	return nil
}

// RemoveEntry unregisters and returns the entry. If the entry is listed in a
// parent directory it is detached from that listing first; the target node
// is then notified and removes itself once its reference count reaches zero.
func (fs *FileSystem) RemoveEntry(id uuid.UUID) (*Entry, error) {
	e, ok := fs.entries.Load(id)
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", id, quark.ErrNotFound)
	}
	if p := e.parent; p != nil {
		if _, err := p.RemoveEntry(e.name); err != nil {
			fs.log.Debug().Err(err).Str("name", e.name).Msg("Entry already detached from parent")
		}
	}
	fs.entries.Delete(id)
	e.node.base().entryRemoved(e)
	fs.log.Trace().Stringer("entry", id).Str("name", e.name).Msg("Entry removed")
	return e, nil
}

func (fs *FileSystem) GetEntry(id uuid.UUID) (*Entry, error) {
	e, ok := fs.entries.Load(id)
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", id, quark.ErrNotFound)
	}
	return e, nil
}

// Entries returns all registered entries in no particular order.
func (fs *FileSystem) Entries() []*Entry {
	entries := make([]*Entry, 0, fs.entries.Size())
	fs.entries.Range(func(_ uuid.UUID, e *Entry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}
