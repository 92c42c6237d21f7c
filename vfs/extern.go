package vfs

import (
	"fmt"

	"github.com/quarkos-dev/quark"
)

// ExternDirectory grafts another filesystem into this one: all four listing
// operations forward to the root directory of the target filesystem, so
// entries added through it land in - and are visible from - the target's own
// root listing. Its inherited local mapping stays unused.
type ExternDirectory struct {
	Directory
	target *FileSystem
}

// NewExternDirectory builds a detached mount point onto target's root.
func NewExternDirectory(target *FileSystem) *ExternDirectory {
	return &ExternDirectory{
		Directory: *NewDirectory(),
		target:    target,
	}
}

// Target returns the filesystem this mount point forwards to.
func (x *ExternDirectory) Target() *FileSystem { return x.target }

// mountRoot resolves the target's root directory node. Fails when the target
// has no root entry yet or its root is not a directory.
func (x *ExternDirectory) mountRoot() (DirNode, error) {
	root := x.target.Root()
	if root == nil {
		return nil, fmt.Errorf("mount target %q has no root: %w", x.target.Name(), quark.ErrNotFound)
	}
	dir, ok := root.Node().(DirNode)
	if !ok {
		return nil, fmt.Errorf("mount target %q root is not a directory: %w", x.target.Name(), quark.ErrNotFound)
	}
	return dir, nil
}

func (x *ExternDirectory) AddEntry(e *Entry) error {
	dir, err := x.mountRoot()
	if err != nil {
		return err
	}
	return dir.AddEntry(e)
}

func (x *ExternDirectory) RemoveEntry(name string) (*Entry, error) {
	dir, err := x.mountRoot()
	if err != nil {
		return nil, err
	}
	return dir.RemoveEntry(name)
}

func (x *ExternDirectory) GetEntry(name string) (*Entry, error) {
	dir, err := x.mountRoot()
	if err != nil {
		return nil, err
	}
	return dir.GetEntry(name)
}

func (x *ExternDirectory) Entries() []*Entry {
	dir, err := x.mountRoot()
	if err != nil {
		return nil
	}
	return dir.Entries()
}
