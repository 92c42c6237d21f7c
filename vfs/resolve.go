package vfs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quarkos-dev/quark"
)

// splitPath breaks a slash-separated path into its non-empty components.
func splitPath(path string) []string {
	parts := make([]string, 0, 4)
	for _, name := range strings.Split(strings.Trim(path, "/"), "/") {
		if name != "" {
			parts = append(parts, name)
		}
	}
	return parts
}

// Resolve walks path from the filesystem root and returns the terminal node.
// It fails when the filesystem has no root, a component is missing, or the
// walk descends through a non-directory.
func Resolve(fs *FileSystem, path string) (Noder, error) {
	root := fs.Root()
	if root == nil {
		return nil, fmt.Errorf("filesystem %q has no root: %w", fs.Name(), quark.ErrNotFound)
	}
	cur := root.Node()
	for _, name := range splitPath(path) {
		dir, ok := cur.(DirNode)
		if !ok {
			return nil, fmt.Errorf("%q in %q is not a directory: %w", name, path, quark.ErrNotFound)
		}
		e, err := dir.GetEntry(name)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", path, err)
		}
		cur = e.Node()
	}
	return cur, nil
}

// EnsureDir walks path from the filesystem root, creating and registering
// any missing directories along the way, and returns the leaf directory. It
// never fails because the leaf already exists.
func EnsureDir(fs *FileSystem, path string) (DirNode, error) {
	root := fs.Root()
	if root == nil {
		return nil, fmt.Errorf("filesystem %q has no root: %w", fs.Name(), quark.ErrNotFound)
	}
	cur, ok := root.Node().(DirNode)
	if !ok {
		return nil, fmt.Errorf("filesystem %q root is not a directory: %w", fs.Name(), quark.ErrNotFound)
	}
	for _, name := range splitPath(path) {
		e, err := cur.GetEntry(name)
		if err == nil {
			next, ok := e.Node().(DirNode)
			if !ok {
				return nil, fmt.Errorf("%q in %q is not a directory: %w", name, path, quark.ErrNotFound)
			}
			cur = next
			continue
		}
		if !errors.Is(err, quark.ErrNotFound) {
			return nil, err
		}
		d := NewDirectory()
		fs.AddNode(d)
		de := NewEntry(name, d)
		if err := cur.AddEntry(de); err != nil {
			return nil, err
		}
		if err := fs.AddEntry(de); err != nil {
			return nil, err
		}
		cur = d
	}
	return cur, nil
}
