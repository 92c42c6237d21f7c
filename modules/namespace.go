// Package modules contains the built-in managers an embedding host composes
// into a kernel: the namespace manager owning the in-memory filesystems and
// the mount manager grafting namespaces together.
package modules

import (
	"encoding/hex"
	"errors"
	"fmt"
	"path"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/quarkos-dev/quark"
	"github.com/quarkos-dev/quark/internal/util"
	"github.com/quarkos-dev/quark/kernel"
	"github.com/quarkos-dev/quark/vfs"
	"github.com/rs/zerolog"
)

// NamespaceManagerName is the registry name of [NamespaceManager].
const NamespaceManagerName = "namespace"

// NamespaceManager owns the named filesystems of the host. During Setup it
// builds every configured namespace (root directory plus boot layout) so
// that other managers can consume them from Start onward.
type NamespaceManager struct {
	kernel.Base
	layouts    map[string][]quark.NodeDef
	namespaces map[string]*vfs.FileSystem
	api        *NamespaceAPI
	log        zerolog.Logger
}

// NewNamespaceManager creates the manager for the given boot layouts, one
// entry per namespace name.
func NewNamespaceManager(layouts map[string][]quark.NodeDef) *NamespaceManager {
	m := &NamespaceManager{
		Base:       kernel.NewBase(NamespaceManagerName),
		layouts:    layouts,
		namespaces: make(map[string]*vfs.FileSystem, len(layouts)),
		log:        util.GetLogger("NamespaceManager"),
	}
	m.api = &NamespaceAPI{m: m}
	return m
}

func (m *NamespaceManager) Setup(k *kernel.Kernel) error {
	if err := m.Base.Setup(k); err != nil {
		return err
	}
	for name, defs := range m.layouts {
		fs, err := buildNamespace(name, defs)
		if err != nil {
			return fmt.Errorf("namespace %q: %w", name, err)
		}
		m.namespaces[name] = fs
		m.log.Info().Str("namespace", name).Int("defs", len(defs)).Msg("Namespace built")
	}
	return nil
}

func (m *NamespaceManager) ModuleAPI() any { return m.api }

// buildNamespace creates a filesystem with a root directory and applies the
// boot layout to it.
func buildNamespace(name string, defs []quark.NodeDef) (*vfs.FileSystem, error) {
	fs := vfs.New(name)
	root := vfs.NewDirectory()
	fs.AddNode(root)
	rootEntry := vfs.NewEntry("/", root)
	if err := fs.AddEntry(rootEntry); err != nil {
		return nil, err
	}
	fs.SetRoot(rootEntry)

	for _, def := range defs {
		switch def.Type {
		case quark.DirNodeType:
			if _, err := vfs.EnsureDir(fs, def.Path); err != nil {
				return nil, err
			}
		case quark.FileNodeType:
			if err := createFile(fs, def.Path, []byte(def.Data)); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("node def %q: unknown type %q", def.Path, def.Type)
		}
	}
	return fs, nil
}

// createFile registers a new file node and links it at p, creating missing
// ancestor directories.
func createFile(fs *vfs.FileSystem, p string, data []byte) error {
	dirPath, name := path.Split(p)
	if name == "" {
		return fmt.Errorf("file def %q has no name: %w", p, quark.ErrNotFound)
	}
	dir, err := vfs.EnsureDir(fs, dirPath)
	if err != nil {
		return err
	}
	f := vfs.NewFile(data)
	fs.AddNode(f)
	e := vfs.NewEntry(name, f)
	if err := dir.AddEntry(e); err != nil {
		return err
	}
	return fs.AddEntry(e)
}

// NodeInfo is the stat result the namespace API reports for a node.
type NodeInfo struct {
	ID   uuid.UUID
	Kind string // "file", "dir" or "mount"
	Refs int
	Size string // humanized payload size; "-" for non-files
}

// NamespaceAPI is the capability object [NamespaceManager] exposes. It is a
// trusted in-process surface; callers treat its failures as programming
// errors, not transient conditions.
type NamespaceAPI struct {
	m *NamespaceManager
}

// Namespace returns the filesystem backing the named namespace.
func (a *NamespaceAPI) Namespace(name string) (*vfs.FileSystem, error) {
	fs, ok := a.m.namespaces[name]
	if !ok {
		return nil, fmt.Errorf("namespace %q: %w", name, quark.ErrNotFound)
	}
	return fs, nil
}

// Resolve walks p from the namespace root and returns the terminal node.
func (a *NamespaceAPI) Resolve(ns, p string) (vfs.Noder, error) {
	fs, err := a.Namespace(ns)
	if err != nil {
		return nil, err
	}
	return vfs.Resolve(fs, p)
}

// List returns the listing of the directory at p.
func (a *NamespaceAPI) List(ns, p string) ([]*vfs.Entry, error) {
	n, err := a.Resolve(ns, p)
	if err != nil {
		return nil, err
	}
	dir, ok := n.(vfs.DirNode)
	if !ok {
		return nil, fmt.Errorf("%q is not a directory: %w", p, quark.ErrNotFound)
	}
	return dir.Entries(), nil
}

// ReadFile returns the payload of the file at p.
func (a *NamespaceAPI) ReadFile(ns, p string) ([]byte, error) {
	f, err := a.file(ns, p)
	if err != nil {
		return nil, err
	}
	return f.Data(), nil
}

// WriteFile replaces the payload of the file at p, creating the file (and
// any missing ancestor directories) when it does not exist yet.
func (a *NamespaceAPI) WriteFile(ns, p string, data []byte) error {
	f, err := a.file(ns, p)
	if err == nil {
		f.SetData(data)
		return nil
	}
	if !errors.Is(err, quark.ErrNotFound) {
		return err
	}
	fs, err := a.Namespace(ns)
	if err != nil {
		return err
	}
	return createFile(fs, p, data)
}

// Checksum returns the hex BLAKE3-256 checksum of the file at p.
func (a *NamespaceAPI) Checksum(ns, p string) (string, error) {
	f, err := a.file(ns, p)
	if err != nil {
		return "", err
	}
	sum := f.Sum()
	return hex.EncodeToString(sum[:]), nil
}

// Stat reports identity, kind, refcount and humanized size of the node at p.
func (a *NamespaceAPI) Stat(ns, p string) (NodeInfo, error) {
	n, err := a.Resolve(ns, p)
	if err != nil {
		return NodeInfo{}, err
	}
	info := NodeInfo{ID: n.ID(), Refs: n.Refs(), Size: "-"}
	switch t := n.(type) {
	case *vfs.File:
		info.Kind = "file"
		info.Size = humanize.IBytes(uint64(t.Size()))
	case *vfs.ExternDirectory:
		info.Kind = "mount"
	case vfs.DirNode:
		info.Kind = "dir"
	default:
		info.Kind = "node"
	}
	return info, nil
}

func (a *NamespaceAPI) file(ns, p string) (*vfs.File, error) {
	n, err := a.Resolve(ns, p)
	if err != nil {
		return nil, err
	}
	f, ok := n.(*vfs.File)
	if !ok {
		return nil, fmt.Errorf("%q is not a file: %w", p, quark.ErrNotFound)
	}
	return f, nil
}
