package modules

import (
	"fmt"
	"path"
	"strings"

	"github.com/quarkos-dev/quark"
	"github.com/quarkos-dev/quark/internal/util"
	"github.com/quarkos-dev/quark/kernel"
	"github.com/quarkos-dev/quark/vfs"
	"github.com/rs/zerolog"
)

// MountManagerName is the registry name of [MountManager].
const MountManagerName = "mount"

// Mount grafts the root of the Target namespace into the From namespace at
// the slash-separated path At.
type Mount struct {
	From   string
	At     string
	Target string
}

// MountManager grafts namespaces together with extern directories. The
// grafting runs in Start, after the namespace manager has built every
// filesystem.
type MountManager struct {
	kernel.Base
	mounts []Mount
	log    zerolog.Logger
}

func NewMountManager(mounts []Mount) *MountManager {
	return &MountManager{
		Base:   kernel.NewBase(MountManagerName),
		mounts: mounts,
		log:    util.GetLogger("MountManager"),
	}
}

func (m *MountManager) Start() error {
	api, err := kernel.API[*NamespaceAPI](m.Kernel(), NamespaceManagerName)
	if err != nil {
		return err
	}
	for _, mnt := range m.mounts {
		if err := graft(api, mnt); err != nil {
			return fmt.Errorf("mount %s:%s -> %s: %w", mnt.From, mnt.At, mnt.Target, err)
		}
		m.log.Info().
			Str("from", mnt.From).
			Str("at", mnt.At).
			Str("target", mnt.Target).
			Msg("Namespace mounted")
	}
	return nil
}

// ModuleAPI exposes the configured mount table.
func (m *MountManager) ModuleAPI() any { return &MountAPI{m: m} }

// MountAPI is the capability object [MountManager] exposes.
type MountAPI struct {
	m *MountManager
}

// Mounts returns a copy of the configured mount table.
func (a *MountAPI) Mounts() []Mount {
	mounts := make([]Mount, len(a.m.mounts))
	copy(mounts, a.m.mounts)
	return mounts
}

// graft creates an extern directory in the source namespace forwarding to
// the target namespace's root and links it at the mount path.
func graft(api *NamespaceAPI, mnt Mount) error {
	src, err := api.Namespace(mnt.From)
	if err != nil {
		return err
	}
	dst, err := api.Namespace(mnt.Target)
	if err != nil {
		return err
	}
	dirPath, name := path.Split(strings.Trim(mnt.At, "/"))
	if name == "" {
		return fmt.Errorf("mount path %q has no name: %w", mnt.At, quark.ErrNotFound)
	}
	parent, err := vfs.EnsureDir(src, dirPath)
	if err != nil {
		return err
	}
	x := vfs.NewExternDirectory(dst)
	src.AddNode(x)
	e := vfs.NewEntry(name, x)
	if err := parent.AddEntry(e); err != nil {
		return err
	}
	return src.AddEntry(e)
}
