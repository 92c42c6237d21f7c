package modules

import (
	"github.com/quarkos-dev/quark"
	"github.com/quarkos-dev/quark/kernel"
)

// Builtins constructs the built-in managers in the order an embedding host
// passes them to the kernel: the namespace manager first so its filesystems
// exist before the mount manager grafts them in Start.
func Builtins(layouts map[string][]quark.NodeDef, mounts []Mount) []kernel.Manager {
	return []kernel.Manager{
		NewNamespaceManager(layouts),
		NewMountManager(mounts),
	}
}
