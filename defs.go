// Package quark holds the contract types shared across the core: the error
// taxonomy and the boot-layout definitions consumed by the namespace manager.
package quark

// NodeDefType discriminates boot-layout node definitions
type NodeDefType string

const (
	DirNodeType  NodeDefType = "dir"
	FileNodeType NodeDefType = "file"
)

// NodeDef describes a single node to create in a namespace at boot.
// Paths are slash-separated and relative to the namespace root; missing
// ancestor directories are created implicitly.
type NodeDef struct {
	Type NodeDefType `yaml:"type" json:"type"`
	Path string      `yaml:"path" json:"path"`
	// Data is the initial file payload; ignored for dir defs.
	Data string `yaml:"data,omitempty" json:"data,omitempty"`
}
