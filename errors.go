package quark

import "errors"

var (
	// ErrNotFound is returned when a node, entry, directory name or manager
	// lookup misses its registry.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a directory entry name or a manager
	// name collides with one already registered.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrKernelStarted is returned when a manager registration is attempted
	// after the kernel has started. Starting a kernel is irreversible for
	// the lifetime of the instance.
	ErrKernelStarted = errors.New("kernel already started")
)
