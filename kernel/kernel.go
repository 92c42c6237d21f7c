// Package kernel implements the service-registry core: a uniquely-named set
// of capability-providing managers with an ordered two-phase startup.
package kernel

import (
	"fmt"
	"slices"
	"sync"

	"github.com/quarkos-dev/quark"
	"github.com/quarkos-dev/quark/internal/util"
	"github.com/rs/zerolog"
)

// Kernel owns the manager registry and drives the two-phase lifecycle. Once
// started, registration is locked for the lifetime of the instance.
type Kernel struct {
	mu       sync.RWMutex
	managers map[string]Manager
	order    []Manager
	started  bool
	log      zerolog.Logger
}

// New creates a kernel and registers the given managers in order.
func New(managers ...Manager) (*Kernel, error) {
	k := &Kernel{
		managers: make(map[string]Manager, len(managers)),
		log:      util.GetLogger("kernel"),
	}
	for _, m := range managers {
		if err := k.RegisterManager(m); err != nil {
			return nil, err
		}
	}
	return k, nil
}

// RegisterManager adds m to the registry. Registration is only legal before
// Start; manager names are unique within a kernel.
func (k *Kernel) RegisterManager(m Manager) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.started {
		return fmt.Errorf("register %q: %w", m.Name(), quark.ErrKernelStarted)
	}
	if _, ok := k.managers[m.Name()]; ok {
		return fmt.Errorf("manager %q: %w", m.Name(), quark.ErrDuplicateName)
	}
	k.managers[m.Name()] = m
	k.order = append(k.order, m)
	k.log.Debug().Str("manager", m.Name()).Msg("Manager registered")
	return nil
}

// Manager returns the registered manager with the given name.
func (k *Kernel) Manager(name string) (Manager, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	m, ok := k.managers[name]
	if !ok {
		return nil, fmt.Errorf("manager %q: %w", name, quark.ErrNotFound)
	}
	return m, nil
}

func (k *Kernel) Started() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.started
}

// Start locks registration, then runs Setup on every manager in registration
// order followed by Start in the same order. The two passes guarantee that
// no manager's Start can observe another manager that has not completed
// Setup. The first failing hook aborts the sequence and is returned wrapped
// with the manager name.
func (k *Kernel) Start() error {
	k.mu.Lock()
	if k.started {
		k.mu.Unlock()
		return fmt.Errorf("start: %w", quark.ErrKernelStarted)
	}
	k.started = true
	order := slices.Clone(k.order)
	k.mu.Unlock()

	for _, m := range order {
		k.log.Debug().Str("manager", m.Name()).Msg("Setting up manager")
		if err := m.Setup(k); err != nil {
			return fmt.Errorf("setup %q: %w", m.Name(), err)
		}
	}
	for _, m := range order {
		k.log.Debug().Str("manager", m.Name()).Msg("Starting manager")
		if err := m.Start(); err != nil {
			return fmt.Errorf("start %q: %w", m.Name(), err)
		}
	}
	k.log.Info().Int("managers", len(order)).Msg("Kernel started")
	return nil
}

// API resolves a manager by name and returns its module API asserted to T.
// It is the typed replacement for addressing managers as named properties of
// the kernel.
func API[T any](k *Kernel, name string) (T, error) {
	var zero T
	m, err := k.Manager(name)
	if err != nil {
		return zero, err
	}
	api, ok := m.ModuleAPI().(T)
	if !ok {
		return zero, fmt.Errorf("manager %q exposes %T, not %T: %w", name, m.ModuleAPI(), zero, quark.ErrNotFound)
	}
	return api, nil
}
