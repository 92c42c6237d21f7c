package kernel

// Manager is a named capability provider driven by the kernel through a
// strict two-phase lifecycle. The kernel calls Setup exactly once on every
// registered manager, in registration order, before any manager's Start
// runs; it then calls Start once per manager in the same order.
type Manager interface {
	// Name identifies the manager within a kernel; unique per kernel.
	Name() string

	// Setup stores the kernel back-reference and performs initialization
	// that does not depend on other managers. Consuming other managers here
	// is unsafe: their own Setup may not have executed yet.
	Setup(k *Kernel) error

	// Start performs initialization requiring the full registry. Looking up
	// other managers by name is safe at this point.
	Start() error

	// ModuleAPI returns the capability object this manager exposes to other
	// in-process consumers. Implementations may expose internal/trusted
	// capabilities but must never expose anything that would compromise the
	// embedding host if misused.
	ModuleAPI() any
}

// Base supplies the default Manager behavior for embedding: Setup stores the
// kernel back-reference, Start is a no-op and ModuleAPI is nil.
type Base struct {
	name   string
	kernel *Kernel
}

func NewBase(name string) Base {
	return Base{name: name}
}

func (b *Base) Name() string { return b.name }

func (b *Base) Setup(k *Kernel) error {
	b.kernel = k
	return nil
}

func (b *Base) Start() error { return nil }

func (b *Base) ModuleAPI() any { return nil }

// Kernel returns the back-reference stored during Setup; nil before then.
func (b *Base) Kernel() *Kernel { return b.kernel }
