package sole

import "go.uber.org/zap"

// Option selects one strategy of a [Composition] when obtaining a holder.
type Option func(*Composition)

// WithAllocation sets the [Allocation] of the composition. The default is
// [Heap].
func WithAllocation(a Allocation) Option {
	return func(c *Composition) {
		c.Allocation = a
	}
}

// WithDisposal sets the [Disposal] of the composition. The default is
// [Standard].
func WithDisposal(d Disposal) Option {
	return func(c *Composition) {
		c.Disposal = d
	}
}

// WithSync sets the [Sync] of the composition. The default is [Mutex].
func WithSync(s Sync) Option {
	return func(c *Composition) {
		c.Sync = s
	}
}

// RegistryOption configures a [Registry] during [NewRegistry].
type RegistryOption func(*Registry)

// WithLogger sets the logger used for lifecycle events. The default discards
// everything.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = l
	}
}

// WithMemoryProbe replaces the probe consulted by [RawBuffer] allocations.
func WithMemoryProbe(p MemoryProbe) RegistryOption {
	return func(r *Registry) {
		r.probe = p
	}
}

// WithExitHandler registers [Registry.Shutdown] with the process exit
// handlers, so that atexit.Exit tears down every cell.
func WithExitHandler() RegistryOption {
	return func(r *Registry) {
		r.exitHandler = true
	}
}

func compose(opts []Option) Composition {
	var c Composition
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
