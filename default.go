package sole

// bootstrap only holds the process registry.
var bootstrap = NewRegistry()

// processRegistry is the payload behind [Default].
type processRegistry struct {
	*Registry
}

func (p *processRegistry) Init() error {
	p.Registry = NewRegistry(WithExitHandler())
	return nil
}

// Default returns the process-wide registry. It is created on first use and
// shut down by atexit.Exit.
func Default() *Registry {
	p, err := Get[processRegistry](bootstrap, WithDisposal(Immortal), WithSync(Spin))
	if err != nil {
		// Heap construction with an infallible Init.
		panic(err)
	}
	return p.Registry
}

// Instance returns the instance of T for the selected composition in the
// [Default] registry.
func Instance[T any](opts ...Option) (*T, error) {
	return Get[T](Default(), opts...)
}
