package sole

// scheduler accepts teardown hooks. [Registry] is the only implementation.
type scheduler interface {
	schedule(name string, hook func() error)
}

type disposer interface {
	// registerTeardown hands hook to s, or drops it.
	registerTeardown(s scheduler, name string, hook func() error)

	// handleDeadInstance decides whether a torn-down cell may be rebuilt.
	handleDeadInstance() error
}

func newDisposer(d Disposal) disposer {
	switch d {
	case Immortal:
		return immortalDisposal{}
	case Resurrection:
		return resurrectionDisposal{}
	default:
		return standardDisposal{}
	}
}

type standardDisposal struct{}

func (standardDisposal) registerTeardown(s scheduler, name string, hook func() error) {
	s.schedule(name, hook)
}

func (standardDisposal) handleDeadInstance() error {
	return ErrUseAfterDestruction
}

type immortalDisposal struct{}

func (immortalDisposal) registerTeardown(scheduler, string, func() error) {}

// Unreachable: without a hook the cell is never destroyed.
func (immortalDisposal) handleDeadInstance() error { return nil }

type resurrectionDisposal struct{}

func (resurrectionDisposal) registerTeardown(s scheduler, name string, hook func() error) {
	s.schedule(name, hook)
}

func (resurrectionDisposal) handleDeadInstance() error { return nil }
