package sole

import "fmt"

// Allocation selects how a holder constructs and destroys its payload.
type Allocation int

const (
	// Heap is the default allocation. The payload is a fresh zero value on the
	// heap; destruction closes it and drops the reference.
	Heap Allocation = iota

	// RawBuffer takes a recycled block sized for the payload, after checking
	// the registry's [MemoryProbe], and constructs the payload in place.
	// Destruction closes the payload, zeroes the block and returns it.
	RawBuffer

	// Shared keeps the payload behind a reference-counted handle that the cell
	// owns for as long as the instance is live.
	Shared
)

// String returns the human-readable name of the allocation.
func (a Allocation) String() string {
	switch a {
	case Heap:
		return "heap"
	case RawBuffer:
		return "raw-buffer"
	case Shared:
		return "shared"
	default:
		return "unknown"
	}
}

// Disposal selects how a holder's end of life is scheduled and what happens
// when the cell is accessed after teardown.
type Disposal int

const (
	// Standard registers a teardown hook with the registry. Access after
	// teardown fails with [ErrUseAfterDestruction].
	Standard Disposal = iota

	// Immortal never registers a teardown hook; the instance lives until the
	// process ends.
	Immortal

	// Resurrection registers a teardown hook like [Standard] but silently
	// constructs a new instance when accessed after teardown.
	Resurrection
)

// String returns the human-readable name of the disposal.
func (d Disposal) String() string {
	switch d {
	case Standard:
		return "standard"
	case Immortal:
		return "immortal"
	case Resurrection:
		return "resurrection"
	default:
		return "unknown"
	}
}

// Sync selects how concurrent access to a holder is synchronized.
type Sync int

const (
	// Mutex is the default synchronization. Callers block on a mutex owned by
	// the holder while another goroutine constructs or destroys the instance.
	Mutex Sync = iota

	// None performs no synchronization. The holder must only be used from a
	// single goroutine.
	None

	// Spin busy-waits on an atomic flag, yielding the processor between
	// attempts. Suited to very short critical sections.
	Spin

	// ThreadLocal gives every goroutine its own cell and instance, so no
	// admission is needed at all. Cells are keyed by goroutine and are kept,
	// together with their teardown hooks, until [Registry.Shutdown]; a
	// program that calls Get from many short-lived goroutines grows the
	// holder by one instance per goroutine.
	ThreadLocal
)

// String returns the human-readable name of the synchronization.
func (s Sync) String() string {
	switch s {
	case Mutex:
		return "mutex"
	case None:
		return "none"
	case Spin:
		return "spin"
	case ThreadLocal:
		return "thread-local"
	default:
		return "unknown"
	}
}

// Composition is one choice of each strategy family. Together with the
// payload type it identifies exactly one [Holder] within a [Registry].
type Composition struct {
	Allocation Allocation
	Disposal   Disposal
	Sync       Sync
}

func (c Composition) validate() error {
	switch {
	case c.Allocation < Heap || c.Allocation > Shared:
		return fmt.Errorf("%w: allocation %d", ErrUnknownStrategy, int(c.Allocation))
	case c.Disposal < Standard || c.Disposal > Resurrection:
		return fmt.Errorf("%w: disposal %d", ErrUnknownStrategy, int(c.Disposal))
	case c.Sync < Mutex || c.Sync > ThreadLocal:
		return fmt.Errorf("%w: sync %d", ErrUnknownStrategy, int(c.Sync))
	}
	return nil
}

// String returns the composition as "allocation/disposal/sync".
func (c Composition) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Allocation, c.Disposal, c.Sync)
}
