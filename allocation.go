package sole

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/shirou/gopsutil/mem"

	"github.com/ARTM2000/sole/internal/refcount"
)

// Initializer is implemented by payloads whose zero value needs further
// setup. Init runs once per constructed instance, before the instance is
// published. An error aborts construction with [ErrAllocationFailure].
type Initializer interface {
	Init() error
}

// MemoryProbe reports how much memory the system can still hand out. The
// [RawBuffer] allocation consults it before taking a block.
type MemoryProbe interface {
	Available() (uint64, error)
}

// systemMemory probes the host through gopsutil.
type systemMemory struct{}

func (systemMemory) Available() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// handle is what an allocator hands to the cell. ref is only set by the
// shared allocator.
type handle[T any] struct {
	ptr *T
	ref *refcount.Ref[T]
}

type allocator[T any] interface {
	construct() (handle[T], error)
	destroy(handle[T]) error
}

func newAllocator[T any](a Allocation, probe MemoryProbe) allocator[T] {
	switch a {
	case RawBuffer:
		return rawBufferAllocator[T]{probe: probe}
	case Shared:
		return sharedAllocator[T]{}
	default:
		return heapAllocator[T]{}
	}
}

func initialize[T any](p *T) error {
	in, ok := any(p).(Initializer)
	if !ok {
		return nil
	}
	if err := in.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrAllocationFailure, err)
	}
	return nil
}

func closePayload[T any](p *T) error {
	if c, ok := any(p).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ---------------------------------------------------------------------------
// Heap
// ---------------------------------------------------------------------------

type heapAllocator[T any] struct{}

func (heapAllocator[T]) construct() (handle[T], error) {
	p := new(T)
	if err := initialize(p); err != nil {
		return handle[T]{}, err
	}
	return handle[T]{ptr: p}, nil
}

func (heapAllocator[T]) destroy(h handle[T]) error {
	return closePayload(h.ptr)
}

// ---------------------------------------------------------------------------
// Raw buffer
// ---------------------------------------------------------------------------

// rawBufferAllocator takes a fresh block for every construction once the
// probe confirms there is room for it. Blocks are never recycled, so a
// destroyed instance keeps its identity and final state.
type rawBufferAllocator[T any] struct {
	probe MemoryProbe
}

func (a rawBufferAllocator[T]) construct() (handle[T], error) {
	size := uint64(unsafe.Sizeof(*new(T)))

	avail, err := a.probe.Available()
	if err != nil {
		return handle[T]{}, fmt.Errorf("%w: probing memory: %w", ErrAllocationFailure, err)
	}
	if avail < size {
		return handle[T]{}, fmt.Errorf("%w: need %d bytes, %d available", ErrAllocationFailure, size, avail)
	}

	block := new(T)
	if err := initialize(block); err != nil {
		return handle[T]{}, err
	}
	return handle[T]{ptr: block}, nil
}

func (a rawBufferAllocator[T]) destroy(h handle[T]) error {
	return closePayload(h.ptr)
}

// ---------------------------------------------------------------------------
// Shared
// ---------------------------------------------------------------------------

type sharedAllocator[T any] struct{}

func (sharedAllocator[T]) construct() (handle[T], error) {
	p := new(T)
	if err := initialize(p); err != nil {
		return handle[T]{}, err
	}
	return handle[T]{ptr: p, ref: refcount.New(p, closePayload[T])}, nil
}

func (sharedAllocator[T]) destroy(h handle[T]) error {
	left, err := h.ref.Release()
	if err != nil {
		return err
	}
	if left != 0 {
		return fmt.Errorf("%w: %d references left", ErrSharedInUse, left)
	}
	return nil
}
