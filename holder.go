package sole

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/ARTM2000/sole/internal/goid"
)

// Holder exposes exactly one lazily constructed instance of T for one
// [Composition]. Obtain holders with [Of]; the zero value is not usable.
type Holder[T any] struct {
	comp  Composition
	name  string
	reg   *Registry
	log   *zap.Logger
	alloc allocator[T]
	disp  disposer
	lock  sync.Locker

	shared cell[T]

	// locals maps goroutine id to *cell[T]; only used by ThreadLocal.
	locals sync.Map
}

// cell is the slot and destroyed flag for one instance. slot is read without
// the guard on the fast path; every other field is guarded.
type cell[T any] struct {
	slot      atomic.Pointer[instance[T]]
	destroyed bool
	hooked    bool
	owner     int64
}

type instance[T any] struct {
	h   handle[T]
	gen xid.ID
}

func newHolder[T any](r *Registry, t reflect.Type, comp Composition) *Holder[T] {
	name := fmt.Sprintf("%s(%s)", t, comp)
	return &Holder[T]{
		comp:  comp,
		name:  name,
		reg:   r,
		log:   r.log.With(zap.String("holder", name)),
		alloc: newAllocator[T](comp.Allocation, r.probe),
		disp:  newDisposer(comp.Disposal),
		lock:  newLocker(comp.Sync),
	}
}

// ---------------------------------------------------------------------------
// Public API
// ---------------------------------------------------------------------------

// Get returns the live instance, constructing it on first use. Concurrent
// callers block or spin according to the composition's [Sync] while another
// goroutine constructs or destroys the instance; under [ThreadLocal] every
// goroutine gets its own instance.
//
// Errors wrap [ErrAllocationFailure] when construction fails (the next call
// retries) and [ErrUseAfterDestruction] when a [Standard] cell is accessed
// after teardown.
//
// Get must not be called for the same holder from inside T's Init or Close.
func (h *Holder[T]) Get() (*T, error) {
	c := h.cell()

	if inst := c.slot.Load(); inst != nil {
		return inst.h.ptr, nil
	}

	g := admit(h.lock)
	defer g.release()

	if inst := c.slot.Load(); inst != nil {
		return inst.h.ptr, nil
	}

	if c.destroyed {
		if err := h.disp.handleDeadInstance(); err != nil {
			h.log.Warn("instance accessed after destruction", h.fields(c)...)
			return nil, fmt.Errorf("%s: %w", h.name, err)
		}
		h.log.Info("resurrecting instance", h.fields(c)...)
	}

	hd, err := h.alloc.construct()
	if err != nil {
		h.log.Warn("construction failed", append(h.fields(c), zap.Error(err))...)
		return nil, fmt.Errorf("%s: %w", h.name, err)
	}

	inst := &instance[T]{h: hd, gen: xid.New()}
	c.slot.Store(inst)
	c.destroyed = false
	h.log.Debug("instance constructed", append(h.fields(c), zap.Stringer("generation", inst.gen))...)

	if !c.hooked {
		c.hooked = true
		h.disp.registerTeardown(h.reg, h.name, func() error { return h.destroy(c) })
	}

	return inst.h.ptr, nil
}

// Composition returns the strategies this holder was built with.
func (h *Holder[T]) Composition() Composition {
	return h.comp
}

// State reports the lifecycle state of the cell. Under [ThreadLocal] it is
// the state of the calling goroutine's cell.
func (h *Holder[T]) State() State {
	c, ok := h.peek()
	if !ok {
		return Absent
	}

	g := admit(h.lock)
	defer g.release()

	switch {
	case c.slot.Load() != nil:
		return Live
	case c.destroyed:
		return Destroyed
	default:
		return Absent
	}
}

// Generation returns the unique id of the live instance, or "" when the cell
// is empty. A resurrected instance gets a new generation.
func (h *Holder[T]) Generation() string {
	c, ok := h.peek()
	if !ok {
		return ""
	}
	if inst := c.slot.Load(); inst != nil {
		return inst.gen.String()
	}
	return ""
}

// ---------------------------------------------------------------------------
// Internal
// ---------------------------------------------------------------------------

// destroy tears down the cell's instance. It is only reachable through the
// hook registered on first construction and is a no-op on an empty cell.
func (h *Holder[T]) destroy(c *cell[T]) error {
	g := admit(h.lock)
	defer g.release()

	inst := c.slot.Load()
	if inst == nil {
		return nil
	}

	err := h.alloc.destroy(inst.h)
	c.slot.Store(nil)
	c.destroyed = true

	fields := append(h.fields(c), zap.Stringer("generation", inst.gen))
	if err != nil {
		h.log.Warn("instance destroyed with error", append(fields, zap.Error(err))...)
		return fmt.Errorf("%s: destroying generation %s: %w", h.name, inst.gen, err)
	}
	h.log.Debug("instance destroyed", fields...)
	return nil
}

// cell returns the cell the calling goroutine should use, creating the
// goroutine's own cell under ThreadLocal.
func (h *Holder[T]) cell() *cell[T] {
	if h.comp.Sync != ThreadLocal {
		return &h.shared
	}

	id := goid.Current()
	if c, ok := h.locals.Load(id); ok {
		return c.(*cell[T])
	}
	c, _ := h.locals.LoadOrStore(id, &cell[T]{owner: id})
	return c.(*cell[T])
}

// peek is like cell but never creates one.
func (h *Holder[T]) peek() (*cell[T], bool) {
	if h.comp.Sync != ThreadLocal {
		return &h.shared, true
	}

	c, ok := h.locals.Load(goid.Current())
	if !ok {
		return nil, false
	}
	return c.(*cell[T]), true
}

func (h *Holder[T]) fields(c *cell[T]) []zap.Field {
	if c.owner == 0 {
		return nil
	}
	return []zap.Field{zap.Int64("goroutine", c.owner)}
}
