package sole

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/tebeka/atexit"
	"go.uber.org/zap"
)

// Registry owns one [Holder] per payload type and [Composition], and the
// teardown hooks those holders register. Create one with [NewRegistry] and
// end it with [Registry.Shutdown].
type Registry struct {
	mu sync.Mutex

	holders map[key]any

	// hooks are recorded in construction order. Shutdown runs them in
	// reverse.
	hooks []teardown

	log         *zap.Logger
	probe       MemoryProbe
	exitHandler bool
	shutdown    bool
}

type key struct {
	typ  reflect.Type
	comp Composition
}

type teardown struct {
	name string
	run  func() error
}

// NewRegistry creates an empty [Registry].
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		holders: make(map[key]any),
		log:     zap.NewNop(),
		probe:   systemMemory{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.exitHandler {
		atexit.Register(r.exit)
	}
	return r
}

// ---------------------------------------------------------------------------
// Generic helpers
// ---------------------------------------------------------------------------

// Of returns the holder for T under the composition selected by opts,
// creating it on first reference. Every call with the same type and
// composition returns the same holder:
//
//	h, err := sole.Of[Config](r, sole.WithSync(sole.Spin))
func Of[T any](r *Registry, opts ...Option) (*Holder[T], error) {
	comp := compose(opts)
	if err := comp.validate(); err != nil {
		return nil, err
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	k := key{typ: t, comp: comp}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.holders[k]; ok {
		return h.(*Holder[T]), nil
	}

	h := newHolder[T](r, t, comp)
	r.holders[k] = h
	r.log.Debug("holder created", zap.String("holder", h.name))
	return h, nil
}

// Get is shorthand for [Of] followed by [Holder.Get]:
//
//	cfg, err := sole.Get[Config](r)
func Get[T any](r *Registry, opts ...Option) (*T, error) {
	h, err := Of[T](r, opts...)
	if err != nil {
		return nil, err
	}
	return h.Get()
}

// ---------------------------------------------------------------------------
// Registry methods
// ---------------------------------------------------------------------------

// Len returns the number of holders in the registry.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.holders)
}

// Compositions returns a sorted description of every holder, in the form
// "type(allocation/disposal/sync)".
func (r *Registry) Compositions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := lo.MapToSlice(r.holders, func(k key, _ any) string {
		return fmt.Sprintf("%s(%s)", k.typ, k.comp)
	})
	slices.Sort(names)
	return names
}

// Shutdown runs every registered teardown hook once, in reverse registration
// order, so instances constructed last are destroyed first. The context
// bounds the whole sequence; if it ends, remaining hooks are skipped and the
// context error is part of the result. Hook errors are collected.
//
// Shutdown is one-shot: later calls return [ErrAlreadyShutdown], and hooks
// registered afterwards are dropped. Instances of [Resurrection] holders
// rebuilt after Shutdown are therefore never torn down.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.shutdown {
		r.mu.Unlock()
		return ErrAlreadyShutdown
	}
	r.shutdown = true
	hooks := r.hooks
	r.hooks = nil
	r.mu.Unlock()

	// Hooks take their holder's guard, and Get takes r.mu while holding it,
	// so hooks run without r.mu.
	var result *multierror.Error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}
		if err := hooks[i].run(); err != nil {
			r.log.Error("teardown failed", zap.String("holder", hooks[i].name), zap.Error(err))
			result = multierror.Append(result, err)
		}
	}

	r.log.Debug("registry shut down", zap.Int("hooks", len(hooks)))
	return result.ErrorOrNil()
}

func (r *Registry) schedule(name string, hook func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shutdown {
		r.log.Warn("teardown registered after shutdown will not run", zap.String("holder", name))
		return
	}
	r.hooks = append(r.hooks, teardown{name: name, run: hook})
}

func (r *Registry) exit() {
	if err := r.Shutdown(context.Background()); err != nil && !errors.Is(err, ErrAlreadyShutdown) {
		r.log.Error("shutdown at exit", zap.Error(err))
	}
}
