// Package refcount provides a reference-counted handle to a single value.
package refcount

import (
	"errors"
	"sync/atomic"
)

// ErrReleased is returned when a handle is released more often than it was
// retained.
var ErrReleased = errors.New("refcount: handle already released")

// Ref counts the owners of a value. The finalizer runs once, when the last
// owner releases.
type Ref[T any] struct {
	v        *T
	n        atomic.Int64
	finalize func(*T) error
}

// New returns a handle to v owned by the caller (count 1). finalize may be
// nil.
func New[T any](v *T, finalize func(*T) error) *Ref[T] {
	r := &Ref[T]{v: v, finalize: finalize}
	r.n.Store(1)
	return r
}

// Value returns the counted value.
func (r *Ref[T]) Value() *T {
	return r.v
}

// Retain adds an owner and returns r for chaining.
func (r *Ref[T]) Retain() *Ref[T] {
	r.n.Add(1)
	return r
}

// Count returns the current number of owners.
func (r *Ref[T]) Count() int64 {
	return r.n.Load()
}

// Release drops one owner and returns how many remain. When none remain the
// finalizer runs and its error is returned.
func (r *Ref[T]) Release() (int64, error) {
	left := r.n.Add(-1)
	switch {
	case left < 0:
		r.n.Add(1)
		return 0, ErrReleased
	case left > 0:
		return left, nil
	}

	if r.finalize == nil {
		return 0, nil
	}
	return 0, r.finalize(r.v)
}
