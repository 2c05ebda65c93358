package sole

//go:generate mockgen -destination mock_probe_test.go -package sole github.com/ARTM2000/sole MemoryProbe

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared test payloads and helpers used across test files.

// lifecycle counts constructions and destructions of a payload type.
type lifecycle struct {
	constructed atomic.Int64
	destroyed   atomic.Int64
}

func (l *lifecycle) live() int64 {
	return l.constructed.Load() - l.destroyed.Load()
}

func (l *lifecycle) reset() {
	l.constructed.Store(0)
	l.destroyed.Store(0)
}

var counterLife lifecycle

// testCounter records every construction and destruction in counterLife.
type testCounter struct {
	ID     int64
	Closed bool
}

func (c *testCounter) Init() error {
	c.ID = counterLife.constructed.Add(1)
	return nil
}

func (c *testCounter) Close() error {
	counterLife.destroyed.Add(1)
	c.Closed = true
	return nil
}

// testPlain has neither Init nor Close.
type testPlain struct{ Value int }

var errFlaky = errors.New("flaky init")

// flakyFailures is how many upcoming testFlaky constructions fail.
var flakyFailures atomic.Int64

type testFlaky struct{ Ready bool }

func (f *testFlaky) Init() error {
	if flakyFailures.Add(-1) >= 0 {
		return errFlaky
	}
	f.Ready = true
	return nil
}

var errClose = errors.New("close failed")

type testFailCloser struct{}

func (*testFailCloser) Close() error { return errClose }

// testOrdered appends its name to closeOrder on Close.
type testOrderedA struct{}
type testOrderedB struct{}
type testOrderedC struct{}

var closeOrder []string

func (*testOrderedA) Close() error { closeOrder = append(closeOrder, "a"); return nil }
func (*testOrderedB) Close() error { closeOrder = append(closeOrder, "b"); return nil }
func (*testOrderedC) Close() error { closeOrder = append(closeOrder, "c"); return nil }

// newCounterRegistry resets counterLife and returns a registry that is shut
// down when the test ends.
func newCounterRegistry(t *testing.T, opts ...RegistryOption) *Registry {
	t.Helper()
	counterLife.reset()

	r := NewRegistry(opts...)
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })
	return r
}

// mustOf calls t.Fatal if the holder cannot be obtained.
func mustOf[T any](t *testing.T, r *Registry, opts ...Option) *Holder[T] {
	t.Helper()
	h, err := Of[T](r, opts...)
	require.NoError(t, err)
	return h
}

// mustGet calls t.Fatal if the instance cannot be obtained.
func mustGet[T any](t *testing.T, h *Holder[T]) *T {
	t.Helper()
	v, err := h.Get()
	require.NoError(t, err)
	return v
}

// mustShutdown calls t.Fatal if shutdown fails.
func mustShutdown(t *testing.T, r *Registry) {
	t.Helper()
	require.NoError(t, r.Shutdown(context.Background()))
}

// fixedProbe reports a constant amount of available memory.
type fixedProbe uint64

func (p fixedProbe) Available() (uint64, error) { return uint64(p), nil }
