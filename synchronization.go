package sole

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// guard is the admission token for a holder's critical section.
type guard struct {
	l sync.Locker
}

func admit(l sync.Locker) guard {
	l.Lock()
	return guard{l: l}
}

func (g guard) release() {
	g.l.Unlock()
}

func newLocker(s Sync) sync.Locker {
	switch s {
	case Mutex:
		return new(sync.Mutex)
	case Spin:
		return new(spinLock)
	default:
		return noLock{}
	}
}

// noLock backs [None] and [ThreadLocal].
type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

// spinLock busy-waits on a flag. The CAS acquires and the store releases, so
// writes made while holding it are visible to the next holder.
type spinLock struct {
	held atomic.Bool
}

func (s *spinLock) Lock() {
	for !s.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (s *spinLock) Unlock() {
	s.held.Store(false)
}
