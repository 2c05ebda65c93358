// Package sole provides lazily constructed single instances whose allocation,
// disposal and synchronization are chosen independently.
//
// A [Registry] owns one [Holder] per payload type and [Composition]. The
// holder constructs its instance on the first [Holder.Get] and returns the
// same instance afterwards. [Registry.Shutdown] tears instances down in
// reverse construction order.
//
// # Quick Start
//
//	r := sole.NewRegistry()
//	defer r.Shutdown(context.Background())
//
//	cfg, err := sole.Get[Config](r)
//
// Payloads are built from their zero value. If *T implements [Initializer]
// its Init runs before the instance is published; if *T implements
// [io.Closer] its Close runs on teardown.
//
// # Strategies
//
// [Allocation] decides how the instance is built: [Heap] (default),
// [RawBuffer] or [Shared].
//
// [Disposal] decides what teardown means: [Standard] (default) fails every
// later access with [ErrUseAfterDestruction], [Immortal] never tears down,
// [Resurrection] silently builds a new instance.
//
// [Sync] decides how goroutines are admitted: [Mutex] (default), [Spin],
// [None] for single-goroutine use, or [ThreadLocal] for one instance per
// goroutine.
//
//	h, _ := sole.Of[Logger](r,
//		sole.WithDisposal(sole.Resurrection),
//		sole.WithSync(sole.Spin),
//	)
//	log, err := h.Get()
//
// # Process exit
//
// [Default] returns a process-wide registry whose Shutdown is registered with
// github.com/tebeka/atexit; call atexit.Exit instead of os.Exit to run it.
package sole
