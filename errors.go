package sole

import "errors"

var (
	// ErrAllocationFailure is returned by [Holder.Get] when the payload could
	// not be constructed. The cell stays empty and the next call retries.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrUseAfterDestruction is returned by [Holder.Get] under the [Standard]
	// disposal when the cell's instance has already been torn down.
	ErrUseAfterDestruction = errors.New("use after destruction")

	// ErrAlreadyShutdown is returned when [Registry.Shutdown] is called more
	// than once.
	ErrAlreadyShutdown = errors.New("registry already shut down")

	// ErrUnknownStrategy is returned when a [Composition] names a strategy
	// value outside its enum.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrSharedInUse is returned when a [Shared] instance is destroyed while
	// references other than the cell's own are still held. The package never
	// hands out such references, so seeing it means an internal invariant was
	// broken.
	ErrSharedInUse = errors.New("shared instance still referenced")
)
