package sole

// State is the lifecycle state of a cell.
type State int

const (
	// Absent means no instance has been constructed yet.
	Absent State = iota

	// Live means the cell holds an instance.
	Live

	// Destroyed means the last instance was torn down and none has been
	// constructed since.
	Destroyed
)

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Live:
		return "live"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
