package loader

// LoadState tracks a single table through the load pipeline. Transitions
// are strictly forward; any step may divert to StateFailed, which is
// terminal and scoped to that table only.
type LoadState int

const (
	StatePending LoadState = iota
	StateFileChecked
	StateRead
	StateCoerced
	StateNullProfiled
	StateWritten
	StateIndexed
	StateVerified
	StateFailed
)

var stateNames = map[LoadState]string{
	StatePending:      "PENDING",
	StateFileChecked:  "FILE_CHECKED",
	StateRead:         "READ",
	StateCoerced:      "COERCED",
	StateNullProfiled: "NULL_PROFILED",
	StateWritten:      "WRITTEN",
	StateIndexed:      "INDEXED",
	StateVerified:     "VERIFIED",
	StateFailed:       "FAILED",
}

func (s LoadState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Terminal reports whether no further transition is possible.
func (s LoadState) Terminal() bool {
	return s == StateVerified || s == StateFailed
}
