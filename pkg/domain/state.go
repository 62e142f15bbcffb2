package domain

// Status defines the phase of a tour.
type Status string

const (
	StatusNotStarted Status = "not_started" // Built, no listener registered yet
	StatusShowing    Status = "showing"     // Listener active, Index points at the visible step (or -1)
	StatusFinished   Status = "finished"    // Sink state, further clicks are no-ops
)

// State represents the current snapshot of a tour.
type State struct {
	Mode Mode `json:"mode"`

	// Index is the cursor into the step list. It starts at -1 and only increases.
	Index int `json:"index"`

	// Total is the number of steps in the tour, including those that get skipped.
	Total int `json:"total"`

	Status Status `json:"status"`
}

// NewState creates a clean state before the first step.
func NewState(mode Mode, total int) State {
	return State{
		Mode:   mode,
		Index:  -1,
		Total:  total,
		Status: StatusNotStarted,
	}
}

// Finished reports whether the tour reached its sink state.
func (s State) Finished() bool {
	return s.Status == StatusFinished
}

// Showing reports whether a step is currently displayed.
func (s State) Showing() bool {
	return s.Status == StatusShowing && s.Index >= 0 && s.Index < s.Total
}
