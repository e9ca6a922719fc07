package flow

import "time"

// TransitionDelay is how long a requested step change waits before it is
// committed.
const TransitionDelay = 200 * time.Millisecond

// Direction is the kind of transition requested.
type Direction int

const (
	Forward Direction = iota + 1
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Debouncer holds at most one pending transition for a Sequencer.
//
// Request records the target and returns a generation number; the caller
// schedules Resolve with that number after TransitionDelay. Only the most
// recent generation commits, so rapid requests collapse into the last one.
// Debouncer does no timing itself and is driven entirely by its caller.
type Debouncer struct {
	seq        *Sequencer
	generation uint64
	pending    bool
	direction  Direction
}

// NewDebouncer returns a Debouncer that commits to seq.
func NewDebouncer(seq *Sequencer) *Debouncer {
	return &Debouncer{seq: seq}
}

// Request records a transition in direction d, measured from the committed
// step. It returns the generation to resolve and true, or false when the
// move would leave the step range, in which case pending state is kept.
func (d *Debouncer) Request(dir Direction) (uint64, bool) {
	target := d.seq.Index()
	switch dir {
	case Forward:
		target++
	case Backward:
		target--
	default:
		return 0, false
	}
	if target < 0 || target >= d.seq.Len() {
		return 0, false
	}

	d.generation++
	d.pending = true
	d.direction = dir
	return d.generation, true
}

// Resolve commits the pending transition if gen is the latest request.
// It returns the new current step and whether a change was committed.
func (d *Debouncer) Resolve(gen uint64) (Step, bool) {
	if !d.pending || gen != d.generation {
		return d.seq.Current(), false
	}
	d.pending = false

	var moved bool
	switch d.direction {
	case Forward:
		moved = d.seq.Advance()
	case Backward:
		moved = d.seq.Retreat()
	}
	return d.seq.Current(), moved
}

// Pending reports whether a transition is waiting to be resolved.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Cancel drops any pending transition. Used when a session is reset.
func (d *Debouncer) Cancel() {
	d.pending = false
	d.generation++
}
