package flow

// Sequencer tracks the current position in Steps.
// The zero value starts at the first step.
type Sequencer struct {
	index int
}

// Current returns the current step.
func (s *Sequencer) Current() Step {
	return Steps[s.index]
}

// Index returns the zero-based position of the current step.
func (s *Sequencer) Index() int {
	return s.index
}

// Len returns the number of steps.
func (s *Sequencer) Len() int {
	return len(Steps)
}

// Advance moves to the next step and reports whether it moved.
func (s *Sequencer) Advance() bool {
	if s.index+1 >= len(Steps) {
		return false
	}
	s.index++
	return true
}

// Retreat moves to the previous step and reports whether it moved.
func (s *Sequencer) Retreat() bool {
	if s.index-1 < 0 {
		return false
	}
	s.index--
	return true
}

// GoTo jumps to step if it is valid and reports whether it moved.
func (s *Sequencer) GoTo(step Step) bool {
	if !step.Valid() || step == s.Current() {
		return false
	}
	s.index = int(step)
	return true
}

// Reset returns to the first step.
func (s *Sequencer) Reset() {
	s.index = 0
}

// Progress returns index/(len-1), in [0, 1].
func (s *Sequencer) Progress() float64 {
	return float64(s.index) / float64(len(Steps)-1)
}
