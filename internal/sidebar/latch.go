package sidebar

type latchState int

const (
	latchPending latchState = iota
	latchFired
	latchDisarmed
)

// FirstPaintSignal invokes its callback the first time Fire is called and
// never again.
type FirstPaintSignal struct {
	state    latchState
	callback func()
}

func NewFirstPaintSignal(callback func()) *FirstPaintSignal {
	return &FirstPaintSignal{callback: callback}
}

// Fire reports whether this call invoked the callback.
func (s *FirstPaintSignal) Fire() bool {
	if s.state != latchPending {
		return false
	}
	// Leave pending before the callback runs so a re-entrant Fire is a no-op.
	s.state = latchFired
	if s.callback != nil {
		s.callback()
	}
	return true
}

// Fired reports whether the callback has run.
func (s *FirstPaintSignal) Fired() bool {
	return s.state == latchFired
}

// Disarm turns every later Fire into a no-op.
func (s *FirstPaintSignal) Disarm() {
	if s.state == latchPending {
		s.state = latchDisarmed
	}
}
