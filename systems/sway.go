package systems

import "time"

// Sway is a linear, endlessly repeating animator that reverses direction at
// each end, used to swing the clouds left and right.
type Sway struct {
	from, to float32
	period   time.Duration
	elapsed  time.Duration
	running  bool
}

// NewSway creates a stopped animator sweeping from -> to over period.
func NewSway(from, to float32, period time.Duration) *Sway {
	if period <= 0 {
		period = time.Second
	}
	return &Sway{from: from, to: to, period: period}
}

// Start resumes the animation from its current play time.
func (s *Sway) Start() {
	s.running = true
}

// Stop pauses the animation, keeping its play time.
func (s *Sway) Stop() {
	s.running = false
}

// Reset rewinds to the start value without changing the running state.
func (s *Sway) Reset() {
	s.elapsed = 0
}

// Running reports whether Advance moves the animation.
func (s *Sway) Running() bool {
	return s.running
}

// Advance moves the play time forward by dt when running.
func (s *Sway) Advance(dt time.Duration) {
	if !s.running || dt <= 0 {
		return
	}
	// Only parity of the cycle matters
	s.elapsed = (s.elapsed + dt) % (2 * s.period)
}

// PlayTime returns the position within the current forward+reverse cycle.
func (s *Sway) PlayTime() time.Duration {
	return s.elapsed
}

// SetPlayTime seeks to t.
func (s *Sway) SetPlayTime(t time.Duration) {
	if t < 0 {
		t = 0
	}
	s.elapsed = t % (2 * s.period)
}

// Value returns the current animated value.
func (s *Sway) Value() float32 {
	frac := float32(s.elapsed%s.period) / float32(s.period)
	if (s.elapsed/s.period)%2 == 1 {
		frac = 1 - frac
	}
	return s.from + (s.to-s.from)*frac
}
