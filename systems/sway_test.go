package systems

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestSwayValueReverses(t *testing.T) {
	s := NewSway(0, 1, time.Second)
	s.Start()

	tests := []struct {
		advance time.Duration
		want    float32
	}{
		{0, 0},
		{250 * time.Millisecond, 0.25},
		{750 * time.Millisecond, 1},    // t=1s: end of forward sweep
		{250 * time.Millisecond, 0.75}, // reversing
		{750 * time.Millisecond, 0},    // t=2s: back at start
		{500 * time.Millisecond, 0.5},
	}
	for i, tt := range tests {
		s.Advance(tt.advance)
		if got := s.Value(); !approx(got, tt.want) {
			t.Errorf("step %d: value = %v, want %v", i, got, tt.want)
		}
	}
}

func TestSwayDescending(t *testing.T) {
	s := NewSway(1, 0, 800*time.Millisecond)
	if !approx(s.Value(), 1) {
		t.Errorf("expected start value 1, got %v", s.Value())
	}

	s.Start()
	s.Advance(200 * time.Millisecond)
	if !approx(s.Value(), 0.75) {
		t.Errorf("expected 0.75, got %v", s.Value())
	}
}

func TestSwayStopPreservesPlayTime(t *testing.T) {
	s := NewSway(0, 1, time.Second)
	s.Start()
	s.Advance(300 * time.Millisecond)

	s.Stop()
	s.Stop()
	s.Advance(500 * time.Millisecond)
	if !approx(s.Value(), 0.3) {
		t.Errorf("stopped sway moved: %v", s.Value())
	}
	if s.PlayTime() != 300*time.Millisecond {
		t.Errorf("expected play time 300ms, got %v", s.PlayTime())
	}

	s.Start()
	s.Advance(100 * time.Millisecond)
	if !approx(s.Value(), 0.4) {
		t.Errorf("expected resume from 0.3, got %v", s.Value())
	}

	s.Reset()
	if s.Value() != 0 || !s.Running() {
		t.Errorf("reset should rewind without stopping, value=%v running=%v", s.Value(), s.Running())
	}
}

func TestSwaySetPlayTime(t *testing.T) {
	s := NewSway(0, 1, time.Second)
	s.SetPlayTime(3500 * time.Millisecond)
	if !approx(s.Value(), 0.5) {
		t.Errorf("expected 0.5 in the reverse half, got %v", s.Value())
	}
}
