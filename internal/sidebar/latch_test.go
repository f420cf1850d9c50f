package sidebar

import (
	"testing"
)

func TestFirstPaintSignal(t *testing.T) {
	calls := 0
	s := NewFirstPaintSignal(func() { calls++ })

	if s.Fired() {
		t.Error("Fired() = true before first Fire")
	}
	if !s.Fire() {
		t.Error("first Fire() = false, want true")
	}
	for i := 0; i < 5; i++ {
		if s.Fire() {
			t.Errorf("Fire() #%d = true, want false", i+2)
		}
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
	if !s.Fired() {
		t.Error("Fired() = false after Fire")
	}
}

func TestFirstPaintSignal_ReentrantFire(t *testing.T) {
	calls := 0
	var s *FirstPaintSignal
	s = NewFirstPaintSignal(func() {
		calls++
		s.Fire()
	})

	s.Fire()
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestFirstPaintSignal_Disarm(t *testing.T) {
	calls := 0
	s := NewFirstPaintSignal(func() { calls++ })
	s.Disarm()

	if s.Fire() {
		t.Error("Fire() after Disarm = true, want false")
	}
	if calls != 0 {
		t.Errorf("callback ran %d times, want 0", calls)
	}
}

func TestFirstPaintSignal_NilCallback(t *testing.T) {
	s := NewFirstPaintSignal(nil)
	if !s.Fire() {
		t.Error("Fire() = false, want true")
	}
}
