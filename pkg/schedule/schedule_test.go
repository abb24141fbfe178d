package schedule

import (
	"testing"
	"time"
)

func TestAfterFiresWhenDue(t *testing.T) {
	s := New()
	fired := false
	s.After(100*time.Millisecond, func() { fired = true })

	s.Advance(99 * time.Millisecond)
	if fired {
		t.Fatal("action fired before its due time")
	}
	s.Advance(1 * time.Millisecond)
	if !fired {
		t.Fatal("action did not fire at its due time")
	}
	if s.Len() != 0 {
		t.Errorf("Len failed: expected 0, got %d", s.Len())
	}
}

func TestFiringOrder(t *testing.T) {
	s := New()
	var order []int
	s.After(30*time.Millisecond, func() { order = append(order, 3) })
	s.After(10*time.Millisecond, func() { order = append(order, 1) })
	s.After(10*time.Millisecond, func() { order = append(order, 2) })

	if n := s.Advance(time.Second); n != 3 {
		t.Errorf("Advance failed: expected 3 actions, got %d", n)
	}
	expected := []int{1, 2, 3}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("order failed: expected %v, got %v", expected, order)
		}
	}
}

func TestCancel(t *testing.T) {
	s := New()
	fired := false
	tok := s.After(50*time.Millisecond, func() { fired = true })

	if !tok.Cancel() {
		t.Error("first Cancel should report a pending action")
	}
	if tok.Cancel() {
		t.Error("second Cancel should be a no-op")
	}
	s.Advance(time.Second)
	if fired {
		t.Error("cancelled action fired")
	}
	if tok.Pending() {
		t.Error("cancelled token still pending")
	}
}

func TestCancelNilToken(t *testing.T) {
	var tok *Token
	if tok.Cancel() {
		t.Error("Cancel on nil token should report false")
	}
	if tok.Pending() {
		t.Error("nil token should not be pending")
	}
}

func TestCancelAfterFire(t *testing.T) {
	s := New()
	tok := s.After(0, func() {})
	s.Advance(0)
	if tok.Cancel() {
		t.Error("Cancel after firing should report false")
	}
}

func TestCancelMiddleOfQueue(t *testing.T) {
	s := New()
	var order []int
	s.After(10*time.Millisecond, func() { order = append(order, 1) })
	mid := s.After(20*time.Millisecond, func() { order = append(order, 2) })
	s.After(30*time.Millisecond, func() { order = append(order, 3) })

	mid.Cancel()
	s.Advance(time.Second)
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("cancel in middle failed: got %v", order)
	}
}

func TestRescheduleFromCallback(t *testing.T) {
	s := New()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			s.After(10*time.Millisecond, tick)
		}
	}
	s.After(10*time.Millisecond, tick)

	s.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Errorf("chained callbacks failed: expected 3, got %d", count)
	}
	if s.Now() != 35*time.Millisecond {
		t.Errorf("Now failed: expected 35ms, got %v", s.Now())
	}
}

func TestCallbackSeesDueTime(t *testing.T) {
	s := New()
	var seen time.Duration
	s.After(40*time.Millisecond, func() { seen = s.Now() })
	s.Advance(100 * time.Millisecond)
	if seen != 40*time.Millisecond {
		t.Errorf("callback clock failed: expected 40ms, got %v", seen)
	}
}

func TestClear(t *testing.T) {
	s := New()
	tok := s.After(time.Millisecond, func() { t.Error("cleared action fired") })
	s.Clear()
	s.Advance(time.Second)
	if tok.Pending() {
		t.Error("cleared token still pending")
	}
}
