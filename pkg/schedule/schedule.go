// Package schedule runs deferred actions against a virtual clock that only
// moves when the owner advances it, usually once per rendered frame.
//
// Actions never run on another goroutine. Advance fires every action whose due
// time has been reached, in due order, so timer side effects happen at a
// well-defined point in the frame.
package schedule

import (
	"container/heap"
	"time"
)

// Token identifies a scheduled action. Cancel is idempotent and safe on a nil token.
type Token struct {
	due       time.Duration
	seq       uint64
	fn        func()
	index     int
	cancelled bool
	fired     bool
	owner     *Scheduler
}

// Cancel prevents the action from running. It reports whether the action was
// still pending.
func (t *Token) Cancel() bool {
	if t == nil || t.cancelled || t.fired {
		return false
	}
	t.cancelled = true
	if t.owner != nil && t.index >= 0 {
		heap.Remove(&t.owner.queue, t.index)
	}
	return true
}

// Pending reports whether the action is still waiting to fire
func (t *Token) Pending() bool {
	return t != nil && !t.cancelled && !t.fired
}

// Due returns the virtual time at which the action fires
func (t *Token) Due() time.Duration {
	return t.due
}

// Scheduler is a virtual-clock timer queue. The zero value is ready to use.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue tokenQueue
}

// New creates an empty scheduler at virtual time zero
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of pending actions
func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// After schedules fn to run once the clock has advanced by at least d.
// A non-positive d fires on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) *Token {
	if d < 0 {
		d = 0
	}
	s.seq++
	tok := &Token{
		due:   s.now + d,
		seq:   s.seq,
		fn:    fn,
		owner: s,
	}
	heap.Push(&s.queue, tok)
	return tok
}

// Advance moves the clock forward by dt and runs due actions.
// Actions scheduled from inside a callback whose due time falls within the same
// window also fire during this call. It returns the number of actions run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		if next.due > s.now {
			s.now = next.due
		}
		next.fired = true
		if next.fn != nil {
			next.fn()
		}
		fired++
	}
	s.now = target
	return fired
}

// Clear cancels all pending actions
func (s *Scheduler) Clear() {
	for s.queue.Len() > 0 {
		tok := heap.Pop(&s.queue).(*Token)
		tok.cancelled = true
	}
}

type tokenQueue []*Token

func (q tokenQueue) Len() int { return len(q) }

func (q tokenQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q tokenQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *tokenQueue) Push(x any) {
	tok := x.(*Token)
	tok.index = len(*q)
	*q = append(*q, tok)
}

func (q *tokenQueue) Pop() any {
	old := *q
	n := len(old)
	tok := old[n-1]
	old[n-1] = nil
	tok.index = -1
	*q = old[:n-1]
	return tok
}
