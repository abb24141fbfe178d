package focus

import (
	"math"
	"testing"
	"time"

	"github.com/philipparndt/gocarousel/internal/ring"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

type rig struct {
	sched *schedule.Scheduler
	auto  *AutoRotation
	ctrl  *Controller
	ring  *ring.Ring
}

func newRig(t *testing.T, n int, policy Policy) *rig {
	t.Helper()
	src := make([]ring.Source, n)
	r, err := ring.New(src, ring.Carousel, 3.3, 0)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Policy = policy
	s := schedule.New()
	auto := NewAutoRotation(0.03)
	return &rig{sched: s, auto: auto, ctrl: New(s, auto, opts), ring: r}
}

// run advances the scheduler and the controller the way the frame loop does
func (r *rig) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		r.sched.Advance(frame)
		r.ctrl.Advance(frame)
	}
}

func TestSelectFacesItem(t *testing.T) {
	r := newRig(t, 8, IgnoreWhileRotating)
	item := r.ring.Item(3)

	start := r.ctrl.Angle()
	require.True(t, r.ctrl.Select(item))
	assert.Equal(t, Rotating, r.ctrl.State())
	assert.LessOrEqual(t, math.Abs(r.ctrl.Target()-start), math.Pi)

	r.run(1100 * time.Millisecond)

	assert.Equal(t, Focused, r.ctrl.State())
	assert.InDelta(t, 0.0, anglemath.Normalize(r.ctrl.Angle()+item.AngularPosition()), 1e-9)
	assert.Equal(t, 1.1, item.Scale())
	assert.True(t, item.Focused())
	assert.Same(t, item, r.ctrl.Focused())
}

func TestSelectTakesShortestPath(t *testing.T) {
	r := newRig(t, 8, IgnoreWhileRotating)
	// Item 7 sits at 7π/4, so the ring turns by +π/4 instead of -7π/4
	require.True(t, r.ctrl.Select(r.ring.Item(7)))
	assert.InDelta(t, math.Pi/4, r.ctrl.Target(), 1e-12)
}

func TestRotationEasesOut(t *testing.T) {
	r := newRig(t, 4, IgnoreWhileRotating)
	require.True(t, r.ctrl.Select(r.ring.Item(1)))
	target := r.ctrl.Target()

	r.sched.Advance(500 * time.Millisecond)
	r.ctrl.Advance(500 * time.Millisecond)
	assert.InDelta(t, target*0.75, r.ctrl.Angle(), 1e-12)
}

func TestSelectIgnoredWhileRotating(t *testing.T) {
	r := newRig(t, 8, IgnoreWhileRotating)
	first, second := r.ring.Item(2), r.ring.Item(5)

	require.True(t, r.ctrl.Select(first))
	r.run(300 * time.Millisecond)
	assert.False(t, r.ctrl.Select(second))

	r.run(time.Second)
	assert.Same(t, first, r.ctrl.Focused())
	assert.Equal(t, 1.1, first.Scale())
	assert.Equal(t, 1.0, second.Scale())
}

func TestSelectRestartsWhileRotating(t *testing.T) {
	r := newRig(t, 8, RestartWhileRotating)
	first, second := r.ring.Item(2), r.ring.Item(5)

	require.True(t, r.ctrl.Select(first))
	r.run(300 * time.Millisecond)
	mid := r.ctrl.Angle()
	require.True(t, r.ctrl.Select(second))
	assert.Equal(t, mid, r.ctrl.Angle(), "restart begins at the mid-animation angle")

	r.run(1100 * time.Millisecond)
	assert.Same(t, second, r.ctrl.Focused())
	assert.Equal(t, 1.0, first.Scale(), "superseded item never scales")
	assert.Equal(t, 1.1, second.Scale())

	r.run(4 * time.Second)
	assert.Equal(t, Idle, r.ctrl.State())
	assert.Equal(t, 1.0, second.Scale())
}

func TestSelectWhileFocusedResetsPrevious(t *testing.T) {
	r := newRig(t, 8, IgnoreWhileRotating)
	first, second := r.ring.Item(1), r.ring.Item(4)

	require.True(t, r.ctrl.Select(first))
	r.run(1100 * time.Millisecond)
	require.Equal(t, Focused, r.ctrl.State())
	require.Equal(t, 1, r.sched.Len())

	require.True(t, r.ctrl.Select(second))
	assert.Equal(t, 1.0, first.Scale())
	assert.False(t, first.Focused())
	assert.Equal(t, 0, r.sched.Len(), "pending revert cancelled")

	r.run(1100 * time.Millisecond)
	assert.Same(t, second, r.ctrl.Focused())
	assert.Equal(t, 1, r.sched.Len())
}

func TestRevertAfterHold(t *testing.T) {
	r := newRig(t, 8, IgnoreWhileRotating)
	item := r.ring.Item(6)

	require.True(t, r.ctrl.Select(item))
	assert.False(t, r.auto.Active())
	r.run(1100 * time.Millisecond)

	r.run(3800 * time.Millisecond)
	assert.Equal(t, Focused, r.ctrl.State())

	r.run(300 * time.Millisecond)
	assert.Equal(t, Idle, r.ctrl.State())
	assert.Equal(t, 1.0, item.Scale())
	assert.False(t, item.Focused())
	assert.Nil(t, r.ctrl.Focused())
	assert.True(t, r.auto.Active())
}

func TestPointerUpDuringFocusKeepsHold(t *testing.T) {
	r := newRig(t, 8, IgnoreWhileRotating)
	require.True(t, r.ctrl.Select(r.ring.Item(2)))
	r.run(1100 * time.Millisecond)

	r.auto.PointerDown()
	r.auto.PointerUp()
	assert.False(t, r.auto.Active())

	angle := r.ctrl.Angle()
	r.run(time.Second)
	assert.Equal(t, angle, r.ctrl.Angle())
}

func TestIdleAutoRotates(t *testing.T) {
	r := newRig(t, 8, IgnoreWhileRotating)
	r.ctrl.Advance(time.Second)
	assert.InDelta(t, 0.03, r.ctrl.Angle(), 1e-12)

	r.auto.PointerDown()
	r.ctrl.Advance(time.Second)
	assert.InDelta(t, 0.03, r.ctrl.Angle(), 1e-12)

	r.auto.PointerUp()
	r.ctrl.Advance(time.Second)
	assert.InDelta(t, 0.06, r.ctrl.Angle(), 1e-12)
}

func TestSelectNil(t *testing.T) {
	r := newRig(t, 2, IgnoreWhileRotating)
	assert.False(t, r.ctrl.Select(nil))
	assert.Equal(t, Idle, r.ctrl.State())
}

func TestManualRevertDuringRotation(t *testing.T) {
	r := newRig(t, 4, IgnoreWhileRotating)
	item := r.ring.Item(2)
	require.True(t, r.ctrl.Select(item))
	r.run(200 * time.Millisecond)

	r.ctrl.Revert()
	assert.Equal(t, Idle, r.ctrl.State())
	r.run(2 * time.Second)
	assert.Equal(t, 1.0, item.Scale())
}

func TestHoldsAreIndependent(t *testing.T) {
	a := NewAutoRotation(1)
	a.Hold(HoldScroll)
	a.PointerDown()
	a.PointerUp()
	assert.True(t, a.Held(HoldScroll))
	assert.False(t, a.Held(HoldPointer))
	assert.Equal(t, 0.0, a.Step(time.Second))

	a.Release(HoldScroll)
	assert.Equal(t, 1.0, a.Step(time.Second))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("restart")
	require.NoError(t, err)
	assert.Equal(t, RestartWhileRotating, p)
	_, err = ParsePolicy("queue")
	assert.Error(t, err)
	assert.Equal(t, "focused", Focused.String())
}
