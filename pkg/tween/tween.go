// Package tween interpolates a scalar over a fixed duration with an easing curve.
package tween

import (
	"time"

	"github.com/philipparndt/gocarousel/pkg/anglemath"
)

// Easing maps linear progress in [0, 1] to eased progress
type Easing func(t float64) float64

// Tween animates From toward To over Duration
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Ease     Easing

	elapsed  time.Duration
	done     bool
	onUpdate func(value float64)
	onDone   func()
}

// New creates a tween. A nil easing is linear.
func New(from, to float64, duration time.Duration, ease Easing) *Tween {
	if ease == nil {
		ease = anglemath.Linear
	}
	return &Tween{From: from, To: to, Duration: duration, Ease: ease}
}

// OnUpdate registers a callback receiving the value after every Advance
func (tw *Tween) OnUpdate(fn func(value float64)) *Tween {
	tw.onUpdate = fn
	return tw
}

// OnComplete registers a callback run once when the tween finishes
func (tw *Tween) OnComplete(fn func()) *Tween {
	tw.onDone = fn
	return tw
}

// Progress returns linear progress in [0, 1]
func (tw *Tween) Progress() float64 {
	if tw.Duration <= 0 {
		return 1
	}
	return anglemath.Clamp01(float64(tw.elapsed) / float64(tw.Duration))
}

// Value returns the eased value at the current progress
func (tw *Tween) Value() float64 {
	return anglemath.Lerp(tw.From, tw.To, tw.Ease(tw.Progress()))
}

// Done reports whether the tween has reached its end
func (tw *Tween) Done() bool {
	return tw.done
}

// Advance moves the tween forward by dt and returns the new value.
// A finished tween keeps returning To and never fires its callbacks again.
func (tw *Tween) Advance(dt time.Duration) float64 {
	if tw.done {
		return tw.To
	}
	tw.elapsed += dt
	value := tw.Value()
	if tw.Progress() >= 1 {
		tw.done = true
		value = tw.To
	}
	if tw.onUpdate != nil {
		tw.onUpdate(value)
	}
	if tw.done && tw.onDone != nil {
		tw.onDone()
	}
	return value
}
