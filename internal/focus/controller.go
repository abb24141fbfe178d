// Package focus rotates the ring so a selected item faces the viewer, holds it
// enlarged for a while and then lets the ambient rotation resume.
package focus

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/philipparndt/gocarousel/internal/ring"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/schedule"
	"github.com/philipparndt/gocarousel/pkg/tween"
)

// State of the controller
type State int

const (
	// Idle means no rotation and no focused item
	Idle State = iota
	// Rotating means a focus rotation is in flight
	Rotating
	// Focused means an item is enlarged and a revert is pending
	Focused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rotating:
		return "rotating"
	case Focused:
		return "focused"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Policy decides what a selection does while a rotation is in flight
type Policy int

const (
	// IgnoreWhileRotating drops selections until the rotation completes
	IgnoreWhileRotating Policy = iota
	// RestartWhileRotating abandons the current rotation and heads for the new item
	RestartWhileRotating
)

// ParsePolicy maps the config names "ignore" and "restart"
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "ignore", "":
		return IgnoreWhileRotating, nil
	case "restart":
		return RestartWhileRotating, nil
	}
	return IgnoreWhileRotating, fmt.Errorf("unknown focus policy %q", s)
}

// Options configures a Controller
type Options struct {
	Duration time.Duration
	Hold     time.Duration
	Scale    float64
	Policy   Policy
	Logger   *slog.Logger
}

// DefaultOptions returns a one second rotation, a four second hold and a 1.1 scale
func DefaultOptions() Options {
	return Options{
		Duration: 1000 * time.Millisecond,
		Hold:     4000 * time.Millisecond,
		Scale:    1.1,
		Policy:   IgnoreWhileRotating,
	}
}

// Controller owns the ring rotation angle. At most one rotation tween and one
// revert token exist at any time.
type Controller struct {
	opts   Options
	sched  *schedule.Scheduler
	auto   *AutoRotation
	logger *slog.Logger

	current float64
	target  float64
	state   State
	tween   *tween.Tween
	pending *ring.Item
	focused *ring.Item
	revert  *schedule.Token
}

// New creates an idle controller. Timers are scheduled on sched, and the
// controller holds auto while an item is in focus. A nil auto creates one that
// never turns.
func New(sched *schedule.Scheduler, auto *AutoRotation, opts Options) *Controller {
	if auto == nil {
		auto = NewAutoRotation(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{opts: opts, sched: sched, auto: auto, logger: logger}
}

// State returns the current state
func (c *Controller) State() State { return c.state }

// Angle returns the current ring rotation
func (c *Controller) Angle() float64 { return c.current }

// Target returns the angle of the rotation in flight, or the current angle
func (c *Controller) Target() float64 {
	if c.state == Rotating {
		return c.target
	}
	return c.current
}

// Focused returns the focused item or nil
func (c *Controller) Focused() *ring.Item { return c.focused }

// AutoRotation returns the ambient rotation the controller drives
func (c *Controller) AutoRotation() *AutoRotation { return c.auto }

// Select starts rotating the ring so it faces the viewer. It reports false when
// the selection was dropped.
func (c *Controller) Select(it *ring.Item) bool {
	if it == nil {
		return false
	}
	if c.state == Rotating {
		if c.opts.Policy == IgnoreWhileRotating {
			c.logger.Debug("selection ignored while rotating", "item", it.Index())
			return false
		}
		c.logger.Debug("rotation superseded", "from", c.pending.Index(), "to", it.Index())
		c.tween = nil
		c.pending = nil
	}

	c.revert.Cancel()
	c.revert = nil
	if c.focused != nil {
		c.focused.SetScale(1)
		c.focused.SetFocused(false)
		c.focused = nil
	}

	c.target = c.current + anglemath.ShortestDelta(c.current, -it.AngularPosition())
	c.tween = tween.New(c.current, c.target, c.opts.Duration, anglemath.EaseOutQuad)
	c.pending = it
	c.state = Rotating
	c.auto.Hold(HoldFocus)
	c.logger.Debug("focus rotation", "item", it.Index(), "from", c.current, "to", c.target)
	return true
}

// Revert clears the focus and lets auto-rotation resume
func (c *Controller) Revert() {
	c.revert.Cancel()
	c.revert = nil
	if c.focused != nil {
		c.focused.SetScale(1)
		c.focused.SetFocused(false)
		c.focused = nil
	}
	if c.state == Rotating {
		c.tween = nil
		c.pending = nil
	}
	c.state = Idle
	c.auto.Release(HoldFocus)
}

// Advance moves the rotation forward by dt
func (c *Controller) Advance(dt time.Duration) {
	switch c.state {
	case Rotating:
		c.current = c.tween.Advance(dt)
		if c.tween.Done() {
			c.complete()
		}
	case Idle:
		if step := c.auto.Step(dt); step != 0 {
			c.current = anglemath.Normalize(c.current + step)
		}
	}
}

func (c *Controller) complete() {
	it := c.pending
	c.tween = nil
	c.pending = nil
	c.current = c.target
	c.focused = it
	c.state = Focused
	it.SetScale(c.opts.Scale)
	it.SetFocused(true)
	c.revert = c.sched.After(c.opts.Hold, c.Revert)
}
