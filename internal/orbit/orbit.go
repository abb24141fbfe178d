// Package orbit implements a damped orbit camera: drags and auto-rotation move
// a goal azimuth and elevation and critically damped springs follow them.
package orbit

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/geometry"
	"github.com/philipparndt/gocarousel/pkg/viewer"
)

// Options configures the controls
type Options struct {
	// Damping is the fraction of the remaining motion covered per frame at FPS
	Damping float64
	// RotateSpeed scales drag distance into rotation
	RotateSpeed float64
	// AutoRotateSpeed of 1 is one turn per minute
	AutoRotateSpeed float64
	// PolarRange limits elevation to ±PolarRange radians around the equator
	PolarRange float64
	FPS        int
}

// DefaultOptions returns the cell page settings
func DefaultOptions() Options {
	return Options{
		Damping:         0.03,
		RotateSpeed:     0.2,
		AutoRotateSpeed: 0.5,
		PolarRange:      anglemath.DegToRad(22),
		FPS:             60,
	}
}

// Controls orbit a target at a fixed distance
type Controls struct {
	Target     geometry.Vector3
	Distance   float64
	AutoRotate bool

	opts   Options
	spring harmonica.Spring
	step   time.Duration
	acc    time.Duration

	azimuth, azimuthVel     float64
	elevation, elevationVel float64
	azimuthGoal             float64
	elevationGoal           float64
}

// New creates controls looking at target from distance along +Z
func New(target geometry.Vector3, distance float64, opts Options) *Controls {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	freq := opts.Damping * float64(opts.FPS)
	return &Controls{
		Target:   target,
		Distance: distance,
		opts:     opts,
		spring:   harmonica.NewSpring(harmonica.FPS(opts.FPS), freq, 1.0),
		step:     time.Second / time.Duration(opts.FPS),
	}
}

// SetAutoRotateSpeed changes the auto-rotation speed, usually from the
// scroll speed modulator
func (c *Controls) SetAutoRotateSpeed(speed float64) { c.opts.AutoRotateSpeed = speed }

// AutoRotateSpeed returns the current auto-rotation speed
func (c *Controls) AutoRotateSpeed() float64 { return c.opts.AutoRotateSpeed }

// Azimuth returns the damped azimuth in radians
func (c *Controls) Azimuth() float64 { return c.azimuth }

// Elevation returns the damped elevation in radians
func (c *Controls) Elevation() float64 { return c.elevation }

// Drag rotates the goal by a pointer movement in pixels over a viewport of
// the given height
func (c *Controls) Drag(dx, dy, viewportHeight float64) {
	if viewportHeight <= 0 {
		return
	}
	c.azimuthGoal -= anglemath.TwoPi * dx / viewportHeight * c.opts.RotateSpeed
	c.elevationGoal += anglemath.TwoPi * dy / viewportHeight * c.opts.RotateSpeed
	c.clamp()
}

func (c *Controls) clamp() {
	limit := c.opts.PolarRange
	c.elevationGoal = math.Max(-limit, math.Min(limit, c.elevationGoal))
}

// Update advances auto-rotation and the springs by dt
func (c *Controls) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if c.AutoRotate {
		c.azimuthGoal -= anglemath.TwoPi / 60 * c.opts.AutoRotateSpeed * dt.Seconds()
	}
	c.acc += dt
	for c.acc >= c.step {
		c.acc -= c.step
		c.azimuth, c.azimuthVel = c.spring.Update(c.azimuth, c.azimuthVel, c.azimuthGoal)
		c.elevation, c.elevationVel = c.spring.Update(c.elevation, c.elevationVel, c.elevationGoal)
	}
}

// Position returns the camera position for the current angles
func (c *Controls) Position() geometry.Vector3 {
	x := c.Distance * math.Cos(c.elevation) * math.Sin(c.azimuth)
	y := c.Distance * math.Sin(c.elevation)
	z := c.Distance * math.Cos(c.elevation) * math.Cos(c.azimuth)
	return c.Target.Add(geometry.NewVector3(x, y, z))
}

// Apply moves the camera onto the orbit and points it at the target
func (c *Controls) Apply(cam *viewer.Camera) {
	cam.Position = c.Position()
	cam.LookAt(c.Target)
}
