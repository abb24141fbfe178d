// Package particles simulates free particles bouncing around inside a sphere.
//
// Every tick moves each particle one step along its unit velocity. A particle
// that reaches the boundary while heading outward has its velocity reversed and
// twisted by a small random angle around the outward normal. Positions are never
// pushed back, so a particle may overshoot the boundary by at most one step.
package particles

import (
	"errors"
	"fmt"
	"math"

	"github.com/MichaelTJones/pcg"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/geometry"
)

// Particle is a point with a unit direction of travel
type Particle struct {
	Position geometry.Vector3
	Velocity geometry.Vector3
}

// Config controls the field
type Config struct {
	Count        int
	BoundsRadius float64
	// SpawnFraction scales BoundsRadius to give the spawn ball
	SpawnFraction float64
	// Speed is the distance travelled per tick
	Speed float64
	// MaxDeflection is the largest reflection twist in radians
	MaxDeflection float64
	Seed          uint64
}

// DefaultConfig returns 40 particles in a radius 8 sphere deflecting up to π/12
func DefaultConfig() Config {
	return Config{
		Count:         40,
		BoundsRadius:  8,
		SpawnFraction: 0.65,
		Speed:         0.03,
		MaxDeflection: math.Pi / 12,
		Seed:          7,
	}
}

// Validate checks the settings
func (c Config) Validate() error {
	var errs []error
	if c.Count < 0 {
		errs = append(errs, fmt.Errorf("count must not be negative, got %d", c.Count))
	}
	if !(c.BoundsRadius > 0) {
		errs = append(errs, fmt.Errorf("bounds radius must be positive, got %v", c.BoundsRadius))
	}
	if !(c.SpawnFraction > 0 && c.SpawnFraction < 1) {
		errs = append(errs, fmt.Errorf("spawn fraction must be in (0, 1), got %v", c.SpawnFraction))
	}
	if !(c.Speed > 0) {
		errs = append(errs, fmt.Errorf("speed must be positive, got %v", c.Speed))
	}
	if c.MaxDeflection < 0 || c.MaxDeflection > math.Pi/2 {
		errs = append(errs, fmt.Errorf("max deflection must be in [0, π/2], got %v", c.MaxDeflection))
	}
	return errors.Join(errs...)
}

// Stats summarises the field since creation
type Stats struct {
	Ticks       int
	Reflections int
	Resamples   int
	MaxDistance float64
}

// Field is a reflective particle simulation. It is not safe for concurrent use.
type Field struct {
	cfg       Config
	rng       *pcg.PCG32
	particles []Particle
	stats     Stats
}

// New spawns the particles uniformly in the spawn ball with uniform directions
func New(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid particle config: %w", err)
	}
	rng := pcg.NewPCG32()
	rng.Seed(cfg.Seed, 0x853c49e6748fea9b)
	f := &Field{cfg: cfg, rng: rng}

	spawn := cfg.SpawnFraction * cfg.BoundsRadius
	f.particles = make([]Particle, cfg.Count)
	for i := range f.particles {
		// cube root keeps the density uniform over the ball
		r := spawn * math.Cbrt(f.unit())
		pos := f.direction().Mul(r)
		f.particles[i] = Particle{Position: pos, Velocity: f.direction()}
		f.observe(pos)
	}
	return f, nil
}

// Config returns the settings the field was built with
func (f *Field) Config() Config { return f.cfg }

// Particles returns the live particles. Callers must not append to the slice.
func (f *Field) Particles() []Particle { return f.particles }

// Len returns the number of particles
func (f *Field) Len() int { return len(f.particles) }

// Stats returns counters collected so far
func (f *Field) Stats() Stats { return f.stats }

// Tick advances every particle by one step
func (f *Field) Tick() {
	f.stats.Ticks++
	for i := range f.particles {
		p := &f.particles[i]
		p.Position = p.Position.Add(p.Velocity.Mul(f.cfg.Speed))
		f.observe(p.Position)

		dist := p.Position.Length()
		if dist < f.cfg.BoundsRadius || p.Velocity.Dot(p.Position) <= 0 {
			continue
		}
		f.reflect(p, dist)
	}
}

func (f *Field) reflect(p *Particle, dist float64) {
	f.stats.Reflections++
	if dist == 0 || !p.Position.IsFinite() {
		f.resample(p)
		return
	}
	axis := p.Position.Mul(1 / dist)
	angle := (f.unit()*2 - 1) * f.cfg.MaxDeflection
	v := p.Velocity.Negate().RotateAround(axis, angle)

	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		f.resample(p)
		return
	}
	p.Velocity = v.Mul(1 / l)
}

// resample picks a fresh direction pointing back toward the centre
func (f *Field) resample(p *Particle) {
	f.stats.Resamples++
	d := f.direction()
	if d.Dot(p.Position) > 0 {
		d = d.Negate()
	}
	p.Velocity = d
}

func (f *Field) observe(pos geometry.Vector3) {
	if d := pos.Length(); d > f.stats.MaxDistance {
		f.stats.MaxDistance = d
	}
}

func (f *Field) unit() float64 {
	return float64(f.rng.Random()) / float64(1<<32)
}

// direction returns a uniformly distributed unit vector
func (f *Field) direction() geometry.Vector3 {
	z := f.unit()*2 - 1
	phi := f.unit() * anglemath.TwoPi
	s := math.Sqrt(1 - z*z)
	return geometry.NewVector3(s*math.Cos(phi), s*math.Sin(phi), z)
}
