package ring

import (
	"time"

	"github.com/MichaelTJones/pcg"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/geometry"
	"github.com/philipparndt/gocarousel/pkg/tween"
)

type flight struct {
	item     *Item
	from     geometry.Vector3
	to       geometry.Vector3
	fromYaw  float64
	toYaw    float64
	progress *tween.Tween
}

// Assembly flies items from random scattered positions into their slots.
// Each item gets its own duration drawn from [d, 2d].
type Assembly struct {
	flights []flight
}

// NewAssembly scatters every item within ±scatter on each axis and prepares
// the tweens back to the slots
func NewAssembly(r *Ring, scatter float64, duration time.Duration, seed uint64) *Assembly {
	rng := pcg.NewPCG32()
	rng.Seed(seed, 0xda3e39cb94b95bdb)
	unit := func() float64 {
		return float64(rng.Random()) / float64(1<<32)
	}

	a := &Assembly{}
	for _, it := range r.items {
		to, yaw := r.Slot(it)
		from := geometry.NewVector3(
			(unit()*2-1)*scatter,
			(unit()*2-1)*scatter,
			(unit()*2-1)*scatter,
		)
		fromYaw := (unit()*2 - 1) * anglemath.TwoPi
		d := duration + time.Duration(unit()*float64(duration))
		a.flights = append(a.flights, flight{
			item:     it,
			from:     from,
			to:       to,
			fromYaw:  fromYaw,
			toYaw:    yaw,
			progress: tween.New(0, 1, d, anglemath.ExponentialInOut),
		})
		if it.Node != nil {
			it.Node.Position = from
			it.Node.RotationY = fromYaw
		}
	}
	return a
}

// Advance moves all flights forward and reports whether every item has landed
func (a *Assembly) Advance(dt time.Duration) bool {
	done := true
	for i := range a.flights {
		f := &a.flights[i]
		t := f.progress.Advance(dt)
		if f.item.Node != nil {
			f.item.Node.Position = f.from.Lerp(f.to, t)
			f.item.Node.RotationY = anglemath.Lerp(f.fromYaw, f.toYaw, t)
		}
		if !f.progress.Done() {
			done = false
		}
	}
	return done
}

// Done reports whether every item has landed
func (a *Assembly) Done() bool {
	for _, f := range a.flights {
		if !f.progress.Done() {
			return false
		}
	}
	return true
}

// Longest returns the duration of the slowest flight
func (a *Assembly) Longest() time.Duration {
	var longest time.Duration
	for _, f := range a.flights {
		if f.progress.Duration > longest {
			longest = f.progress.Duration
		}
	}
	return longest
}
