package scroll

import (
	"math"
	"time"

	"github.com/philipparndt/gocarousel/pkg/schedule"
)

// SpeedSettings shape the scroll speed response
type SpeedSettings struct {
	Baseline     float64
	Active       float64
	DistanceUnit float64
	Gain         float64
	ResetAfter   time.Duration
}

// DefaultSpeedSettings returns 0.5 at rest and 1 + floor(Δ/10)·10.05 while scrolling
func DefaultSpeedSettings() SpeedSettings {
	return SpeedSettings{
		Baseline:     0.5,
		Active:       1.0,
		DistanceUnit: 10,
		Gain:         10.05,
		ResetAfter:   100 * time.Millisecond,
	}
}

// SpeedModulator turns scroll deltas into an orbit auto-rotate speed that
// falls back to the baseline once scrolling stops
type SpeedModulator struct {
	settings SpeedSettings
	sched    *schedule.Scheduler
	last     float64
	speed    float64
	reset    *schedule.Token
}

// NewSpeedModulator starts at the baseline speed
func NewSpeedModulator(sched *schedule.Scheduler, settings SpeedSettings) *SpeedModulator {
	return &SpeedModulator{settings: settings, sched: sched, speed: settings.Baseline}
}

// Speed returns the current rotation speed
func (s *SpeedModulator) Speed() float64 { return s.speed }

// Observe records a scroll event and returns the new speed. Each event
// restarts the reset timer.
func (s *SpeedModulator) Observe(offset float64) float64 {
	delta := offset - s.last
	s.last = offset
	unit := s.settings.DistanceUnit
	if unit <= 0 {
		unit = 1
	}
	s.speed = s.settings.Active + math.Floor(delta/unit)*s.settings.Gain

	s.reset.Cancel()
	s.reset = s.sched.After(s.settings.ResetAfter, func() {
		s.speed = s.settings.Baseline
		s.reset = nil
	})
	return s.speed
}

// Reset drops back to the baseline and takes offset as the last seen
// position, so the next event measures its delta from there.
func (s *SpeedModulator) Reset(offset float64) {
	s.last = offset
	s.speed = s.settings.Baseline
	s.reset.Cancel()
	s.reset = nil
}
