// Package scroll maps a page scroll offset onto named zones and derives the
// camera field of view and horizontal view offset for the current position.
package scroll

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/philipparndt/gocarousel/pkg/anglemath"
)

// Zone configuration errors. Errors returned by NewMapper wrap one of these.
var (
	ErrNoZones       = errors.New("no scroll zones")
	ErrEmptyZone     = errors.New("zone start must be below its end")
	ErrGap           = errors.New("gap between zones")
	ErrOverlap       = errors.New("zones overlap")
	ErrFieldOfView   = errors.New("field of view must be in (0, 180)")
	ErrNegativeStart = errors.New("zone start must not be negative")
)

// Ramp moves the view offset linearly across a zone.
// At progress p the offset is Start + viewportWidth·p·WidthRatio.
type Ramp struct {
	Start      float64
	WidthRatio float64
}

// Zone is one contiguous scroll range
type Zone struct {
	Name     string
	Start    float64
	End      float64
	StartFOV float64
	EndFOV   float64
	// Offset is nil when the zone keeps the previous view offset
	Offset *Ramp
	// HaltAutoRotateAt stops orbit auto-rotation once progress passes it.
	// Zero never stops it.
	HaltAutoRotateAt float64
}

// Length returns End - Start
func (z Zone) Length() float64 { return z.End - z.Start }

// CameraParams are the camera values derived from a scroll position
type CameraParams struct {
	// FieldOfView is the vertical field of view in degrees
	FieldOfView float64
	// ViewOffsetX is the horizontal view offset in pixels
	ViewOffsetX float64
}

// Frame is the result of one Update
type Frame struct {
	Zone       string
	Index      int
	Progress   float64
	Params     CameraParams
	AutoRotate bool
	// Beyond is set past the last zone, where Params stay frozen
	Beyond bool
}

// Discontinuity is a zone boundary where the field of view jumps
type Discontinuity struct {
	Offset float64
	From   string
	To     string
	FOVEnd float64
	FOVNew float64
}

// Mapper classifies scroll offsets. It remembers the last parameters so
// zones without a ramp and offsets past the end keep them.
type Mapper struct {
	zones  []Zone
	width  float64
	last   Frame
	logger *slog.Logger
}

// NewMapper validates the zones and starts from the initial camera values
func NewMapper(zones []Zone, initial CameraParams) (*Mapper, error) {
	if err := validate(zones); err != nil {
		return nil, err
	}
	m := &Mapper{
		zones:  append([]Zone(nil), zones...),
		logger: slog.Default(),
	}
	m.last = Frame{Zone: zones[0].Name, Params: initial, AutoRotate: true}
	return m, nil
}

func validate(zones []Zone) error {
	if len(zones) == 0 {
		return ErrNoZones
	}
	for i, z := range zones {
		if z.Start < 0 {
			return fmt.Errorf("zone %q: %w: %v", z.Name, ErrNegativeStart, z.Start)
		}
		if !(z.Start < z.End) {
			return fmt.Errorf("zone %q: %w: [%v, %v)", z.Name, ErrEmptyZone, z.Start, z.End)
		}
		if !validFOV(z.StartFOV) || !validFOV(z.EndFOV) {
			return fmt.Errorf("zone %q: %w: %v to %v", z.Name, ErrFieldOfView, z.StartFOV, z.EndFOV)
		}
		if i == 0 {
			if z.Start > 0 {
				return fmt.Errorf("zone %q: %w: 0 to %v", z.Name, ErrGap, z.Start)
			}
			continue
		}
		prev := zones[i-1]
		switch {
		case z.Start > prev.End:
			return fmt.Errorf("zones %q and %q: %w: %v to %v", prev.Name, z.Name, ErrGap, prev.End, z.Start)
		case z.Start < prev.End:
			return fmt.Errorf("zones %q and %q: %w: %v before %v", prev.Name, z.Name, ErrOverlap, z.Start, prev.End)
		}
	}
	return nil
}

func validFOV(fov float64) bool {
	return fov > 0 && fov < 180
}

// SetLogger replaces the logger used for warnings
func (m *Mapper) SetLogger(l *slog.Logger) {
	if l != nil {
		m.logger = l
	}
}

// SetViewportWidth sets the width used by offset ramps
func (m *Mapper) SetViewportWidth(w float64) { m.width = w }

// Zones returns a copy of the zones
func (m *Mapper) Zones() []Zone { return append([]Zone(nil), m.zones...) }

// Last returns the most recent frame
func (m *Mapper) Last() Frame { return m.last }

// Discontinuities lists boundaries where a zone does not start at the field
// of view the previous one ended at
func (m *Mapper) Discontinuities() []Discontinuity {
	var out []Discontinuity
	for i := 1; i < len(m.zones); i++ {
		prev, next := m.zones[i-1], m.zones[i]
		if prev.EndFOV != next.StartFOV {
			out = append(out, Discontinuity{
				Offset: next.Start,
				From:   prev.Name,
				To:     next.Name,
				FOVEnd: prev.EndFOV,
				FOVNew: next.StartFOV,
			})
		}
	}
	return out
}

// WarnDiscontinuities logs every field of view jump
func (m *Mapper) WarnDiscontinuities() {
	for _, d := range m.Discontinuities() {
		m.logger.Warn("field of view jumps at zone boundary",
			"offset", d.Offset, "from", d.From, "to", d.To, "end_fov", d.FOVEnd, "start_fov", d.FOVNew)
	}
}

// Classify returns the zone containing offset and the progress through it.
// A boundary belongs to the zone it starts, except the end of the last zone.
// Negative offsets map to the start of the first zone. ok is false past the end.
func (m *Mapper) Classify(offset float64) (index int, progress float64, ok bool) {
	if math.IsNaN(offset) {
		return 0, 0, false
	}
	if offset < m.zones[0].Start {
		return 0, 0, true
	}
	lastIdx := len(m.zones) - 1
	for i, z := range m.zones {
		if offset >= z.Start && (offset < z.End || (i == lastIdx && offset == z.End)) {
			return i, anglemath.Clamp01((offset - z.Start) / z.Length()), true
		}
	}
	return 0, 0, false
}

// Interpolate computes the camera values at a progress through a zone
func (m *Mapper) Interpolate(z Zone, progress float64) CameraParams {
	p := CameraParams{
		FieldOfView: anglemath.SmoothLerp(z.StartFOV, z.EndFOV, progress),
		ViewOffsetX: m.last.Params.ViewOffsetX,
	}
	if z.Offset != nil {
		p.ViewOffsetX = z.Offset.Start + m.width*anglemath.Clamp01(progress)*z.Offset.WidthRatio
	}
	return p
}

// Update classifies the offset and returns the frame for it. Past the last
// zone the previous parameters are returned unchanged.
func (m *Mapper) Update(offset float64) Frame {
	i, progress, ok := m.Classify(offset)
	if !ok {
		f := m.last
		f.Beyond = true
		return f
	}
	z := m.zones[i]
	f := Frame{
		Zone:       z.Name,
		Index:      i,
		Progress:   progress,
		Params:     m.Interpolate(z, progress),
		AutoRotate: z.HaltAutoRotateAt <= 0 || progress <= z.HaltAutoRotateAt,
	}
	m.last = f
	return f
}
