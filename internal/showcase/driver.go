// Package showcase wires the ring, the focus rotation, the scroll zones, the
// orbit camera and the particle field into one frame-driven animation.
//
// A Driver is not safe for concurrent use. Hosts call Tick and the input
// methods from the same goroutine.
package showcase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/philipparndt/gocarousel/internal/config"
	"github.com/philipparndt/gocarousel/internal/focus"
	"github.com/philipparndt/gocarousel/internal/orbit"
	"github.com/philipparndt/gocarousel/internal/particles"
	"github.com/philipparndt/gocarousel/internal/ring"
	"github.com/philipparndt/gocarousel/internal/scroll"
	"github.com/philipparndt/gocarousel/pkg/anglemath"
	"github.com/philipparndt/gocarousel/pkg/asset"
	"github.com/philipparndt/gocarousel/pkg/geometry"
	"github.com/philipparndt/gocarousel/pkg/scene"
	"github.com/philipparndt/gocarousel/pkg/schedule"
	"github.com/philipparndt/gocarousel/pkg/viewer"
)

// Renderer draws a frame. The driver never looks inside it.
type Renderer interface {
	Render(sc *scene.Scene, cam *viewer.Camera) error
}

// Assets loads the textures and models the scene is built from.
// *asset.Loader satisfies it.
type Assets interface {
	LoadTextures(ctx context.Context, sources []string) []asset.TextureResult
	LoadModels(ctx context.Context, sources []string) []asset.ModelResult
}

// RenderContext is everything a frame needs
type RenderContext struct {
	Scene  *scene.Scene
	Camera *viewer.Camera
	// Ring is nil when no items are configured
	Ring      *ring.Ring
	RingGroup *scene.Node
	// Cell is nil unless the cell scene is enabled
	Cell *Cell
}

// Driver advances the animation once per frame
type Driver struct {
	cfg      *config.Config
	renderer Renderer
	logger   *slog.Logger
	loadCtx  context.Context

	rc       RenderContext
	sched    *schedule.Scheduler
	auto     *focus.AutoRotation
	focus    *focus.Controller
	mapper   *scroll.Mapper
	speed    *scroll.SpeedModulator
	orbit    *orbit.Controls
	assembly *ring.Assembly
	field    *particles.Field

	width, height int
	scrollOffset  float64
	scrolled      bool
	frame         scroll.Frame
	frames        int
}

// Option configures a Driver
type Option func(*Driver)

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithViewport sets the initial viewport size in pixels
func WithViewport(width, height int) Option {
	return func(d *Driver) {
		if width > 0 && height > 0 {
			d.width, d.height = width, height
		}
	}
}

// WithLoadContext bounds asset loading during New
func WithLoadContext(ctx context.Context) Option {
	return func(d *Driver) {
		if ctx != nil {
			d.loadCtx = ctx
		}
	}
}

// New loads the assets and builds the render context. Items whose assets fail
// are left out of the ring. A renderer may be nil for headless runs.
func New(cfg *config.Config, assets Assets, r Renderer, opts ...Option) (*Driver, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	d := &Driver{
		cfg:      cfg,
		renderer: r,
		logger:   slog.Default(),
		loadCtx:  context.Background(),
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		sched:    schedule.New(),
	}
	for _, opt := range opts {
		opt(d)
	}

	policy, err := focus.ParsePolicy(cfg.Focus.Policy)
	if err != nil {
		return nil, err
	}
	d.auto = focus.NewAutoRotation(cfg.AutoRotate.Speed)
	d.focus = focus.New(d.sched, d.auto, focus.Options{
		Duration: cfg.Focus.Duration.Duration,
		Hold:     cfg.Focus.Hold.Duration,
		Scale:    cfg.Focus.Scale,
		Policy:   policy,
		Logger:   d.logger,
	})

	d.rc.Scene = scene.New()
	if err := d.buildRing(assets); err != nil {
		return nil, err
	}
	if cfg.Cell.Enabled {
		if err := d.buildCell(assets); err != nil {
			return nil, err
		}
	}
	if err := d.setupCamera(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) setupCamera() error {
	cfg := d.cfg
	aspect := float64(d.width) / float64(d.height)

	if d.rc.Cell == nil {
		cam := viewer.NewCamera(cfg.Camera.FOV, aspect, cfg.Camera.Near, cfg.Camera.Far)
		distance := cfg.Camera.Distance
		if distance <= 0 {
			radius := cfg.Carousel.Radius
			if d.rc.Ring != nil {
				radius = d.rc.Ring.Radius()
			}
			distance = viewer.FitDistance(radius, cfg.Camera.FOV)
		}
		opts := d.orbitOptions()
		// the ring page turns the ring, never the camera's elevation
		opts.PolarRange = 0
		d.orbit = orbit.New(geometry.Vector3{}, distance, opts)
		d.rc.Camera = cam
		d.orbit.Apply(cam)
		return nil
	}

	zones := ZonesFromConfig(cfg.Scroll.Zones)
	if len(zones) == 0 {
		return scroll.ErrNoZones
	}
	initial := scroll.CameraParams{FieldOfView: zones[0].StartFOV}
	if zones[0].Offset != nil {
		initial.ViewOffsetX = zones[0].Offset.Start
	}
	mapper, err := scroll.NewMapper(zones, initial)
	if err != nil {
		return fmt.Errorf("invalid scroll zones: %w", err)
	}
	mapper.SetLogger(d.logger)
	if cfg.Scroll.LogDiscontinuities {
		mapper.WarnDiscontinuities()
	}
	d.mapper = mapper
	d.speed = scroll.NewSpeedModulator(d.sched, scroll.SpeedSettings{
		Baseline:     cfg.Scroll.Speed.Baseline,
		Active:       cfg.Scroll.Speed.Active,
		DistanceUnit: cfg.Scroll.Speed.DistanceUnit,
		Gain:         cfg.Scroll.Speed.Gain,
		ResetAfter:   cfg.Scroll.Speed.ResetAfter.Duration,
	})

	cam := viewer.NewCamera(initial.FieldOfView, aspect, cfg.Camera.Near, cfg.Camera.Far)
	d.rc.Camera = cam
	d.orbit = orbit.New(geometry.Vector3{}, cfg.Cell.CameraZ, d.orbitOptions())
	d.orbit.AutoRotate = true
	d.orbit.SetAutoRotateSpeed(d.speed.Speed())
	d.orbit.Apply(cam)
	d.frame = mapper.Last()
	d.applyFrame(d.frame)
	d.syncViewport()
	return nil
}

func (d *Driver) orbitOptions() orbit.Options {
	return orbit.Options{
		Damping:         d.cfg.Orbit.Damping,
		RotateSpeed:     d.cfg.Orbit.RotateSpeed,
		AutoRotateSpeed: d.cfg.Orbit.AutoRotateSpeed,
		PolarRange:      anglemath.DegToRad(d.cfg.Orbit.PolarRange),
		FPS:             d.cfg.Window.FPS,
	}
}

// ZonesFromConfig converts configured zones. A zone gets an offset ramp when
// either ramp value is set.
func ZonesFromConfig(in []config.ZoneConfig) []scroll.Zone {
	out := make([]scroll.Zone, 0, len(in))
	for _, z := range in {
		zone := scroll.Zone{
			Name:             z.Name,
			Start:            z.Start,
			End:              z.End,
			StartFOV:         z.StartFOV,
			EndFOV:           z.EndFOV,
			HaltAutoRotateAt: z.HaltAutoRotateAt,
		}
		if z.OffsetStart != 0 || z.OffsetRatio != 0 {
			zone.Offset = &scroll.Ramp{Start: z.OffsetStart, WidthRatio: z.OffsetRatio}
		}
		out = append(out, zone)
	}
	return out
}

// Context returns the render context
func (d *Driver) Context() *RenderContext { return &d.rc }

// Focus returns the focus controller
func (d *Driver) Focus() *focus.Controller { return d.focus }

// AutoRotation returns the ambient ring rotation
func (d *Driver) AutoRotation() *focus.AutoRotation { return d.auto }

// Orbit returns the camera controls
func (d *Driver) Orbit() *orbit.Controls { return d.orbit }

// Mapper returns the scroll mapper, nil without the cell scene
func (d *Driver) Mapper() *scroll.Mapper { return d.mapper }

// Speed returns the scroll speed modulator, nil without the cell scene
func (d *Driver) Speed() *scroll.SpeedModulator { return d.speed }

// Field returns the particle field, nil without the cell scene
func (d *Driver) Field() *particles.Field { return d.field }

// Frame returns the last scroll frame
func (d *Driver) Frame() scroll.Frame { return d.frame }

// Frames returns the number of ticks so far
func (d *Driver) Frames() int { return d.frames }

// Assembling reports whether the intro assembly is still running
func (d *Driver) Assembling() bool { return d.assembly != nil }

// Viewport returns the current viewport size
func (d *Driver) Viewport() (int, int) { return d.width, d.height }

// Tick advances every controller by dt and renders one frame. Timers fire
// first, so their state changes are visible to the rest of the frame.
func (d *Driver) Tick(dt time.Duration) error {
	if dt < 0 {
		dt = 0
	}
	d.frames++
	d.sched.Advance(dt)

	if d.assembly != nil && d.assembly.Advance(dt) {
		d.assembly = nil
		d.rc.Ring.Place()
		d.logger.Debug("assembly finished", "frame", d.frames)
	}

	d.focus.Advance(dt)

	if d.mapper != nil {
		if d.scrolled {
			d.frame = d.mapper.Update(d.scrollOffset)
			d.applyFrame(d.frame)
			d.scrolled = false
		}
		if d.frame.AutoRotate {
			d.auto.Release(focus.HoldScroll)
		} else {
			d.auto.Hold(focus.HoldScroll)
		}
		d.orbit.AutoRotate = d.frame.AutoRotate
		d.orbit.SetAutoRotateSpeed(d.speed.Speed())
	}

	d.orbit.Update(dt)
	d.orbit.Apply(d.rc.Camera)

	if cell := d.rc.Cell; cell != nil {
		cell.step(d.field)
	}
	if d.rc.RingGroup != nil {
		d.rc.RingGroup.RotationY = d.focus.Angle()
	}

	if d.renderer == nil {
		return nil
	}
	if err := d.renderer.Render(d.rc.Scene, d.rc.Camera); err != nil {
		return fmt.Errorf("render frame %d: %w", d.frames, err)
	}
	return nil
}

func (d *Driver) applyFrame(f scroll.Frame) {
	cam := d.rc.Camera
	cam.FOV = f.Params.FieldOfView
	w, h := float64(d.width), float64(d.height)
	cam.SetViewOffset(w, h, f.Params.ViewOffsetX, 0, w, h)
}

var errNoItems = errors.New("no ring item could be loaded")
