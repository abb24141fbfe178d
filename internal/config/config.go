// Package config loads the showcase settings from TOML. Every value has a
// default, so a config file only needs to list what it changes.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration written as "1000ms" or "4s"
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the complete showcase configuration
type Config struct {
	Window     WindowConfig     `toml:"window"`
	Camera     CameraConfig     `toml:"camera"`
	Carousel   CarouselConfig   `toml:"carousel"`
	Focus      FocusConfig      `toml:"focus"`
	AutoRotate AutoRotateConfig `toml:"autorotate"`
	Orbit      OrbitConfig      `toml:"orbit"`
	Scroll     ScrollConfig     `toml:"scroll"`
	Particles  ParticleConfig   `toml:"particles"`
	Cell       CellConfig       `toml:"cell"`
	Assets     AssetConfig      `toml:"assets"`
	Watch      WatchConfig      `toml:"watch"`
}

// WindowConfig sizes the host window
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	FPS    int    `toml:"fps"`
}

// CameraConfig holds the perspective camera settings
type CameraConfig struct {
	FOV  float64 `toml:"fov"`
	Near float64 `toml:"near"`
	Far  float64 `toml:"far"`

	// Distance overrides the fitted camera distance when positive
	Distance float64 `toml:"distance"`
}

// CarouselConfig describes the item ring
type CarouselConfig struct {
	Layout     string   `toml:"layout"`
	Radius     float64  `toml:"radius"`
	Duplicate  int      `toml:"duplicate"`
	Items      []string `toml:"items"`
	ItemKind   string   `toml:"item_kind"`
	SpineColor string   `toml:"spine_color"`

	Helix    HelixConfig    `toml:"helix"`
	Assembly AssemblyConfig `toml:"assembly"`
}

// HelixConfig places items on a cylinder for the panel layout
type HelixConfig struct {
	Radius  float64 `toml:"radius"`
	YOffset float64 `toml:"y_offset"`
}

// AssemblyConfig controls the intro tween from scattered positions into the ring
type AssemblyConfig struct {
	Enabled  bool     `toml:"enabled"`
	Scatter  float64  `toml:"scatter"`
	Duration Duration `toml:"duration"`
	Seed     uint64   `toml:"seed"`
}

// FocusConfig controls the click-to-focus rotation
type FocusConfig struct {
	Duration Duration `toml:"duration"`
	Hold     Duration `toml:"hold"`
	Scale    float64  `toml:"scale"`
	Policy   string   `toml:"policy"`
}

// AutoRotateConfig controls the ambient ring rotation
type AutoRotateConfig struct {
	// Speed is in radians per second
	Speed float64 `toml:"speed"`
}

// OrbitConfig controls the damped orbit camera around the cell
type OrbitConfig struct {
	Damping         float64 `toml:"damping"`
	RotateSpeed     float64 `toml:"rotate_speed"`
	AutoRotateSpeed float64 `toml:"auto_rotate_speed"`
	PolarRange      float64 `toml:"polar_range"`
}

// ScrollConfig lists the scroll zones and the speed modulator
type ScrollConfig struct {
	Zones              []ZoneConfig `toml:"zones"`
	Speed              SpeedConfig  `toml:"speed"`
	LogDiscontinuities bool         `toml:"log_discontinuities"`
}

// ZoneConfig is one contiguous scroll range
type ZoneConfig struct {
	Name             string  `toml:"name"`
	Start            float64 `toml:"start"`
	End              float64 `toml:"end"`
	StartFOV         float64 `toml:"start_fov"`
	EndFOV           float64 `toml:"end_fov"`
	OffsetStart      float64 `toml:"offset_start"`
	OffsetRatio      float64 `toml:"offset_ratio"`
	HaltAutoRotateAt float64 `toml:"halt_auto_rotate_at"`
}

// SpeedConfig controls scroll-driven rotation speed
type SpeedConfig struct {
	Baseline     float64  `toml:"baseline"`
	Active       float64  `toml:"active"`
	DistanceUnit float64  `toml:"distance_unit"`
	Gain         float64  `toml:"gain"`
	ResetAfter   Duration `toml:"reset_after"`
}

// ParticleConfig controls the reflective particle field
type ParticleConfig struct {
	Count         int     `toml:"count"`
	BoundsRadius  float64 `toml:"bounds_radius"`
	SpawnFraction float64 `toml:"spawn_fraction"`
	Speed         float64 `toml:"speed"`
	MaxDeflection float64 `toml:"max_deflection_deg"`
	SphereRadius  float64 `toml:"sphere_radius"`
	Seed          uint64  `toml:"seed"`
}

// CellConfig lists the cell model parts and the waving blob
type CellConfig struct {
	Enabled       bool              `toml:"enabled"`
	Components    []ComponentConfig `toml:"components"`
	BoundsPart    string            `toml:"bounds_part"`
	BoundsFactor  float64           `toml:"bounds_factor"`
	BlobPadding   float64           `toml:"blob_padding"`
	BlobSegments  int               `toml:"blob_segments"`
	Deformation   float64           `toml:"deformation"`
	WaveTimeStep  float64           `toml:"wave_time_step"`
	CameraZ       float64           `toml:"camera_z"`
	ViewportRatio float64           `toml:"viewport_ratio"`
}

// ComponentConfig is one STL part of the cell
type ComponentConfig struct {
	Name     string  `toml:"name"`
	Path     string  `toml:"path"`
	Material string  `toml:"material"`
	Color    string  `toml:"color"`
	Opacity  float64 `toml:"opacity"`
	Z        float64 `toml:"z"`
}

// AssetConfig controls asset loading
type AssetConfig struct {
	BaseDir     string   `toml:"base_dir"`
	Concurrency int      `toml:"concurrency"`
	Timeout     Duration `toml:"timeout"`
	MaxTexture  int      `toml:"max_texture"`
}

// WatchConfig controls config hot reload
type WatchConfig struct {
	Enabled  bool     `toml:"enabled"`
	Debounce Duration `toml:"debounce"`
}

// Load reads a TOML file on top of the defaults
func Load(path string, logger *slog.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(string(data), logger)
}

// Parse decodes TOML text on top of the defaults and validates the result
func Parse(data string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := Default()
	// Zones replace the defaults as a whole rather than merging element-wise.
	cfg.Scroll.Zones = nil
	cfg.Cell.Components = nil

	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if !md.IsDefined("scroll", "zones") {
		cfg.Scroll.Zones = DefaultZones()
	}
	if !md.IsDefined("cell", "components") {
		cfg.Cell.Components = DefaultComponents()
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "key", key.String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.FPS > 0, "window: fps must be positive, got %d", c.Window.FPS)
	check(validFOV(c.Camera.FOV), "camera: fov must be in (0, 180), got %v", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera: need 0 < near < far, got %v and %v", c.Camera.Near, c.Camera.Far)

	check(c.Carousel.Radius > 0, "carousel: radius must be positive, got %v", c.Carousel.Radius)
	check(c.Carousel.Duplicate >= 1, "carousel: duplicate must be at least 1, got %d", c.Carousel.Duplicate)
	switch strings.ToLower(c.Carousel.Layout) {
	case "ring", "helix":
	default:
		errs = append(errs, fmt.Errorf("carousel: unknown layout %q", c.Carousel.Layout))
	}

	check(c.Focus.Duration.Duration > 0, "focus: duration must be positive")
	check(c.Focus.Hold.Duration >= 0, "focus: hold must not be negative")
	check(c.Focus.Scale > 0, "focus: scale must be positive, got %v", c.Focus.Scale)
	switch c.Focus.Policy {
	case "ignore", "restart":
	default:
		errs = append(errs, fmt.Errorf("focus: unknown policy %q (want ignore or restart)", c.Focus.Policy))
	}

	check(c.Orbit.Damping > 0 && c.Orbit.Damping <= 1, "orbit: damping must be in (0, 1], got %v", c.Orbit.Damping)
	check(c.Orbit.PolarRange >= 0 && c.Orbit.PolarRange <= 90, "orbit: polar_range must be in [0, 90], got %v", c.Orbit.PolarRange)

	check(len(c.Scroll.Zones) > 0, "scroll: at least one zone is required")
	check(c.Scroll.Speed.DistanceUnit > 0, "scroll: distance_unit must be positive")
	check(c.Scroll.Speed.ResetAfter.Duration >= 0, "scroll: reset_after must not be negative")

	check(c.Particles.Count >= 0, "particles: count must not be negative")
	check(c.Particles.BoundsRadius > 0, "particles: bounds_radius must be positive")
	check(c.Particles.SpawnFraction > 0 && c.Particles.SpawnFraction < 1, "particles: spawn_fraction must be in (0, 1), got %v", c.Particles.SpawnFraction)
	check(c.Particles.Speed > 0, "particles: speed must be positive")
	check(c.Particles.MaxDeflection >= 0 && c.Particles.MaxDeflection <= 90, "particles: max_deflection_deg must be in [0, 90]")

	check(c.Assets.Concurrency > 0, "assets: concurrency must be positive")

	return errors.Join(errs...)
}

func validFOV(fov float64) bool {
	return fov > 0 && fov < 180 && !math.IsNaN(fov)
}
