package config

import "time"

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "gocarousel",
			Width:  1280,
			Height: 800,
			FPS:    60,
		},
		Camera: CameraConfig{
			FOV:  60,
			Near: 0.1,
			Far:  1000,
		},
		Carousel: CarouselConfig{
			Layout:     "ring",
			Radius:     3.3,
			Duplicate:  2,
			ItemKind:   "textured",
			SpineColor: "#E5E5E5",
			Helix: HelixConfig{
				Radius:  5,
				YOffset: -0.2,
			},
			Assembly: AssemblyConfig{
				Enabled:  false,
				Scatter:  2,
				Duration: Duration{2 * time.Second},
				Seed:     1,
			},
		},
		Focus: FocusConfig{
			Duration: Duration{1000 * time.Millisecond},
			Hold:     Duration{4000 * time.Millisecond},
			Scale:    1.1,
			Policy:   "ignore",
		},
		AutoRotate: AutoRotateConfig{
			// 0.05 * 0.01 rad per frame at 60 fps
			Speed: 0.03,
		},
		Orbit: OrbitConfig{
			Damping:         0.03,
			RotateSpeed:     0.2,
			AutoRotateSpeed: 0.5,
			PolarRange:      22,
		},
		Scroll: ScrollConfig{
			Zones: DefaultZones(),
			Speed: SpeedConfig{
				Baseline:     0.5,
				Active:       1.0,
				DistanceUnit: 10,
				Gain:         10.05,
				ResetAfter:   Duration{100 * time.Millisecond},
			},
			LogDiscontinuities: true,
		},
		Particles: ParticleConfig{
			Count:         40,
			BoundsRadius:  8,
			SpawnFraction: 0.65,
			Speed:         0.03,
			MaxDeflection: 15,
			SphereRadius:  0.25,
			Seed:          7,
		},
		Cell: CellConfig{
			Enabled:       false,
			Components:    DefaultComponents(),
			BoundsPart:    "ribbons",
			BoundsFactor:  0.8,
			BlobPadding:   2,
			BlobSegments:  32,
			Deformation:   0.6,
			WaveTimeStep:  0.01,
			CameraZ:       60,
			ViewportRatio: 1,
		},
		Assets: AssetConfig{
			Concurrency: 4,
			Timeout:     Duration{15 * time.Second},
			MaxTexture:  1024,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: Duration{300 * time.Millisecond},
		},
	}
}

// DefaultZones are the splash, dive and zoom-out ranges of the cell page
func DefaultZones() []ZoneConfig {
	return []ZoneConfig{
		{Name: "splash", Start: 0, End: 900, StartFOV: 75, EndFOV: 60, OffsetStart: -80, OffsetRatio: 0.1},
		{Name: "dive", Start: 900, End: 2400, StartFOV: 60, EndFOV: 50, HaltAutoRotateAt: 0.8},
		{Name: "zoom-out", Start: 2400, End: 3300, StartFOV: 50, EndFOV: 85},
	}
}

// DefaultComponents are the parts of the cell model, back to front
func DefaultComponents() []ComponentConfig {
	return []ComponentConfig{
		{Name: "blob-outer", Path: "models/blob-outer.stl", Material: "transmissive", Color: "#FFFFFF", Opacity: 0.84, Z: -1},
		{Name: "ribbons", Path: "models/ribbons.stl", Material: "opaque", Color: "#FFA500", Opacity: 1, Z: -0.5},
		{Name: "blob-inner", Path: "models/blob-inner.stl", Material: "opaque", Color: "#C8B48C", Opacity: 1},
	}
}
