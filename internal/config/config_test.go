package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
[carousel]
radius = 4.5
items = ["a.webp", "b.png"]

[focus]
duration = "750ms"
policy = "restart"

[[scroll.zones]]
name = "only"
start = 0
end = 500
start_fov = 70
end_fov = 40
`, nil)
	require.NoError(t, err)

	assert.Equal(t, 4.5, cfg.Carousel.Radius)
	assert.Equal(t, []string{"a.webp", "b.png"}, cfg.Carousel.Items)
	assert.Equal(t, 750*time.Millisecond, cfg.Focus.Duration.Duration)
	assert.Equal(t, 4000*time.Millisecond, cfg.Focus.Hold.Duration)
	assert.Equal(t, "restart", cfg.Focus.Policy)
	require.Len(t, cfg.Scroll.Zones, 1)
	assert.Equal(t, "only", cfg.Scroll.Zones[0].Name)
	assert.Len(t, cfg.Cell.Components, 3)
}

func TestParseKeepsDefaultZones(t *testing.T) {
	cfg, err := Parse(`[window]
width = 640
`, nil)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, DefaultZones(), cfg.Scroll.Zones)
}

func TestParseRejectsBadDuration(t *testing.T) {
	_, err := Parse(`[focus]
duration = "soon"
`, nil)
	assert.Error(t, err)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Camera.FOV = 180
	cfg.Focus.Policy = "queue"
	cfg.Particles.SpawnFraction = 1.5

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera: fov")
	assert.Contains(t, err.Error(), "focus: unknown policy")
	assert.Contains(t, err.Error(), "particles: spawn_fraction")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carousel.toml")
	require.NoError(t, os.WriteFile(path, []byte("[particles]\ncount = 12\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Particles.Count)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FFA500")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 165, 0, 255}, c)

	c, err = ParseColor("0xe5e5e5")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{229, 229, 229, 255}, c)

	c, err = ParseColor("#f80")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 136, 0, 255}, c)

	for _, bad := range []string{"orange", "#12345", "#gg0000", ""} {
		_, err = ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
