package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("640x480")
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	for _, bad := range []string{"640", "0x480", "ax480", "640x-1"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestParsePoint(t *testing.T) {
	x, y, err := parsePoint("320, 240.5")
	require.NoError(t, err)
	assert.Equal(t, 320.0, x)
	assert.Equal(t, 240.5, y)

	_, _, err = parsePoint("320")
	assert.Error(t, err)
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	configPath = ""
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestParticlesCommand(t *testing.T) {
	assert.NoError(t, execute(t, "particles", "--ticks", "2000", "--count", "10"))
}

func TestZonesCommand(t *testing.T) {
	assert.NoError(t, execute(t, "zones", "0", "1650", "5000"))
	assert.Error(t, execute(t, "zones", "soon"))
}

func TestZonesCommandRejectsGap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carousel.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[scroll.zones]]
name = "a"
start = 0
end = 100
start_fov = 60
end_fov = 50

[[scroll.zones]]
name = "b"
start = 150
end = 300
start_fov = 50
end_fov = 40
`), 0o644))

	rootCmd.SetArgs([]string{"zones", "--config", path})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scroll zones")
}

func TestRenderCommandWritesFrames(t *testing.T) {
	out := t.TempDir()
	err := execute(t, "render", "--cell", "--frames", "4", "--every", "2",
		"--size", "64x48", "--out", out, "--scroll-from", "0", "--scroll-to", "1200")
	require.NoError(t, err)

	for _, name := range []string{"frame-0002.png", "frame-0004.png"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
}

func TestModelsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ribbons.stl")
	require.NoError(t, os.WriteFile(path, []byte(`solid ribbons
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 2 0 0
    vertex 0 2 4
  endloop
endfacet
endsolid ribbons
`), 0o644))

	assert.NoError(t, execute(t, "models", path))
	assert.Error(t, execute(t, "models", filepath.Join(t.TempDir(), "missing.stl")))
}
