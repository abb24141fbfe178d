package showcase

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/philipparndt/gocarousel/internal/config"
	"github.com/philipparndt/gocarousel/internal/focus"
	"github.com/philipparndt/gocarousel/pkg/asset"
	"github.com/philipparndt/gocarousel/pkg/geometry"
	"github.com/philipparndt/gocarousel/pkg/scene"
	"github.com/philipparndt/gocarousel/pkg/stl"
	"github.com/philipparndt/gocarousel/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

type fakeAssets struct {
	fail   map[string]bool
	models map[string]float64
	calls  int
}

func (f *fakeAssets) LoadTextures(_ context.Context, sources []string) []asset.TextureResult {
	f.calls++
	out := make([]asset.TextureResult, len(sources))
	for i, s := range sources {
		out[i].Source = s
		if f.fail[s] {
			out[i].Err = errors.New("broken")
			continue
		}
		out[i].Image = solid(color.RGBA{R: 220, G: 30, B: 30, A: 255})
	}
	return out
}

func (f *fakeAssets) LoadModels(_ context.Context, sources []string) []asset.ModelResult {
	out := make([]asset.ModelResult, len(sources))
	for i, s := range sources {
		out[i].Source = s
		half, ok := f.models[s]
		if !ok {
			out[i].Err = errors.New("missing")
			continue
		}
		m := stl.NewModel(s)
		m.AddTriangle(geometry.NewTriangle(geometry.NewVector3(0, 0, 1),
			geometry.NewVector3(-half, -half, -half),
			geometry.NewVector3(half, half, half),
			geometry.NewVector3(half, -half, half)))
		out[i].Model = m
	}
	return out
}

func solid(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

type countingRenderer struct {
	frames int
	err    error
}

func (r *countingRenderer) Render(*scene.Scene, *viewer.Camera) error {
	r.frames++
	return r.err
}

func carouselConfig(items ...string) *config.Config {
	cfg := config.Default()
	cfg.Carousel.Items = items
	return cfg
}

func run(t *testing.T, d *Driver, total time.Duration) {
	t.Helper()
	for elapsed := time.Duration(0); elapsed < total; elapsed += frame {
		require.NoError(t, d.Tick(frame))
	}
}

func TestRingSkipsFailedItems(t *testing.T) {
	assets := &fakeAssets{fail: map[string]bool{"b.png": true}}
	d, err := New(carouselConfig("a.png", "b.png", "c.png"), assets, nil)
	require.NoError(t, err)

	rc := d.Context()
	require.NotNil(t, rc.Ring)
	assert.Equal(t, 4, rc.Ring.Len(), "two survivors duplicated twice")
	assert.Equal(t, 1, assets.calls, "each cover is fetched once")
	assert.Len(t, rc.RingGroup.Children, 4)
	for _, it := range rc.Ring.Items() {
		assert.NotEqual(t, "b.png", it.Source().Path)
		assert.Same(t, it, rc.Ring.ItemByNode(it.Node))
	}
}

func TestAllItemsFailing(t *testing.T) {
	assets := &fakeAssets{fail: map[string]bool{"a.png": true}}
	_, err := New(carouselConfig("a.png"), assets, nil)
	assert.ErrorIs(t, err, errNoItems)
}

func TestMagazineFaces(t *testing.T) {
	cover := solid(color.RGBA{A: 255})
	faces := MagazineFaces(cover, color.RGBA{229, 229, 229, 255})
	assert.Equal(t, FrontRegion, faces[scene.FaceFront].Region)
	assert.Equal(t, BackRegion, faces[scene.FaceBack].Region)
	assert.Equal(t, SpineRegion, faces[scene.FaceLeft].Region)
	assert.Equal(t, scene.Opaque, faces[scene.FaceTop].Kind)
	assert.InDelta(t, 1.0, FrontRegion.Offset+FrontRegion.Repeat, 1e-12)
}

func TestTickRendersAndWrapsErrors(t *testing.T) {
	r := &countingRenderer{}
	d, err := New(carouselConfig("a.png"), &fakeAssets{}, r)
	require.NoError(t, err)

	run(t, d, 10*frame)
	assert.Equal(t, 10, r.frames)
	assert.Equal(t, 10, d.Frames())

	r.err = errors.New("device lost")
	err = d.Tick(frame)
	require.Error(t, err)
	assert.ErrorIs(t, err, r.err)
}

func TestClickFocusesFrontItem(t *testing.T) {
	d, err := New(carouselConfig("a.png", "b.png", "c.png", "d.png"), &fakeAssets{}, nil)
	require.NoError(t, err)
	w, h := d.Viewport()

	require.True(t, d.Click(float64(w)/2, float64(h)/2))
	assert.Equal(t, focus.Rotating, d.Focus().State())

	run(t, d, 1100*time.Millisecond)
	front := d.Context().Ring.Item(0)
	assert.Same(t, front, d.Focus().Focused())
	assert.Equal(t, 1.1, front.Node.Scale)
	assert.Equal(t, d.Focus().Angle(), d.Context().RingGroup.RotationY)

	run(t, d, 4*time.Second)
	assert.Equal(t, focus.Idle, d.Focus().State())
	assert.Equal(t, 1.0, front.Node.Scale)
}

func TestClickOnEmptySpace(t *testing.T) {
	d, err := New(carouselConfig("a.png"), &fakeAssets{}, nil)
	require.NoError(t, err)
	assert.False(t, d.Click(0, 0))
	assert.Equal(t, focus.Idle, d.Focus().State())
}

func TestPointerHoldsRingRotation(t *testing.T) {
	d, err := New(carouselConfig("a.png"), &fakeAssets{}, nil)
	require.NoError(t, err)

	require.NoError(t, d.Tick(time.Second))
	assert.InDelta(t, 0.03, d.Context().RingGroup.RotationY, 1e-12)

	d.PointerDown()
	require.NoError(t, d.Tick(time.Second))
	assert.InDelta(t, 0.03, d.Context().RingGroup.RotationY, 1e-12)

	d.PointerUp()
	require.NoError(t, d.Tick(time.Second))
	assert.InDelta(t, 0.06, d.Context().RingGroup.RotationY, 1e-12)
}

func TestAssemblyLands(t *testing.T) {
	cfg := carouselConfig("a.png", "b.png")
	cfg.Carousel.Assembly.Enabled = true
	d, err := New(cfg, &fakeAssets{}, nil)
	require.NoError(t, err)
	require.True(t, d.Assembling())

	run(t, d, 4100*time.Millisecond)
	assert.False(t, d.Assembling())
	r := d.Context().Ring
	for _, it := range r.Items() {
		pos, _ := r.Slot(it)
		assert.InDelta(t, 0.0, it.Node.Position.Distance(pos), 1e-12)
	}
}

func cellConfig() *config.Config {
	cfg := config.Default()
	cfg.Cell.Enabled = true
	return cfg
}

func cellAssets() *fakeAssets {
	return &fakeAssets{models: map[string]float64{
		"models/blob-outer.stl": 6,
		"models/ribbons.stl":    5,
		"models/blob-inner.stl": 3,
	}}
}

func TestCellBuild(t *testing.T) {
	d, err := New(cellConfig(), cellAssets(), nil)
	require.NoError(t, err)

	cell := d.Context().Cell
	require.NotNil(t, cell)
	assert.Len(t, cell.Parts, 3)
	assert.InDelta(t, 4.0, cell.Bounds, 1e-12)
	assert.InDelta(t, 6.0, cell.Blob.Radius, 1e-12)
	assert.Len(t, cell.Dots, 40)
	assert.Equal(t, -0.5, cell.Parts["ribbons"].Position.Z)
	assert.Nil(t, d.Context().Ring)

	cam := d.Context().Camera
	assert.Equal(t, 75.0, cam.FOV)
	assert.Equal(t, -80.0, cam.View().OffsetX)
	assert.InDelta(t, 60.0, cam.Position.Length(), 1e-9)
}

func TestCellFallsBackToConfiguredBounds(t *testing.T) {
	d, err := New(cellConfig(), &fakeAssets{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 8.0, d.Context().Cell.Bounds)
	assert.Empty(t, d.Context().Cell.Parts)
}

func TestScrollDrivesCamera(t *testing.T) {
	d, err := New(cellConfig(), cellAssets(), nil, WithViewport(1000, 800))
	require.NoError(t, err)
	cam := d.Context().Camera

	d.Scroll(450)
	require.NoError(t, d.Tick(frame))
	assert.Equal(t, "splash", d.Frame().Zone)
	assert.InDelta(t, -30.0, cam.View().OffsetX, 1e-9)

	d.Scroll(1650)
	require.NoError(t, d.Tick(frame))
	assert.InDelta(t, 55.0, cam.FOV, 1e-9)
	assert.InDelta(t, -30.0, cam.View().OffsetX, 1e-9)

	d.Scroll(900 + 0.9*1500)
	require.NoError(t, d.Tick(frame))
	assert.False(t, d.Orbit().AutoRotate)
	assert.True(t, d.AutoRotation().Held(focus.HoldScroll))

	before := cam.FOV
	d.Scroll(9000)
	require.NoError(t, d.Tick(frame))
	assert.True(t, d.Frame().Beyond)
	assert.Equal(t, before, cam.FOV)
}

func TestScrollSpeedResets(t *testing.T) {
	d, err := New(cellConfig(), cellAssets(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, d.Orbit().AutoRotateSpeed())

	d.Scroll(40)
	require.NoError(t, d.Tick(frame))
	assert.InDelta(t, 1+4*10.05, d.Orbit().AutoRotateSpeed(), 1e-12)

	run(t, d, 120*time.Millisecond)
	assert.Equal(t, 0.5, d.Orbit().AutoRotateSpeed())
}

func TestRestoreScrollKeepsRestingSpeed(t *testing.T) {
	d, err := New(cellConfig(), cellAssets(), nil)
	require.NoError(t, err)

	d.RestoreScroll(1650)
	require.NoError(t, d.Tick(frame))
	assert.Equal(t, "dive", d.Frame().Zone)
	assert.Equal(t, 0.5, d.Orbit().AutoRotateSpeed())

	d.Scroll(1660)
	require.NoError(t, d.Tick(frame))
	assert.InDelta(t, 1+1*10.05, d.Orbit().AutoRotateSpeed(), 1e-12)
}

func TestScrollFrameAppliedOnce(t *testing.T) {
	d, err := New(cellConfig(), cellAssets(), nil, WithViewport(1000, 800))
	require.NoError(t, err)
	cam := d.Context().Camera

	d.Scroll(450)
	require.NoError(t, d.Tick(frame))
	cam.FOV = 10
	require.NoError(t, d.Tick(frame))
	assert.Equal(t, 10.0, cam.FOV, "a tick without scrolling keeps the camera")

	d.Resize(2000, 800)
	require.NoError(t, d.Tick(frame))
	assert.InDelta(t, 20.0, cam.View().OffsetX, 1e-9)
	assert.NotEqual(t, 10.0, cam.FOV)
}

func TestParticlesAndWaveAdvance(t *testing.T) {
	d, err := New(cellConfig(), cellAssets(), nil)
	require.NoError(t, err)
	cell := d.Context().Cell

	run(t, d, 100*frame)
	assert.InDelta(t, 1.0, cell.Blob.Wave.Time, 1e-9)
	assert.Equal(t, 100, d.Field().Stats().Ticks)
	for i, p := range d.Field().Particles() {
		assert.Equal(t, p.Position, cell.Dots[i].Position)
		assert.LessOrEqual(t, p.Position.Length(), cell.Bounds+d.Field().Config().Speed+1e-9)
	}
}

func TestResizeUpdatesAspect(t *testing.T) {
	d, err := New(cellConfig(), cellAssets(), nil)
	require.NoError(t, err)
	d.Resize(800, 400)
	cam := d.Context().Camera
	assert.Equal(t, 2.0, cam.Aspect)
	assert.Equal(t, 800.0, cam.View().FullWidth)

	d.Resize(0, 10)
	w, h := d.Viewport()
	assert.Equal(t, 800, w)
	assert.Equal(t, 400, h)
}

func TestRasterFrame(t *testing.T) {
	raster := viewer.NewRasterRenderer(160, 100)
	d, err := New(carouselConfig("a.png"), &fakeAssets{}, raster, WithViewport(160, 100))
	require.NoError(t, err)
	require.NoError(t, d.Tick(0))

	px := raster.Image().RGBAAt(80, 50)
	assert.Greater(t, px.R, px.G, "front cover is red")
	stats := raster.Stats()
	assert.Positive(t, stats.Drawn)
	assert.False(t, math.IsNaN(d.Context().Camera.Position.Z))
}
