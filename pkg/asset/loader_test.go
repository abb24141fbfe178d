package asset

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cube = `solid part
facet normal 0 0 1
  outer loop
    vertex 2 2 2
    vertex 4 2 2
    vertex 4 4 6
  endloop
endfacet
endsolid part
`

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestLoadTextureFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cover.png", pngBytes(t, 8, 4))

	l := NewLoader(WithBaseDir(dir))
	img, err := l.LoadTexture(context.Background(), "cover.png")
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestLoadTextureDownscales(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.png", pngBytes(t, 64, 32))

	l := NewLoader(WithBaseDir(dir), WithMaxTexture(16))
	img, err := l.LoadTexture(context.Background(), "big.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())

	r, g, b, _ := img.At(4, 4).RGBA()
	assert.Equal(t, uint32(200), r>>8)
	assert.Equal(t, uint32(100), g>>8)
	assert.Equal(t, uint32(50), b>>8)
}

func TestLoadTextureOverHTTP(t *testing.T) {
	data := pngBytes(t, 2, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cover.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	l := NewLoader(WithHTTPClient(srv.Client()))
	img, err := l.LoadTexture(context.Background(), srv.URL+"/cover.png")
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())

	_, err = l.LoadTexture(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoadModelIsCentered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "part.stl", []byte(cube))

	l := NewLoader(WithBaseDir(dir))
	model, err := l.LoadModel(context.Background(), "part.stl")
	require.NoError(t, err)
	require.Equal(t, 1, model.TriangleCount())
	center := model.BoundingBox().Center()
	assert.InDelta(t, 0.0, center.Length(), 1e-12)
	assert.Equal(t, "part.stl", model.Name)
}

func TestBatchReportsPerItem(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", pngBytes(t, 2, 2))
	writeFile(t, dir, "broken.png", []byte("not an image"))
	writeFile(t, dir, "c.png", pngBytes(t, 3, 3))

	l := NewLoader(WithBaseDir(dir), WithConcurrency(2))
	results := l.LoadTextures(context.Background(), []string{"a.png", "broken.png", "missing.png", "c.png"})
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.ErrorIs(t, results[2].Err, os.ErrNotExist)
	assert.NoError(t, results[3].Err)
	assert.Equal(t, "c.png", results[3].Source)
	assert.Equal(t, 3, results[3].Image.Bounds().Dx())
}

func TestBatchHonoursCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "part.stl", []byte(cube))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := NewLoader(WithBaseDir(dir)).LoadModels(ctx, []string{"part.stl"})
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestResolve(t *testing.T) {
	l := NewLoader(WithBaseDir("/assets"))
	assert.Equal(t, filepath.Join("/assets", "a.png"), l.Resolve("a.png"))
	assert.Equal(t, "/abs/a.png", l.Resolve("/abs/a.png"))
	assert.Equal(t, "https://example.com/a.png", l.Resolve("https://example.com/a.png"))
}
