package app

import (
	"image/color"
	"math"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gocarousel/pkg/geometry"
	"github.com/philipparndt/gocarousel/pkg/scene"
	"github.com/philipparndt/gocarousel/pkg/viewer"
)

// Renderer draws scene facets with raylib in immediate mode. Lighting is
// baked into the vertex colors; textured facets are split so the cover shows
// through at a useful resolution.
type Renderer struct {
	lightDir  geometry.Vector3
	subdivide int
	triangles int
}

// NewRenderer creates a renderer with the default light
func NewRenderer() *Renderer {
	return &Renderer{
		lightDir:  geometry.NewVector3(-0.5, -1.0, -0.5).Normalize(),
		subdivide: 6,
	}
}

// Triangles returns the number of triangles drawn in the last frame
func (r *Renderer) Triangles() int { return r.triangles }

// Render draws one frame. It must run on the window thread between
// BeginDrawing and EndDrawing.
func (r *Renderer) Render(sc *scene.Scene, cam *viewer.Camera) error {
	bg := sc.Background
	rl.ClearBackground(rl.NewColor(bg.R, bg.G, bg.B, 255))

	rl.BeginMode3D(toRaylibCamera(cam))
	// use our own projection so view offsets and clip planes match the core camera
	rl.SetMatrixProjection(toRaylibMatrix(cam.ProjectionMatrix()))

	r.triangles = 0
	var glass []scene.Facet
	for _, f := range sc.Facets() {
		if f.Material.Kind == scene.Transmissive {
			glass = append(glass, f)
			continue
		}
		r.drawFacet(f)
	}

	eye := cam.Position
	sort.SliceStable(glass, func(i, j int) bool {
		return glass[i].Triangle.Center().Distance(eye) > glass[j].Triangle.Center().Distance(eye)
	})
	rl.BeginBlendMode(rl.BlendAlpha)
	for _, f := range glass {
		r.drawFacet(f)
	}
	rl.EndBlendMode()

	rl.EndMode3D()
	return nil
}

func (r *Renderer) drawFacet(f scene.Facet) {
	if f.Material.Kind == scene.Textured {
		for _, piece := range f.Subdivide(r.subdivide) {
			r.drawTriangle(piece)
		}
		return
	}
	r.drawTriangle(f)
}

func (r *Renderer) drawTriangle(f scene.Facet) {
	m := f.Material
	u, v := f.CentroidUV()
	base := m.Sample(u, v)
	alpha := uint8(255)
	if m.Kind == scene.Transmissive {
		alpha = uint8(math.Round(255 * clamp01(m.Opacity)))
	}
	col := bakeLight(base, f.Triangle.Normal, r.lightDir, alpha)

	t := f.Triangle
	rl.DrawTriangle3D(toRaylibVector(t.V1), toRaylibVector(t.V2), toRaylibVector(t.V3), col)
	// glass is seen from both sides
	if m.Kind == scene.Transmissive {
		rl.DrawTriangle3D(toRaylibVector(t.V1), toRaylibVector(t.V3), toRaylibVector(t.V2), col)
	}
	r.triangles++
}

// bakeLight applies diffuse lighting with a 30% floor
func bakeLight(c color.RGBA, normal, lightDir geometry.Vector3, alpha uint8) rl.Color {
	intensity := math.Max(0.3, -normal.Dot(lightDir))
	return rl.NewColor(
		uint8(float64(c.R)*intensity),
		uint8(float64(c.G)*intensity),
		uint8(float64(c.B)*intensity),
		alpha,
	)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func toRaylibVector(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toRaylibCamera(cam *viewer.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toRaylibVector(cam.Position),
		Target:     toRaylibVector(cam.Target),
		Up:         toRaylibVector(cam.Up),
		Fovy:       float32(cam.FOV),
		Projection: rl.CameraPerspective,
	}
}

// toRaylibMatrix converts a column-major mgl64 matrix. Raylib names its
// fields in column-major order too, so m[i] maps to Mi.
func toRaylibMatrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
		M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
		M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
		M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
	}
}
