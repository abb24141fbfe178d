package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	"github.com/philipparndt/gocarousel/pkg/geometry"
	"github.com/philipparndt/gocarousel/pkg/scene"
)

// RasterRenderer draws a scene into an RGBA image with a depth buffer.
// Opaque and textured facets are drawn first, transmissive facets are then
// blended back to front without writing depth.
type RasterRenderer struct {
	Light         geometry.Vector3
	Ambient       float64
	CullBackfaces bool

	img     *image.RGBA
	zbuffer []float64
	stats   FrameStats
}

// FrameStats describes the last rendered frame
type FrameStats struct {
	Facets  int
	Drawn   int
	Culled  int
	Clipped int
	Frames  int
}

// NewRasterRenderer creates a renderer with a fixed output size
func NewRasterRenderer(width, height int) *RasterRenderer {
	r := &RasterRenderer{
		Light:         geometry.NewVector3(-0.5, -1.0, -0.5).Normalize(),
		Ambient:       0.55,
		CullBackfaces: true,
	}
	r.Resize(width, height)
	return r
}

// Resize reallocates the frame and depth buffers
func (r *RasterRenderer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.zbuffer = make([]float64, width*height)
}

// Image returns the last rendered frame
func (r *RasterRenderer) Image() *image.RGBA {
	return r.img
}

// Stats returns counters for the last frame
func (r *RasterRenderer) Stats() FrameStats {
	return r.stats
}

// WritePNG encodes the last frame
func (r *RasterRenderer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}

type projected struct {
	x, y, z [3]float64
	facet   *scene.Facet
	shade   float64
	depth   float64
}

// Render draws the scene as seen by the camera
func (r *RasterRenderer) Render(sc *scene.Scene, cam *Camera) error {
	if sc == nil || cam == nil {
		return fmt.Errorf("render: scene and camera are required")
	}
	bounds := r.img.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	for i := range r.zbuffer {
		r.zbuffer[i] = math.Inf(1)
	}
	bg := sc.Background
	for i := 0; i < len(r.img.Pix); i += 4 {
		r.img.Pix[i+0] = bg.R
		r.img.Pix[i+1] = bg.G
		r.img.Pix[i+2] = bg.B
		r.img.Pix[i+3] = 255
	}

	facets := sc.Facets()
	stats := FrameStats{Facets: len(facets), Frames: r.stats.Frames + 1}

	var solid, glass []projected
	for i := range facets {
		f := &facets[i]
		tri := f.Triangle
		if r.CullBackfaces && f.Material.Kind != scene.Transmissive {
			if tri.Normal.Dot(cam.Position.Sub(tri.V1)) <= 0 {
				stats.Culled++
				continue
			}
		}

		var p projected
		visible := true
		for k, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			sx, sy, depth := cam.Project(v, width, height)
			if depth <= cam.Near {
				visible = false
				break
			}
			p.x[k], p.y[k], p.z[k] = sx, sy, depth
		}
		if !visible {
			stats.Clipped++
			continue
		}
		p.facet = f
		p.shade = math.Min(1, r.Ambient+math.Max(0, -tri.Normal.Dot(r.Light))*(1-r.Ambient))
		p.depth = (p.z[0] + p.z[1] + p.z[2]) / 3

		if f.Material.Kind == scene.Transmissive {
			glass = append(glass, p)
		} else {
			solid = append(solid, p)
		}
	}

	for i := range solid {
		r.fill(&solid[i], false)
	}
	sort.SliceStable(glass, func(i, j int) bool { return glass[i].depth > glass[j].depth })
	for i := range glass {
		r.fill(&glass[i], true)
	}

	stats.Drawn = len(solid) + len(glass)
	r.stats = stats
	return nil
}

// fill rasterizes one projected facet using barycentric coverage with
// perspective-correct texture coordinates
func (r *RasterRenderer) fill(p *projected, blend bool) {
	bounds := r.img.Bounds()
	w := bounds.Dx()

	minX := int(math.Max(0, math.Floor(min3(p.x[0], p.x[1], p.x[2]))))
	maxX := int(math.Min(float64(bounds.Max.X-1), math.Ceil(max3(p.x[0], p.x[1], p.x[2]))))
	minY := int(math.Max(0, math.Floor(min3(p.y[0], p.y[1], p.y[2]))))
	maxY := int(math.Min(float64(bounds.Max.Y-1), math.Ceil(max3(p.y[0], p.y[1], p.y[2]))))
	if minX > maxX || minY > maxY {
		return
	}

	area := edge(p.x[0], p.y[0], p.x[1], p.y[1], p.x[2], p.y[2])
	if math.Abs(area) < 1e-12 {
		return
	}

	var invZ [3]float64
	for k := range invZ {
		invZ[k] = 1 / p.z[k]
	}
	mat := p.facet.Material
	uv := p.facet.UV
	opacity := mat.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}

	for y := minY; y <= maxY; y++ {
		fy := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			fx := float64(x) + 0.5
			w0 := edge(p.x[1], p.y[1], p.x[2], p.y[2], fx, fy) / area
			w1 := edge(p.x[2], p.y[2], p.x[0], p.y[0], fx, fy) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			iz := w0*invZ[0] + w1*invZ[1] + w2*invZ[2]
			z := 1 / iz
			idx := y*w + x
			if z >= r.zbuffer[idx] {
				continue
			}

			u := (w0*uv[0][0]*invZ[0] + w1*uv[1][0]*invZ[1] + w2*uv[2][0]*invZ[2]) * z
			v := (w0*uv[0][1]*invZ[0] + w1*uv[1][1]*invZ[1] + w2*uv[2][1]*invZ[2]) * z
			col := shadeColor(mat.Sample(u, v), p.shade)

			if blend {
				r.blendPixel(x, y, col, opacity)
				continue
			}
			r.zbuffer[idx] = z
			r.img.SetRGBA(x, y, col)
		}
	}
}

func (r *RasterRenderer) blendPixel(x, y int, col color.RGBA, alpha float64) {
	dst := r.img.RGBAAt(x, y)
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round(float64(s)*alpha + float64(d)*(1-alpha)))
	}
	r.img.SetRGBA(x, y, color.RGBA{mix(col.R, dst.R), mix(col.G, dst.G), mix(col.B, dst.B), 255})
}

func shadeColor(c color.RGBA, shade float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*shade))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}

func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
