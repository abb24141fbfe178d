package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gocarousel/pkg/geometry"
)

// Facet is a world-space triangle ready for rasterization or picking
type Facet struct {
	Triangle geometry.Triangle
	UV       [3][2]float64
	Material *Material
	Node     *Node
}

// Scene holds the root of the graph and the clear color
type Scene struct {
	Root       *Node
	Background color.RGBA
}

// New creates a scene with an empty root group
func New() *Scene {
	return &Scene{Root: NewGroup("root"), Background: color.RGBA{15, 18, 25, 255}}
}

// Facets flattens every visible shape into world-space triangles
func (s *Scene) Facets() []Facet {
	var out []Facet
	collectFacets(s.Root, mgl64.Ident4(), &out)
	return out
}

// NodeFacets flattens a single subtree, using its full world transform
func NodeFacets(n *Node) []Facet {
	var out []Facet
	parent := mgl64.Ident4()
	if n.parent != nil {
		parent = n.parent.WorldMatrix()
	}
	collectFacets(n, parent, &out)
	return out
}

func collectFacets(n *Node, parent mgl64.Mat4, out *[]Facet) {
	if !n.Visible {
		return
	}
	world := parent.Mul4(n.LocalMatrix())
	for _, f := range localFacets(n) {
		f.Triangle = transformTriangle(world, f.Triangle)
		f.Node = n
		*out = append(*out, f)
	}
	for _, c := range n.Children {
		collectFacets(c, world, out)
	}
}

// WorldBounds returns the bounding box of a subtree in world space
func WorldBounds(n *Node) geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, f := range NodeFacets(n) {
		bbox.Extend(f.Triangle.V1)
		bbox.Extend(f.Triangle.V2)
		bbox.Extend(f.Triangle.V3)
	}
	return bbox
}

// Hit is the result of a successful pick
type Hit struct {
	Node     *Node
	Distance float64
	Point    geometry.Vector3
}

// Pick returns the nearest pickable node hit by the ray. Descendants of a
// pickable node report that node.
func (s *Scene) Pick(ray geometry.Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false
	var visit func(n *Node)
	visit = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.Pickable {
			if bbox := WorldBounds(n); !bbox.Empty() {
				if _, ok := ray.IntersectBox(bbox); !ok {
					return
				}
			}
			for _, f := range NodeFacets(n) {
				if d, ok := ray.IntersectTriangle(f.Triangle); ok && d < best.Distance {
					best = Hit{Node: n, Distance: d, Point: ray.At(d)}
					found = true
				}
			}
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(s.Root)
	return best, found
}

func transformPoint(m mgl64.Mat4, p geometry.Vector3) geometry.Vector3 {
	return geometry.FromVec(m.Mul4x1(p.Vec().Vec4(1)).Vec3())
}

func transformTriangle(m mgl64.Mat4, t geometry.Triangle) geometry.Triangle {
	out := geometry.Triangle{
		V1: transformPoint(m, t.V1),
		V2: transformPoint(m, t.V2),
		V3: transformPoint(m, t.V3),
	}
	out.Normal = out.CalculateNormal()
	return out
}

// localFacets builds the model-space facets of a node's own shape
func localFacets(n *Node) []Facet {
	switch n.Kind {
	case ShapeBox:
		return boxFacets(n)
	case ShapeSphere:
		return sphereFacets(n)
	case ShapeMesh:
		m := n.material(0)
		out := make([]Facet, len(n.Triangles))
		for i, t := range n.Triangles {
			out[i] = Facet{Triangle: t, Material: m}
		}
		return out
	}
	return nil
}

// Corner order per face is bottom-left, bottom-right, top-right, top-left as
// seen from outside the box.
var boxCorners = [faceCount][4][3]float64{
	FaceRight:  {{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},
	FaceLeft:   {{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
	FaceTop:    {{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
	FaceBottom: {{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
	FaceFront:  {{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
	FaceBack:   {{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
}

var quadUV = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func boxFacets(n *Node) []Facet {
	half := n.Size.Mul(0.5)
	out := make([]Facet, 0, faceCount*2)
	for face := 0; face < faceCount; face++ {
		var v [4]geometry.Vector3
		for i, c := range boxCorners[face] {
			v[i] = geometry.NewVector3(c[0]*half.X, c[1]*half.Y, c[2]*half.Z)
		}
		m := n.material(face)
		for _, idx := range [2][3]int{{0, 1, 2}, {0, 2, 3}} {
			t := geometry.Triangle{V1: v[idx[0]], V2: v[idx[1]], V3: v[idx[2]]}
			t.Normal = t.CalculateNormal()
			out = append(out, Facet{
				Triangle: t,
				UV:       [3][2]float64{quadUV[idx[0]], quadUV[idx[1]], quadUV[idx[2]]},
				Material: m,
			})
		}
	}
	return out
}

func sphereFacets(n *Node) []Facet {
	seg := n.Segments
	rings := seg
	grid := make([][]geometry.Vector3, rings+1)
	for j := 0; j <= rings; j++ {
		theta := math.Pi * float64(j) / float64(rings)
		grid[j] = make([]geometry.Vector3, seg+1)
		for i := 0; i <= seg; i++ {
			phi := 2 * math.Pi * float64(i) / float64(seg)
			normal := geometry.NewVector3(
				-math.Cos(phi)*math.Sin(theta),
				math.Cos(theta),
				math.Sin(phi)*math.Sin(theta),
			)
			p := normal.Mul(n.Radius)
			if n.Wave != nil {
				p = p.Add(normal.Mul(n.Wave.Offset(p)))
			}
			grid[j][i] = p
		}
	}

	m := n.material(0)
	out := make([]Facet, 0, seg*rings*2)
	for j := 0; j < rings; j++ {
		for i := 0; i < seg; i++ {
			a := grid[j][i]
			b := grid[j+1][i]
			c := grid[j+1][i+1]
			d := grid[j][i+1]
			u0, u1 := float64(i)/float64(seg), float64(i+1)/float64(seg)
			v0, v1 := 1-float64(j)/float64(rings), 1-float64(j+1)/float64(rings)
			if j != 0 {
				t := geometry.Triangle{V1: a, V2: b, V3: d}
				t.Normal = t.CalculateNormal()
				out = append(out, Facet{Triangle: t, UV: [3][2]float64{{u0, v0}, {u0, v1}, {u1, v0}}, Material: m})
			}
			if j != rings-1 {
				t := geometry.Triangle{V1: b, V2: c, V3: d}
				t.Normal = t.CalculateNormal()
				out = append(out, Facet{Triangle: t, UV: [3][2]float64{{u0, v1}, {u1, v1}, {u1, v0}}, Material: m})
			}
		}
	}
	return out
}

// Subdivide splits a facet into n² smaller facets on a barycentric grid.
// Each piece keeps the material and interpolated texture coordinates.
func (f Facet) Subdivide(n int) []Facet {
	if n <= 1 {
		return []Facet{f}
	}
	t := f.Triangle
	e1, e2 := t.V2.Sub(t.V1), t.V3.Sub(t.V1)
	point := func(i, j int) (geometry.Vector3, [2]float64) {
		a, b := float64(i)/float64(n), float64(j)/float64(n)
		p := t.V1.Add(e1.Mul(a)).Add(e2.Mul(b))
		var uv [2]float64
		for k := 0; k < 2; k++ {
			uv[k] = f.UV[0][k] + (f.UV[1][k]-f.UV[0][k])*a + (f.UV[2][k]-f.UV[0][k])*b
		}
		return p, uv
	}
	piece := func(i0, j0, i1, j1, i2, j2 int) Facet {
		p0, uv0 := point(i0, j0)
		p1, uv1 := point(i1, j1)
		p2, uv2 := point(i2, j2)
		return Facet{
			Triangle: geometry.Triangle{Normal: t.Normal, V1: p0, V2: p1, V3: p2},
			UV:       [3][2]float64{uv0, uv1, uv2},
			Material: f.Material,
			Node:     f.Node,
		}
	}

	out := make([]Facet, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; i+j < n; j++ {
			out = append(out, piece(i, j, i+1, j, i, j+1))
			if i+j < n-1 {
				out = append(out, piece(i+1, j, i+1, j+1, i, j+1))
			}
		}
	}
	return out
}

// CentroidUV returns the texture coordinate at the facet centre
func (f Facet) CentroidUV() (float64, float64) {
	return (f.UV[0][0] + f.UV[1][0] + f.UV[2][0]) / 3, (f.UV[0][1] + f.UV[1][1] + f.UV[2][1]) / 3
}
