// Package scene is a small retained scene graph: groups, boxes, spheres and
// triangle meshes with per-node transforms, flattened to world-space facets
// for rendering and picking.
package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gocarousel/pkg/geometry"
)

// ShapeKind is the geometry carried by a node
type ShapeKind int

const (
	ShapeGroup ShapeKind = iota
	ShapeBox
	ShapeSphere
	ShapeMesh
)

// Box face order used for per-face materials
const (
	FaceRight = iota
	FaceLeft
	FaceTop
	FaceBottom
	FaceFront
	FaceBack
	faceCount
)

// NoTag marks nodes that do not belong to a ring item
const NoTag = -1

// Wave displaces sphere vertices along their normals with a moving sine field
type Wave struct {
	Time        float64
	Deformation float64
	Amplitude   float64
}

// Offset returns the displacement at model-space point p
func (w *Wave) Offset(p geometry.Vector3) float64 {
	q := p.Mul(w.Deformation)
	n := math.Sin(q.X*0.5+w.Time)*0.5 + math.Sin(q.Y*0.5+w.Time)*0.5 + math.Sin(q.Z*0.5+w.Time)*0.5
	return n * w.Amplitude
}

// Node is an element of the scene graph
type Node struct {
	Name      string
	Kind      ShapeKind
	Size      geometry.Vector3
	Radius    float64
	Segments  int
	Triangles []geometry.Triangle
	Materials []Material

	Position  geometry.Vector3
	RotationY float64
	Scale     float64
	Visible   bool
	Pickable  bool
	Tag       int
	Wave      *Wave

	Children []*Node
	parent   *Node
}

// NewGroup creates an empty transform node
func NewGroup(name string) *Node {
	return &Node{Name: name, Kind: ShapeGroup, Scale: 1, Visible: true, Tag: NoTag}
}

// NewBox creates a box with one material per face in Face order
func NewBox(name string, size geometry.Vector3, faces [6]Material) *Node {
	n := NewGroup(name)
	n.Kind = ShapeBox
	n.Size = size
	n.Materials = faces[:]
	return n
}

// NewSphere creates a UV sphere
func NewSphere(name string, radius float64, segments int, m Material) *Node {
	if segments < 3 {
		segments = 3
	}
	n := NewGroup(name)
	n.Kind = ShapeSphere
	n.Radius = radius
	n.Segments = segments
	n.Materials = []Material{m}
	return n
}

// NewMesh creates a node from model-space triangles
func NewMesh(name string, triangles []geometry.Triangle, m Material) *Node {
	n := NewGroup(name)
	n.Kind = ShapeMesh
	n.Triangles = triangles
	n.Materials = []Material{m}
	return n
}

// Add attaches children to the node
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.Children = append(n.Children, c)
	}
}

// Remove detaches a child
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the node this one is attached to
func (n *Node) Parent() *Node {
	return n.parent
}

// LocalMatrix composes translation, yaw and uniform scale
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X, n.Position.Y, n.Position.Z)
	r := mgl64.HomogRotate3DY(n.RotationY)
	s := mgl64.Scale3D(n.Scale, n.Scale, n.Scale)
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes the transforms from the root down to this node
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Walk visits the node and its descendants depth first until fn returns false
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first descendant with the given name
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// material returns the material for a face index, falling back to the first
func (n *Node) material(face int) *Material {
	if len(n.Materials) == 0 {
		return &defaultMaterial
	}
	if face < len(n.Materials) {
		return &n.Materials[face]
	}
	return &n.Materials[0]
}

var defaultMaterial = Flat(color.RGBA{200, 200, 200, 255})
