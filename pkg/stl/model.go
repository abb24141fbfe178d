// Package stl reads triangle meshes in the STL format for the cell model parts.
package stl

import (
	"github.com/philipparndt/gocarousel/pkg/geometry"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// Centered returns a copy of the model translated so its bounding box is
// centered on the origin
func (m *Model) Centered() *Model {
	out := &Model{Name: m.Name, Triangles: make([]geometry.Triangle, len(m.Triangles))}
	if len(m.Triangles) == 0 {
		return out
	}
	offset := m.BoundingBox().Center().Negate()
	for i, triangle := range m.Triangles {
		out.Triangles[i] = triangle.Translate(offset)
	}
	return out
}
