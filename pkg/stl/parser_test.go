package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"
)

const asciiCube = `solid ribbons
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 2 0 0
      vertex 0 4 0
    endloop
  endfacet
  facet normal 0 0 -1
    outer loop
      vertex 0 0 6
      vertex 2 0 6
      vertex 0 4 6
    endloop
  endfacet
endsolid ribbons
`

func TestParseASCII(t *testing.T) {
	model, err := Parse(strings.NewReader(asciiCube))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if model.Name != "ribbons" {
		t.Errorf("Name failed: expected ribbons, got %q", model.Name)
	}
	if model.TriangleCount() != 2 {
		t.Fatalf("TriangleCount failed: expected 2, got %d", model.TriangleCount())
	}
	bbox := model.BoundingBox()
	if bbox.Max.Z != 6 || bbox.Max.Y != 4 {
		t.Errorf("BoundingBox failed: got %v", bbox)
	}
}

func TestParseASCIIBadVertex(t *testing.T) {
	input := "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 zero 0\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Error("expected an error for a malformed vertex")
	}
}

func binarySTL(t *testing.T, declared uint32, facets int) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, "sponge")
	buf.Write(header)
	if err := binary.Write(&buf, binary.LittleEndian, declared); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < facets; i++ {
		rec := facetRecord{
			Normal: [3]float32{0, 0, 1},
			V1:     [3]float32{float32(i), 0, 0},
			V2:     [3]float32{float32(i) + 1, 0, 0},
			V3:     [3]float32{float32(i), 1, 0},
		}
		if err := binary.Write(&buf, binary.LittleEndian, rec); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func TestParseBinary(t *testing.T) {
	model, err := Parse(bytes.NewReader(binarySTL(t, 3, 3)))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if model.Name != "sponge" {
		t.Errorf("Name failed: expected sponge, got %q", model.Name)
	}
	if model.TriangleCount() != 3 {
		t.Fatalf("TriangleCount failed: expected 3, got %d", model.TriangleCount())
	}
	if model.Triangles[2].V2.X != 3 {
		t.Errorf("vertex decode failed: got %v", model.Triangles[2].V2)
	}
}

func TestParseBinaryTruncated(t *testing.T) {
	_, err := Parse(bytes.NewReader(binarySTL(t, 5, 2)))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(bytes.NewReader(nil)); err == nil {
		t.Error("expected an error for empty input")
	}
}

func TestCentered(t *testing.T) {
	model, err := Parse(strings.NewReader(asciiCube))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	centered := model.Centered()
	c := centered.BoundingBox().Center()
	if math.Abs(c.X)+math.Abs(c.Y)+math.Abs(c.Z) > 1e-12 {
		t.Errorf("Centered failed: center is %v", c)
	}
	if model.BoundingBox().Min.X != 0 {
		t.Error("Centered modified the original model")
	}
}
