package geometry

import (
	"math"
	"testing"
)

func TestRayIntersectBox(t *testing.T) {
	box := BoxAround(NewVector3(0, 0, 0), NewVector3(2, 2, 2))
	ray := NewRay(NewVector3(0, 0, 10), NewVector3(0, 0, -1))

	dist, ok := ray.IntersectBox(box)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(dist-9) > 1e-10 {
		t.Errorf("IntersectBox failed: expected 9, got %v", dist)
	}
}

func TestRayMissesBox(t *testing.T) {
	box := BoxAround(NewVector3(0, 0, 0), NewVector3(2, 2, 2))
	ray := NewRay(NewVector3(5, 0, 10), NewVector3(0, 0, -1))

	if _, ok := ray.IntersectBox(box); ok {
		t.Error("expected a miss for parallel ray outside the slab")
	}

	behind := NewRay(NewVector3(0, 0, 10), NewVector3(0, 0, 1))
	if _, ok := behind.IntersectBox(box); ok {
		t.Error("expected a miss for box behind the ray")
	}
}

func TestRayInsideBox(t *testing.T) {
	box := BoxAround(NewVector3(0, 0, 0), NewVector3(2, 2, 2))
	ray := NewRay(NewVector3(0, 0, 0), NewVector3(1, 1, 0))

	dist, ok := ray.IntersectBox(box)
	if !ok || dist != 0 {
		t.Errorf("ray from inside failed: expected (0, true), got (%v, %v)", dist, ok)
	}
}

func TestRayIntersectTriangle(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(-1, -1, 0),
		NewVector3(1, -1, 0),
		NewVector3(0, 1, 0),
	)
	ray := NewRay(NewVector3(0, 0, 5), NewVector3(0, 0, -1))

	dist, ok := ray.IntersectTriangle(tri)
	if !ok || math.Abs(dist-5) > 1e-10 {
		t.Errorf("IntersectTriangle failed: expected (5, true), got (%v, %v)", dist, ok)
	}

	miss := NewRay(NewVector3(3, 0, 5), NewVector3(0, 0, -1))
	if _, ok := miss.IntersectTriangle(tri); ok {
		t.Error("expected a miss outside the triangle")
	}
}

func TestRayIntersectSphere(t *testing.T) {
	ray := NewRay(NewVector3(0, 0, 10), NewVector3(0, 0, -1))
	dist, ok := ray.IntersectSphere(NewVector3(0, 0, 0), 2)
	if !ok || math.Abs(dist-8) > 1e-10 {
		t.Errorf("IntersectSphere failed: expected (8, true), got (%v, %v)", dist, ok)
	}

	inside := NewRay(NewVector3(0, 0, 0), NewVector3(1, 0, 0))
	dist, ok = inside.IntersectSphere(NewVector3(0, 0, 0), 2)
	if !ok || math.Abs(dist-2) > 1e-10 {
		t.Errorf("IntersectSphere from inside failed: expected (2, true), got (%v, %v)", dist, ok)
	}
}
