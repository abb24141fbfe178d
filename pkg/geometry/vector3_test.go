package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3RotateAround(t *testing.T) {
	v := NewVector3(1, 0, 0)
	result := v.RotateAround(NewVector3(0, 0, 2), math.Pi/2)

	expected := NewVector3(0, 1, 0)
	if result.Distance(expected) > 1e-10 {
		t.Errorf("RotateAround failed: expected %v, got %v", expected, result)
	}
}

func TestVector3RotateAroundPreservesLength(t *testing.T) {
	v := NewVector3(0.3, -0.4, 1.2)
	axis := NewVector3(1, 1, -0.5)
	for angle := -math.Pi; angle <= math.Pi; angle += 0.1 {
		result := v.RotateAround(axis, angle)
		if math.Abs(result.Length()-v.Length()) > 1e-10 {
			t.Fatalf("RotateAround changed length at angle %v: %v", angle, result.Length())
		}
		if math.Abs(result.Dot(axis.Normalize())-v.Dot(axis.Normalize())) > 1e-10 {
			t.Fatalf("RotateAround changed the axial component at angle %v", angle)
		}
	}
}

func TestVector3RotateAroundZeroAxis(t *testing.T) {
	v := NewVector3(1, 2, 3)
	if result := v.RotateAround(Vector3{}, 1); result != v {
		t.Errorf("RotateAround with zero axis failed: expected %v, got %v", v, result)
	}
}

func TestVector3NormalizeZero(t *testing.T) {
	if result := (Vector3{}).Normalize(); result != (Vector3{}) {
		t.Errorf("Normalize of zero vector failed: got %v", result)
	}
}

func TestVector3IsFinite(t *testing.T) {
	if !NewVector3(1, 2, 3).IsFinite() {
		t.Error("IsFinite failed for finite vector")
	}
	if NewVector3(math.NaN(), 0, 0).IsFinite() {
		t.Error("IsFinite failed for NaN component")
	}
}
