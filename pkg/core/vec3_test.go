package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Cross", a.Cross(b), NewVec3(27, 6, -13)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Lerp midpoint", a.Lerp(b, 0.5), NewVec3(2.5, -1.5, 4.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.result.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	if a.Dot(b) != 12 {
		t.Errorf("Expected dot product 12, got %f", a.Dot(b))
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Normalized vector should have unit length, got %f", v.Length())
	}

	zero := NewVec3(0, 0, 0).Normalize()
	if !zero.Equals(NewVec3(0, 0, 0)) {
		t.Errorf("Normalizing zero vector should return zero, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected bool
	}{
		{"exact zero", NewVec3(0, 0, 0), true},
		{"tiny components", NewVec3(1e-9, -1e-9, 5e-10), true},
		{"one large component", NewVec3(1e-9, 1e-3, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.vector.NearZero() != tt.expected {
				t.Errorf("NearZero(%v) = %v, expected %v", tt.vector, !tt.expected, tt.expected)
			}
		})
	}
}

func TestVec3_GammaCorrect(t *testing.T) {
	v := NewVec3(0.25, 1.0, -0.5).GammaCorrect(2.0)
	expected := NewVec3(0.5, 1.0, 0.0)
	if !v.ApproxEquals(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, v)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))
	p := ray.At(1.5)
	if !p.Equals(NewVec3(1, 3, 0)) {
		t.Errorf("Expected (1,3,0), got %v", p)
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := NewVec3(0, 0, 1)

	var front HitRecord
	front.SetFaceNormal(NewRay(NewVec3(0, 0, 2), NewVec3(0, 0, -1)), outward)
	if !front.FrontFace || !front.Normal.Equals(outward) {
		t.Errorf("Ray against outward normal should be front face with unchanged normal, got %+v", front)
	}

	var back HitRecord
	back.SetFaceNormal(NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)), outward)
	if back.FrontFace || !back.Normal.Equals(outward.Negate()) {
		t.Errorf("Ray along outward normal should be back face with flipped normal, got %+v", back)
	}
}
