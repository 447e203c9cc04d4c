package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleOnUnitSphere_UnitLength(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		dir := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(dir.Length()-1.0) > 1e-9 {
			t.Fatalf("Sample %d not on unit sphere: length %f", i, dir.Length())
		}
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))

	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.Z != 0 {
			t.Fatalf("Disk sample %d should lie in the z=0 plane, got %v", i, p)
		}
		if p.Length() > 1.0+1e-12 {
			t.Fatalf("Disk sample %d outside unit disk: %v", i, p)
		}
	}

	// The center of the sample square maps to the disk center
	center := SamplePointInUnitDisk(NewVec2(0.5, 0.5))
	if !center.Equals(NewVec3(0, 0, 0)) {
		t.Errorf("Expected origin for centered sample, got %v", center)
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(99)))

	var sum Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1.0+1e-12 {
			t.Fatalf("Sphere sample %d outside unit sphere: %v", i, p)
		}
		sum = sum.Add(p)
	}

	// Uniform samples should average near the origin
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Mean of uniform sphere samples should be near origin, got %v", mean)
	}
}

func TestSeededSampler_Reproducible(t *testing.T) {
	a := NewSeededSampler(123)
	b := NewSeededSampler(123)

	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Samplers with equal seeds diverged at draw %d", i)
		}
	}
}
