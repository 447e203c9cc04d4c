package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(0, 1, 0), rayDirection)

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
	}

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	result, scattered := glass.Scatter(ray, hit, sampler)

	if !scattered {
		t.Error("Dielectric should always scatter")
	}

	expectedAttenuation := core.NewVec3(1.0, 1.0, 1.0)
	if result.Attenuation != expectedAttenuation {
		t.Errorf("Expected attenuation %v, got %v", expectedAttenuation, result.Attenuation)
	}

	hasReflection := false
	hasRefraction := false

	for seed := int64(0); seed < 1000 && (!hasReflection || !hasRefraction); seed++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
		result, _ := glass.Scatter(ray, hit, sampler)

		// Reflection keeps the ray above the surface, refraction sends it below
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	if !hasReflection {
		t.Error("Expected to see Fresnel reflection in at least some cases")
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass heading out at a steep angle: sinθ·1.5 > 1
	direction := core.NewVec3(1, 0.2, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, -0.2, 0), direction)
	hit := core.HitRecord{
		Point:     core.NewVec3(1, 0, 0),
		Normal:    core.NewVec3(0, -1, 0), // facing the ray, which travels up
		FrontFace: false,
	}

	for seed := int64(0); seed < 50; seed++ {
		result, scattered := glass.Scatter(ray, hit, core.NewSeededSampler(seed))
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		expected := Reflect(direction.Normalize(), hit.Normal)
		if !result.Scattered.Direction.ApproxEquals(expected, 1e-12) {
			t.Fatalf("Expected total internal reflection %v, got %v", expected, result.Scattered.Direction)
		}
	}
}

func TestDielectricNormalIncidenceNeverTIR(t *testing.T) {
	indices := []float64{1.0, 1.33, 1.5, 2.4, 10.0}

	for _, eta := range indices {
		glass := NewDielectric(eta)

		for _, frontFace := range []bool{true, false} {
			hit := core.HitRecord{
				Point:     core.NewVec3(0, 0, 0),
				Normal:    core.NewVec3(0, 0, 1),
				FrontFace: frontFace,
			}
			ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

			// A draw of 0.999 is above the normal-incidence reflectance for all these
			// indices, so the ray must refract straight through
			result, scattered := glass.Scatter(ray, hit, fixedSampler{value: 0.999})
			if !scattered {
				t.Fatalf("eta=%f: dielectric should always scatter", eta)
			}
			if !result.Scattered.Direction.ApproxEquals(core.NewVec3(0, 0, -1), 1e-12) {
				t.Errorf("eta=%f frontFace=%t: expected straight refraction, got %v",
					eta, frontFace, result.Scattered.Direction)
			}
		}
	}
}

func TestReflectance_Schlick(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence air to glass", 1.0, 1.0 / 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched indices", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	// 45 degrees into glass
	incoming := core.NewVec3(1, -1, 0).Normalize()
	normal := core.NewVec3(0, 1, 0)
	ratio := 1.0 / 1.5

	refracted := Refract(incoming, normal, ratio)

	sinIn := math.Abs(incoming.X)
	sinOut := math.Abs(refracted.Normalize().X)
	if math.Abs(sinIn*ratio-sinOut) > 1e-9 {
		t.Errorf("Snell's law violated: sinIn*ratio=%f, sinOut=%f", sinIn*ratio, sinOut)
	}
	if math.Abs(refracted.Length()-1) > 1e-9 {
		t.Errorf("Refracted unit vector should stay unit length, got %f", refracted.Length())
	}
}
