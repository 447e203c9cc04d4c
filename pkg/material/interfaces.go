package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind tags the closed set of material variants
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

// String returns the lower-case variant name
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Material is a tagged union over the supported scattering models.
// Only the fields belonging to Kind are meaningful.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and Metal reflectance
	Fuzz            float64   // Metal roughness in [0, 1]
	RefractiveIndex float64   // Dielectric index of refraction
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray, starting exactly at the hit point
	Attenuation core.Vec3 // Color attenuation
}

// Scatter dispatches to the variant's scattering model.
// The boolean is false when the material absorbs the ray.
func (m Material) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// DefaultMaterial is used for shapes without a material: a mid-gray diffuse surface
func DefaultMaterial() Material {
	return NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
}
