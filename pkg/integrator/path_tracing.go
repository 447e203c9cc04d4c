package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// MinHitDistance is the lower t bound for intersection queries. Scattered rays start
// exactly on the surface, so a zero bound would let them re-hit it ("shadow acne").
const MinHitDistance = 0.001

// PathTracingIntegrator implements unidirectional path tracing with explicit bounded recursion
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := scene.Hit(ray, MinHitDistance, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray, scene)
	}

	scatter, didScatter := scene.Material(hit.Material).Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, scene, sampler, depth-1))
}

// BackgroundGradient returns the sky color seen along the ray's direction
func BackgroundGradient(r core.Ray, scene Scene) core.Vec3 {
	topColor, bottomColor := scene.BackgroundColors()

	// Map the y-component from [-1,1] to [0,1]
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return bottomColor.Lerp(topColor, t)
}
