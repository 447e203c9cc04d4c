package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Scene is what an integrator needs from the world it traces through
type Scene interface {
	// Hit returns the closest intersection with t in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
	// Material resolves a handle, falling back to the default material
	Material(id core.MaterialID) material.Material
	// BackgroundColors returns the sky gradient endpoints
	BackgroundColors() (topColor, bottomColor core.Vec3)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance carried back along ray, with depth bounces left
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Vec3
}
