package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the closest intersection with t in [tMin, tMax], if any
	Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
}
