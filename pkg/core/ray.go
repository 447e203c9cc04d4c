package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// MaterialID is a handle into a material arena. Geometry stores handles rather
// than material values so the arena is free to grow after shapes reference it.
type MaterialID int

// NoMaterial marks a shape without an assigned material
const NoMaterial MaterialID = -1

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3       // Point of intersection
	Normal    Vec3       // Unit surface normal, facing against the incoming ray
	T         float64    // Parameter t along the ray
	FrontFace bool       // Whether the ray struck the outward-facing side
	Material  MaterialID // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
