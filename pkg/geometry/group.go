package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// Group is an ordered collection of shapes that is itself a Shape, so groups can nest.
// It owns only the slice; materials are referenced by id.
type Group struct {
	shapes []Shape
}

// NewGroup creates a group holding the given shapes
func NewGroup(shapes ...Shape) *Group {
	g := &Group{}
	g.Add(shapes...)
	return g
}

// Add appends shapes in order
func (g *Group) Add(shapes ...Shape) {
	g.shapes = append(g.shapes, shapes...)
}

// Len returns the number of direct members
func (g *Group) Len() int {
	return len(g.shapes)
}

// Shapes returns the direct members in insertion order
func (g *Group) Shapes() []Shape {
	return g.shapes
}

// Hit returns the closest intersection among all members.
// The upper bound shrinks to the best t found so far, so member order never changes the result.
func (g *Group) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range g.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
