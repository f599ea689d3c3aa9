package core

import "math"

// Epsilon is the margin used to keep secondary rays from re-hitting the surface they leave
const Epsilon = 1e-4

// Ray represents a ray with an origin, a unit direction and a valid parametric interval
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray valid over [Epsilon, +Inf). The direction is normalized.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize(), TMin: Epsilon, TMax: math.Inf(1)}
}

// NewRayInterval creates a ray valid over [tMin, tMax]
func NewRayInterval(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize(), TMin: tMin, TMax: tMax}
}

// NewSegment creates an occlusion ray from a toward b that excludes both endpoints by Epsilon
func NewSegment(from, to Vec3) Ray {
	d := to.Subtract(from)
	dist := d.Length()
	return Ray{Origin: from, Direction: d.Normalize(), TMin: Epsilon, TMax: dist - Epsilon}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Contains reports whether t lies inside the ray's valid interval
func (r Ray) Contains(t float64) bool {
	return t >= r.TMin && t <= r.TMax
}
