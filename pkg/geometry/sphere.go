package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// Sphere represents a sphere shape
type Sphere struct {
	Bindings
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, bsdf material.BSDF) *Sphere {
	return &Sphere{
		Bindings: Bindings{BSDF: bsdf},
		Center:   center,
		Radius:   radius,
	}
}

// Hit tests if a ray intersects with the sphere.
// A ray starting inside the sphere hits the far root.
func (s *Sphere) Hit(ray core.Ray) (*SurfaceInteraction, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if !ray.Contains(root) {
		root = (-halfB + sqrtD) / a
		if !ray.Contains(root) {
			return nil, false
		}
	}

	outwardNormal := ray.At(root).Subtract(s.Center).Divide(s.Radius)
	return newSurfaceInteraction(ray, root, outwardNormal, sphereUV(outwardNormal), s), true
}

// sphereUV maps a unit normal to longitude/latitude texture coordinates
func sphereUV(n core.Vec3) core.Vec2 {
	phi := math.Atan2(n.Y, n.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	theta := math.Acos(math.Max(-1, math.Min(1, n.Z)))
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.Splat(s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// Area returns the surface area of the sphere
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// SampleSurface picks a point uniformly over the sphere's area
func (s *Sphere) SampleSurface(sample core.Vec2) (core.Vec3, core.Vec3, float64) {
	normal := warp.SquareToUniformSphere(sample)
	return s.Center.Add(normal.Multiply(s.Radius)), normal, s.SurfacePDF(core.Vec3{})
}

// SurfacePDF returns the area density of SampleSurface
func (s *Sphere) SurfacePDF(point core.Vec3) float64 {
	area := s.Area()
	if area == 0 {
		return 0
	}
	return 1.0 / area
}
