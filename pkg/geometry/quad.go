package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors.
// The outward normal is U × V.
type Quad struct {
	Bindings
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Normal vector (computed from U × V)
	D      float64   // Plane equation constant: ax + by + cz = d
	W      core.Vec3 // Cached cross product for barycentric coordinates
	area   float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, bsdf material.BSDF) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Bindings: Bindings{BSDF: bsdf},
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		D:        normal.Dot(corner),
		W:        cross.Divide(cross.Dot(cross)),
		area:     cross.Length(),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray) (*SurfaceInteraction, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray is parallel to the quad
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if !ray.Contains(t) {
		return nil, false
	}

	// Barycentric coordinates of the hit point along U and V
	hitVector := ray.At(t).Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	return newSurfaceInteraction(ray, t, q.Normal, core.NewVec2(alpha, beta), q), true
}

// BoundingBox returns the quad's bounds padded so flat quads keep a non-zero thickness
func (q *Quad) BoundingBox() core.AABB {
	box := core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
	pad := core.Splat(core.Epsilon)
	return core.NewAABB(box.Min.Subtract(pad), box.Max.Add(pad))
}

// Area returns the quad's surface area
func (q *Quad) Area() float64 {
	return q.area
}

// SampleSurface picks a point uniformly over the quad
func (q *Quad) SampleSurface(sample core.Vec2) (core.Vec3, core.Vec3, float64) {
	point := q.Corner.Add(q.U.Multiply(sample.X)).Add(q.V.Multiply(sample.Y))
	return point, q.Normal, q.SurfacePDF(point)
}

// SurfacePDF returns the area density of SampleSurface
func (q *Quad) SurfacePDF(point core.Vec3) float64 {
	if q.area == 0 {
		return 0
	}
	return 1.0 / q.area
}
