package geometry

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Shape interface for objects that can be hit by rays and sampled by area lights
type Shape interface {
	// Hit returns the closest intersection inside the ray's [TMin, TMax] interval
	Hit(ray core.Ray) (*SurfaceInteraction, bool)
	BoundingBox() core.AABB
	Area() float64
	Attached() *Bindings

	// lights.Surface
	SampleSurface(sample core.Vec2) (core.Vec3, core.Vec3, float64)
	SurfacePDF(point core.Vec3) float64
}

// Bindings holds the BSDF and the optional emitter attached to a shape
type Bindings struct {
	BSDF    material.BSDF
	Emitter lights.Emitter
}

// Attached returns the shape's bindings so the scene can assign materials and emitters
func (b *Bindings) Attached() *Bindings {
	return b
}

// SurfaceInteraction describes a ray-surface hit.
// GeoFrame and ShFrame are built around the outward normal, independent of which side was hit.
type SurfaceInteraction struct {
	Point     core.Vec3
	T         float64
	GeoFrame  core.Frame
	ShFrame   core.Frame
	UV        core.Vec2
	FrontFace bool // ray arrived from the side the outward normal points to
	BSDF      material.BSDF
	Emitter   lights.Emitter
	Shape     Shape
}

func newSurfaceInteraction(ray core.Ray, t float64, outwardNormal core.Vec3, uv core.Vec2, shape Shape) *SurfaceInteraction {
	frame := core.NewFrame(outwardNormal)
	bindings := shape.Attached()
	return &SurfaceInteraction{
		Point:     ray.At(t),
		T:         t,
		GeoFrame:  frame,
		ShFrame:   frame,
		UV:        uv,
		FrontFace: ray.Direction.Dot(outwardNormal) < 0,
		BSDF:      bindings.BSDF,
		Emitter:   bindings.Emitter,
		Shape:     shape,
	}
}

// ToLocal converts a world-space direction into the shading frame
func (si *SurfaceInteraction) ToLocal(v core.Vec3) core.Vec3 {
	return si.ShFrame.ToLocal(v)
}

// ToWorld converts a shading-frame direction into world space
func (si *SurfaceInteraction) ToWorld(v core.Vec3) core.Vec3 {
	return si.ShFrame.ToWorld(v)
}

// Normal returns the outward shading normal
func (si *SurfaceInteraction) Normal() core.Vec3 {
	return si.ShFrame.N
}

// SpawnRay starts a new ray at the hit point heading along direction
func (si *SurfaceInteraction) SpawnRay(direction core.Vec3) core.Ray {
	return core.NewRay(si.Point, direction)
}
