package lights

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// farAway stands in for points on an emitter at infinity
const farAway = 1e30

// UniformInfiniteLight represents a uniform environment light (constant emission in all directions)
type UniformInfiniteLight struct {
	Radiance    core.Vec3
	worldCenter core.Vec3 // Finite scene center from the BVH
	worldRadius float64   // Finite scene radius from the BVH
}

// NewUniformInfiniteLight creates a new uniform infinite light
func NewUniformInfiniteLight(radiance core.Vec3) *UniformInfiniteLight {
	return &UniformInfiniteLight{Radiance: radiance}
}

// Sample picks a direction uniformly over the sphere
func (uil *UniformInfiniteLight) Sample(rec *EmitterQueryRecord, sample core.Vec2) core.Vec3 {
	rec.Wi = warp.SquareToUniformSphere(sample)
	rec.P = rec.Ref.Add(rec.Wi.Multiply(farAway))
	rec.N = rec.Wi.Negate()
	rec.ShadowRay = core.NewRay(rec.Ref, rec.Wi)
	rec.PDF = uil.PDF(rec)
	return uil.Radiance.Multiply(4 * math.Pi)
}

// Eval returns the same radiance for every direction
func (uil *UniformInfiniteLight) Eval(rec *EmitterQueryRecord) core.Vec3 {
	return uil.Radiance
}

// PDF is the uniform sphere density 1/4π
func (uil *UniformInfiniteLight) PDF(rec *EmitterQueryRecord) float64 {
	return warp.SquareToUniformSpherePdf(rec.Wi)
}

// SamplePhoton uses parallel rays leaving a disk that covers the scene bounds.
// The photon power is L / (pdf_pos · pdf_dir) = L · πR² · 4π.
func (uil *UniformInfiniteLight) SamplePhoton(samplePoint, sampleDirection core.Vec2) (core.Ray, core.Vec3, error) {
	if uil.worldRadius <= 0 {
		return core.Ray{}, core.Vec3{}, ErrNotPreprocessed
	}
	direction := warp.SquareToUniformSphere(sampleDirection)
	frame := core.NewFrame(direction)

	disk := warp.SquareToUniformDisk(samplePoint)
	diskPoint := uil.worldCenter.
		Add(frame.S.Multiply(disk.X * uil.worldRadius)).
		Add(frame.T.Multiply(disk.Y * uil.worldRadius))
	origin := diskPoint.Subtract(direction.Multiply(uil.worldRadius))

	areaPDF := 1.0 / (math.Pi * uil.worldRadius * uil.worldRadius)
	directionPDF := 1.0 / (4.0 * math.Pi)
	return core.NewRay(origin, direction), uil.Radiance.Multiply(1 / (areaPDF * directionPDF)), nil
}

// Preprocess implements the Preprocessor interface - sets world bounds from scene
func (uil *UniformInfiniteLight) Preprocess(worldCenter core.Vec3, worldRadius float64) error {
	uil.worldCenter = worldCenter
	uil.worldRadius = worldRadius
	return nil
}
