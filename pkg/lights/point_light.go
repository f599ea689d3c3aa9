package lights

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// PointLight is an isotropic point source described by its total power (flux)
type PointLight struct {
	Position core.Vec3
	Power    core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, power core.Vec3) *PointLight {
	return &PointLight{Position: position, Power: power}
}

// Sample returns the intensity Φ/4π falling off with the squared distance
func (pl *PointLight) Sample(rec *EmitterQueryRecord, sample core.Vec2) core.Vec3 {
	rec.P = pl.Position
	rec.Wi = pl.Position.Subtract(rec.Ref).Normalize()
	rec.N = rec.Wi.Negate()
	rec.ShadowRay = core.NewSegment(rec.Ref, pl.Position)
	rec.PDF = 1

	distance2 := pl.Position.Subtract(rec.Ref).LengthSquared()
	if distance2 == 0 {
		return core.Vec3{}
	}
	return pl.Power.Multiply(1 / (4 * math.Pi * distance2))
}

// Eval is zero: no ray can hit a point
func (pl *PointLight) Eval(rec *EmitterQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF is zero under the solid-angle measure
func (pl *PointLight) PDF(rec *EmitterQueryRecord) float64 {
	return 0
}

// SamplePhoton emits uniformly over the sphere; intensity over the 1/4π density is the full power
func (pl *PointLight) SamplePhoton(samplePoint, sampleDirection core.Vec2) (core.Ray, core.Vec3, error) {
	direction := warp.SquareToUniformSphere(sampleDirection)
	return core.NewRay(pl.Position, direction), pl.Power, nil
}

// IsDelta is always true for point lights
func (pl *PointLight) IsDelta() bool {
	return true
}
