package lights

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// AreaLight emits constant radiance from the front side of a surface
type AreaLight struct {
	surface  Surface
	Radiance core.Vec3
}

// NewAreaLight attaches an area light to a surface
func NewAreaLight(surface Surface, radiance core.Vec3) (*AreaLight, error) {
	if surface == nil {
		return nil, ErrNoShape
	}
	return &AreaLight{surface: surface, Radiance: radiance}, nil
}

// Eval returns the radiance when the front face is turned toward Ref
func (al *AreaLight) Eval(rec *EmitterQueryRecord) core.Vec3 {
	if rec.Wi.Negate().Dot(rec.N) <= 0 {
		return core.Vec3{}
	}
	return al.Radiance
}

// Sample picks a point uniformly by area and converts the density to solid angle
func (al *AreaLight) Sample(rec *EmitterQueryRecord, sample core.Vec2) core.Vec3 {
	point, normal, _ := al.surface.SampleSurface(sample)
	rec.P = point
	rec.N = normal
	rec.Wi = point.Subtract(rec.Ref).Normalize()
	rec.ShadowRay = core.NewSegment(rec.Ref, point)

	rec.PDF = al.PDF(rec)
	if rec.PDF == 0 {
		return core.Vec3{}
	}
	return al.Eval(rec).Divide(rec.PDF)
}

// PDF converts the area density of P into a solid-angle density as seen from Ref:
// pdf_ω = pdf_A · distance² / cosθ
func (al *AreaLight) PDF(rec *EmitterQueryRecord) float64 {
	cosTheta := rec.Wi.Negate().Dot(rec.N)
	if cosTheta <= 0 {
		return 0
	}
	distance2 := rec.P.Subtract(rec.Ref).LengthSquared()
	return al.surface.SurfacePDF(rec.P) * distance2 / cosTheta
}

// SamplePhoton emits from a uniformly chosen surface point in a cosine-weighted direction.
// The photon power is Le·cosθ / (pdf_A · cosθ/π) = Le·π/pdf_A.
func (al *AreaLight) SamplePhoton(samplePoint, sampleDirection core.Vec2) (core.Ray, core.Vec3, error) {
	point, normal, pdf := al.surface.SampleSurface(samplePoint)
	if pdf == 0 {
		return core.Ray{}, core.Vec3{}, ErrZeroPhotonDensity
	}
	direction := core.NewFrame(normal).ToWorld(warp.SquareToCosineHemisphere(sampleDirection))
	return core.NewRay(point, direction), al.Radiance.Multiply(math.Pi / pdf), nil
}
