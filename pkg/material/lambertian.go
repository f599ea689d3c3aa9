package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// Lambertian represents a perfectly diffuse, one-sided material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// Eval returns albedo/π when both directions lie above the surface
func (l *Lambertian) Eval(rec *BSDFQueryRecord) core.Vec3 {
	if rec.Measure != SolidAngle || core.CosTheta(rec.Wi) <= 0 || core.CosTheta(rec.Wo) <= 0 {
		return core.Vec3{}
	}
	return l.Albedo.Evaluate(rec.UV).Multiply(1.0 / math.Pi)
}

// PDF returns the cosine-weighted hemisphere density cos(θ)/π
func (l *Lambertian) PDF(rec *BSDFQueryRecord) float64 {
	if rec.Measure != SolidAngle || core.CosTheta(rec.Wi) <= 0 || core.CosTheta(rec.Wo) <= 0 {
		return 0
	}
	return warp.SquareToCosineHemispherePdf(rec.Wo)
}

// Sample draws a cosine-weighted direction. The cosine and π cancel against
// the density, so the sample weight is just the albedo.
func (l *Lambertian) Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}
	rec.Measure = SolidAngle
	rec.Wo = warp.SquareToCosineHemisphere(sample)
	rec.Eta = 1
	return l.Albedo.Evaluate(rec.UV)
}

// IsDiffuse is always true for Lambertian surfaces
func (l *Lambertian) IsDiffuse() bool {
	return true
}
