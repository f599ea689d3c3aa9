package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Dielectric represents a smooth transparent material like glass that can both reflect and refract
type Dielectric struct {
	IntIOR float64 // Interior index of refraction (e.g., 1.5 for glass)
	ExtIOR float64 // Exterior index of refraction (1.0 for air)
}

// NewDielectric creates a new dielectric material surrounded by air
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{IntIOR: refractiveIndex, ExtIOR: 1.0}
}

// Eval is zero: both lobes are discrete
func (d *Dielectric) Eval(rec *BSDFQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF is zero: both lobes are discrete
func (d *Dielectric) PDF(rec *BSDFQueryRecord) float64 {
	return 0
}

// Sample chooses reflection or refraction proportionally to the Fresnel reflectance
func (d *Dielectric) Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3 {
	cosThetaI := core.CosTheta(rec.Wi)
	reflectance := FresnelDielectric(cosThetaI, d.ExtIOR, d.IntIOR)
	rec.Measure = Discrete

	if sample.X < reflectance {
		rec.Wo = reflectLocal(rec.Wi)
		rec.Eta = 1
		return core.Splat(1)
	}

	// Determine if we're entering or exiting the material
	etaI, etaT := d.ExtIOR, d.IntIOR
	sign := 1.0
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		sign = -1
		cosThetaI = -cosThetaI
	}
	ratio := etaI / etaT
	sin2ThetaT := ratio * ratio * math.Max(0, 1-cosThetaI*cosThetaI)
	cosThetaT := math.Sqrt(math.Max(0, 1-sin2ThetaT))

	rec.Wo = core.NewVec3(-ratio*rec.Wi.X, -ratio*rec.Wi.Y, -sign*cosThetaT)
	rec.Eta = etaT / etaI
	return core.Splat(1)
}

// IsDiffuse is false for glass
func (d *Dielectric) IsDiffuse() bool {
	return false
}

// FresnelDielectric returns the unpolarized Fresnel reflectance of a smooth dielectric
// interface. cosThetaI is measured against the normal on the exterior side; negative
// values mean the ray arrives from the interior. Total internal reflection returns 1.
func FresnelDielectric(cosThetaI, extIOR, intIOR float64) float64 {
	etaI, etaT := extIOR, intIOR
	if extIOR == intIOR {
		return 0
	}
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	ratio := etaI / etaT
	sin2ThetaT := ratio * ratio * math.Max(0, 1-cosThetaI*cosThetaI)
	if sin2ThetaT > 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)

	rs := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	rp := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	return (rs*rs + rp*rp) / 2
}
