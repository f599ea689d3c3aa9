package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// Microfacet is a rough dielectric coating over a diffuse base. The specular lobe uses
// either the Beckmann or the GGX (GTR2) normal distribution.
type Microfacet struct {
	Alpha        float64           // Roughness
	Distribution warp.Distribution // warp.Beckmann or warp.GTR2
	IntIOR       float64
	ExtIOR       float64
	Kd           core.Vec3 // Diffuse albedo
	ks           float64   // Specular weight, 1 - max(Kd)
}

// NewMicrofacet creates a microfacet material. Distributions other than GTR2 fall back to Beckmann.
func NewMicrofacet(alpha, intIOR float64, kd core.Vec3, distribution warp.Distribution) *Microfacet {
	if distribution != warp.GTR2 {
		distribution = warp.Beckmann
	}
	return &Microfacet{
		Alpha:        alpha,
		Distribution: distribution,
		IntIOR:       intIOR,
		ExtIOR:       1.0,
		Kd:           kd,
		ks:           math.Max(0, 1-kd.MaxComponent()),
	}
}

// Eval returns the diffuse term plus the Torrance-Sparrow specular term
func (m *Microfacet) Eval(rec *BSDFQueryRecord) core.Vec3 {
	cosI := core.CosTheta(rec.Wi)
	cosO := core.CosTheta(rec.Wo)
	if rec.Measure != SolidAngle || cosI <= 0 || cosO <= 0 {
		return core.Vec3{}
	}

	diffuse := m.Kd.Multiply(1.0 / math.Pi)
	wh := rec.Wi.Add(rec.Wo).Normalize()
	if wh.Z <= 0 {
		return diffuse
	}

	d := warp.Density(m.Distribution, wh, m.Alpha) / wh.Z
	f := FresnelDielectric(rec.Wi.Dot(wh), m.ExtIOR, m.IntIOR)
	g := m.smithG1(rec.Wi, wh) * m.smithG1(rec.Wo, wh)
	specular := m.ks * d * f * g / (4 * cosI * cosO)

	return diffuse.Add(core.Splat(specular))
}

// PDF mixes the half-vector density (with its reflection Jacobian) and the cosine lobe
func (m *Microfacet) PDF(rec *BSDFQueryRecord) float64 {
	cosI := core.CosTheta(rec.Wi)
	cosO := core.CosTheta(rec.Wo)
	if rec.Measure != SolidAngle || cosI <= 0 || cosO <= 0 {
		return 0
	}

	diffusePdf := (1 - m.ks) * warp.SquareToCosineHemispherePdf(rec.Wo)
	wh := rec.Wi.Add(rec.Wo).Normalize()
	woDotWh := rec.Wo.Dot(wh)
	if wh.Z <= 0 || woDotWh <= 0 {
		return diffusePdf
	}
	jacobian := 1 / (4 * woDotWh)
	return m.ks*warp.Density(m.Distribution, wh, m.Alpha)*jacobian + diffusePdf
}

// Sample picks the specular lobe with probability ks and the diffuse lobe otherwise
func (m *Microfacet) Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}
	rec.Measure = SolidAngle
	rec.Eta = 1

	if sample.X < m.ks {
		reused := core.NewVec2(sample.X/m.ks, sample.Y)
		wh := warp.Warp(m.Distribution, reused, m.Alpha)
		rec.Wo = wh.Multiply(2 * rec.Wi.Dot(wh)).Subtract(rec.Wi)
	} else {
		reused := core.NewVec2((sample.X-m.ks)/(1-m.ks), sample.Y)
		rec.Wo = warp.SquareToCosineHemisphere(reused)
	}

	cosO := core.CosTheta(rec.Wo)
	if cosO <= 0 {
		return core.Vec3{}
	}
	pdf := m.PDF(rec)
	if pdf <= 0 {
		return core.Vec3{}
	}
	return m.Eval(rec).Multiply(cosO / pdf)
}

// IsDiffuse is false: the glossy lobe would blur stored photons
func (m *Microfacet) IsDiffuse() bool {
	return false
}

// smithG1 is the Smith shadowing term for one direction
func (m *Microfacet) smithG1(v, wh core.Vec3) float64 {
	if v.Dot(wh)*core.CosTheta(v) <= 0 {
		return 0
	}
	cos2 := v.Z * v.Z
	tan2 := (1 - cos2) / cos2
	if tan2 <= 0 {
		return 1
	}
	alpha := math.Max(m.Alpha, 1e-4)

	if m.Distribution == warp.GTR2 {
		return 2 / (1 + math.Sqrt(1+alpha*alpha*tan2))
	}

	// Rational approximation of the Beckmann shadowing term
	b := 1 / (alpha * math.Sqrt(tan2))
	if b >= 1.6 {
		return 1
	}
	return (3.535*b + 2.181*b*b) / (1 + 2.277*b + 2.577*b*b)
}
