package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Measure tags the measure a BSDF value or density is expressed in
type Measure int

const (
	// UnknownMeasure marks a query whose outgoing direction has not been sampled yet
	UnknownMeasure Measure = iota
	// SolidAngle is the continuous measure on the sphere of directions
	SolidAngle
	// Discrete marks a delta lobe (mirror, glass) that no other technique can reproduce
	Discrete
)

func (m Measure) String() string {
	switch m {
	case SolidAngle:
		return "solid-angle"
	case Discrete:
		return "discrete"
	}
	return "unknown"
}

// BSDFQueryRecord bundles the arguments of a BSDF query.
// Directions are always expressed in the local shading frame, never in world space.
type BSDFQueryRecord struct {
	Wi      core.Vec3 // Direction toward the viewer / previous vertex
	Wo      core.Vec3 // Sampled or queried outgoing direction
	Eta     float64   // Relative index of refraction of the sampled event
	Measure Measure
	UV      core.Vec2 // Surface parameterization for spatially varying BSDFs
}

// NewSampleQuery prepares a record for BSDF sampling
func NewSampleQuery(wi core.Vec3, uv core.Vec2) BSDFQueryRecord {
	return BSDFQueryRecord{Wi: wi, Eta: 1, Measure: UnknownMeasure, UV: uv}
}

// NewEvalQuery prepares a record for evaluating a known direction pair
func NewEvalQuery(wi, wo core.Vec3, measure Measure, uv core.Vec2) BSDFQueryRecord {
	return BSDFQueryRecord{Wi: wi, Wo: wo, Eta: 1, Measure: measure, UV: uv}
}

// BSDF is the surface scattering contract used by every integrator
type BSDF interface {
	// Eval returns the BSDF value for the record's direction pair (no cosine factor)
	Eval(rec *BSDFQueryRecord) core.Vec3

	// Sample draws rec.Wo from the BSDF's own distribution, sets rec.Measure and
	// rec.Eta, and returns eval·cosθo / pdf. A zero result means the sample failed.
	Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3

	// PDF returns the solid-angle density of sampling rec.Wo given rec.Wi.
	// Discrete lobes have zero density under the solid-angle measure.
	PDF(rec *BSDFQueryRecord) float64

	// IsDiffuse reports whether photons may be stored on this surface
	IsDiffuse() bool
}
