package lights

import "github.com/df07/go-lighttransport/pkg/core"

// EmitterQueryRecord carries the arguments and results of an emitter query.
// Wi always points from Ref toward the sampled emitter point P.
type EmitterQueryRecord struct {
	Ref       core.Vec3 // Reference (shading) point
	P         core.Vec3 // Sampled point on the emitter
	N         core.Vec3 // Emitter normal at P
	Wi        core.Vec3 // Unit direction from Ref to P
	PDF       float64   // Solid-angle density of the sample
	ShadowRay core.Ray  // Occlusion ray from Ref to P, excluding both endpoints
}

// NewQueryFromHit describes a known emitter point reached from ref, as happens when
// a BSDF-sampled ray hits an emitter
func NewQueryFromHit(ref, p, n core.Vec3) EmitterQueryRecord {
	return EmitterQueryRecord{
		Ref:       ref,
		P:         p,
		N:         n,
		Wi:        p.Subtract(ref).Normalize(),
		ShadowRay: core.NewSegment(ref, p),
	}
}

// NewQueryFromDirection describes an escaped ray for environment emitters
func NewQueryFromDirection(ref, direction core.Vec3) EmitterQueryRecord {
	return EmitterQueryRecord{Ref: ref, Wi: direction.Normalize()}
}

// Emitter is the light source contract used by the integrators
type Emitter interface {
	// Sample picks a point on the emitter as seen from rec.Ref, filling P, N, Wi, PDF and
	// ShadowRay. It returns radiance divided by the solid-angle density, or zero when the
	// sample carries no energy.
	Sample(rec *EmitterQueryRecord, sample core.Vec2) core.Vec3

	// Eval returns the radiance leaving P toward Ref, zero if the emitter faces away
	Eval(rec *EmitterQueryRecord) core.Vec3

	// PDF returns the solid-angle density of Sample producing rec.P from rec.Ref,
	// including the distance²/cosθ Jacobian
	PDF(rec *EmitterQueryRecord) float64

	// SamplePhoton draws an emission ray and returns the photon power carried along it
	SamplePhoton(samplePoint, sampleDirection core.Vec2) (core.Ray, core.Vec3, error)
}

// DeltaEmitter is implemented by emitters that cannot be reached by BSDF sampling
type DeltaEmitter interface {
	IsDelta() bool
}

// IsDelta reports whether the emitter is a delta light
func IsDelta(e Emitter) bool {
	d, ok := e.(DeltaEmitter)
	return ok && d.IsDelta()
}

// Surface is the geometry an area light needs: uniform area sampling and its density
type Surface interface {
	SampleSurface(sample core.Vec2) (point, normal core.Vec3, pdf float64)
	SurfacePDF(point core.Vec3) float64
}

// Preprocessor interface for emitters that need the scene bounds
type Preprocessor interface {
	Preprocess(worldCenter core.Vec3, worldRadius float64) error
}
