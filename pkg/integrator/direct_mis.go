package integrator

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/metrics"
)

// DirectMIS combines one emitter sample and one BSDF sample with multiple importance sampling
type DirectMIS struct {
	config Config
}

// NewDirectMIS creates a new MIS direct lighting integrator
func NewDirectMIS(config Config) *DirectMIS {
	return &DirectMIS{config: config}
}

func (d *DirectMIS) Name() string { return "direct_mis" }

func (d *DirectMIS) Preprocess(scene Scene, sampler core.Sampler) error {
	return requireEmitters(scene)
}

func (d *DirectMIS) Li(scene Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	hit, isHit := scene.Intersect(ray)
	if !isHit {
		d.config.Metrics.PathFinished(d.Name(), metrics.Escaped, 0)
		return environment(scene, ray)
	}

	result := emitted(hit, ray.Origin)
	wi := hit.ToLocal(ray.Direction.Negate())

	// Emitter sampling
	es := sampleEmitter(scene, sampler, hit.Point)
	direct, bsdfPdf := surfaceDirect(hit, wi, es)
	if !direct.IsZero() {
		wEms := 1.0
		if !lights.IsDelta(es.emitter) {
			wEms = d.config.Heuristic.weight(es.density, bsdfPdf)
		}
		result = result.Add(direct.Multiply(wEms))
	}

	// BSDF sampling
	bounce, ok := sampleBSDF(hit, wi, sampler.Get2D())
	if !ok {
		d.config.Metrics.PathFinished(d.Name(), metrics.Absorbed, 1)
		return result
	}

	var incoming core.Vec3
	var emitterPdf float64
	if next, isHit := scene.Intersect(bounce.ray); isHit {
		if next.Emitter != nil {
			rec := lights.NewQueryFromHit(hit.Point, next.Point, next.Normal())
			incoming = next.Emitter.Eval(&rec)
			emitterPdf = emitterDensity(scene, next.Emitter, &rec)
		}
	} else if env := scene.EnvironmentEmitter(); env != nil {
		rec := lights.NewQueryFromDirection(hit.Point, bounce.ray.Direction)
		incoming = env.Eval(&rec)
		emitterPdf = emitterDensity(scene, env, &rec)
	}

	if !incoming.IsZero() {
		wMats := 1.0
		if !bounce.discrete {
			wMats = d.config.Heuristic.weight(bounce.pdf, emitterPdf)
		}
		result = result.Add(bounce.weight.MultiplyVec(incoming).Multiply(wMats).Sanitize())
	}

	d.config.Metrics.PathFinished(d.Name(), metrics.Evaluated, 1)
	return result
}
