package integrator

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/metrics"
)

// DirectMATS estimates direct illumination by following one BSDF sample
type DirectMATS struct {
	config Config
}

// NewDirectMATS creates a new BSDF-sampling direct lighting integrator
func NewDirectMATS(config Config) *DirectMATS {
	return &DirectMATS{config: config}
}

func (d *DirectMATS) Name() string { return "direct_mats" }

// Preprocess has nothing to prepare. Scenes without emitters simply render black.
func (d *DirectMATS) Preprocess(scene Scene, sampler core.Sampler) error {
	return nil
}

func (d *DirectMATS) Li(scene Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	hit, isHit := scene.Intersect(ray)
	if !isHit {
		d.config.Metrics.PathFinished(d.Name(), metrics.Escaped, 0)
		return environment(scene, ray)
	}

	le := emitted(hit, ray.Origin)

	bounce, ok := sampleBSDF(hit, hit.ToLocal(ray.Direction.Negate()), sampler.Get2D())
	if !ok {
		d.config.Metrics.PathFinished(d.Name(), metrics.Absorbed, 1)
		return le
	}

	var incoming core.Vec3
	if next, isHit := scene.Intersect(bounce.ray); isHit {
		incoming = emitted(next, hit.Point)
	} else {
		incoming = environment(scene, bounce.ray)
	}

	d.config.Metrics.PathFinished(d.Name(), metrics.Evaluated, 1)
	return le.Add(bounce.weight.MultiplyVec(incoming).Sanitize())
}
