package integrator

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/metrics"
)

// DirectEMS estimates direct illumination by sampling one emitter per estimate
type DirectEMS struct {
	config Config
}

// NewDirectEMS creates a new emitter-sampling direct lighting integrator
func NewDirectEMS(config Config) *DirectEMS {
	return &DirectEMS{config: config}
}

func (d *DirectEMS) Name() string { return "direct_ems" }

func (d *DirectEMS) Preprocess(scene Scene, sampler core.Sampler) error {
	return requireEmitters(scene)
}

func (d *DirectEMS) Li(scene Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	hit, isHit := scene.Intersect(ray)
	if !isHit {
		d.config.Metrics.PathFinished(d.Name(), metrics.Escaped, 0)
		return environment(scene, ray)
	}

	wi := hit.ToLocal(ray.Direction.Negate())
	es := sampleEmitter(scene, sampler, hit.Point)
	direct, _ := surfaceDirect(hit, wi, es)

	d.config.Metrics.PathFinished(d.Name(), metrics.Evaluated, 1)
	return emitted(hit, ray.Origin).Add(direct)
}
