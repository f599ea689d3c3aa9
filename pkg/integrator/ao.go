package integrator

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/metrics"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// AmbientOcclusion returns 1 when a random hemisphere direction around the shading normal
// stays unoccluded for AOLength, and 0 otherwise
type AmbientOcclusion struct {
	config Config
}

// NewAmbientOcclusion creates a new ambient occlusion integrator
func NewAmbientOcclusion(config Config) *AmbientOcclusion {
	return &AmbientOcclusion{config: config}
}

func (ao *AmbientOcclusion) Name() string { return "ao" }

// Preprocess has nothing to prepare
func (ao *AmbientOcclusion) Preprocess(scene Scene, sampler core.Sampler) error {
	return nil
}

// Li returns full visibility for primary rays that miss the scene
func (ao *AmbientOcclusion) Li(scene Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	hit, isHit := scene.Intersect(ray)
	if !isHit {
		ao.config.Metrics.PathFinished(ao.Name(), metrics.Escaped, 0)
		return core.Splat(1)
	}

	direction := hit.ToWorld(warp.SquareToUniformHemisphere(sampler.Get2D()))
	probe := core.NewRayInterval(hit.Point, direction, core.Epsilon, ao.config.AOLength)

	ao.config.Metrics.PathFinished(ao.Name(), metrics.Evaluated, 1)
	if occluded(scene, probe) {
		return core.Vec3{}
	}
	return core.Splat(1)
}
