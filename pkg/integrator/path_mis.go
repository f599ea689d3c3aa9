package integrator

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/metrics"
)

// PathMIS implements unidirectional path tracing with next event estimation,
// combining emitter and BSDF samples with multiple importance sampling at every bounce
type PathMIS struct {
	config Config
}

// NewPathMIS creates a new path tracing integrator
func NewPathMIS(config Config) *PathMIS {
	return &PathMIS{config: config}
}

func (pt *PathMIS) Name() string { return "path_mis" }

func (pt *PathMIS) Preprocess(scene Scene, sampler core.Sampler) error {
	return requireEmitters(scene)
}

// scatterVertex remembers how the current ray was sampled, so the MIS weight of the
// BSDF sample can be finalized once the emitter it reaches is known
type scatterVertex struct {
	pdf      float64 // BSDF (or phase) density of the direction that left point
	discrete bool
	valid    bool // false for the primary ray
}

// matsWeight returns the MIS weight for emission found by the ray leaving prev
func matsWeight(h Heuristic, scene Scene, prev scatterVertex, emitter lights.Emitter, rec *lights.EmitterQueryRecord) float64 {
	if !prev.valid || prev.discrete {
		return 1
	}
	return h.weight(prev.pdf, emitterDensity(scene, emitter, rec))
}

// escapedRadiance returns the MIS weighted environment radiance for a ray leaving prev
func escapedRadiance(h Heuristic, scene Scene, prev scatterVertex, ray core.Ray) core.Vec3 {
	env := scene.EnvironmentEmitter()
	if env == nil {
		return core.Vec3{}
	}
	rec := lights.NewQueryFromDirection(ray.Origin, ray.Direction)
	return env.Eval(&rec).Multiply(matsWeight(h, scene, prev, env, &rec))
}

// hitRadiance returns the MIS weighted emission of a surface reached by the ray leaving prev
func hitRadiance(h Heuristic, scene Scene, prev scatterVertex, ray core.Ray, hit *geometry.SurfaceInteraction) core.Vec3 {
	if hit.Emitter == nil {
		return core.Vec3{}
	}
	rec := lights.NewQueryFromHit(ray.Origin, hit.Point, hit.Normal())
	return hit.Emitter.Eval(&rec).Multiply(matsWeight(h, scene, prev, hit.Emitter, &rec))
}

// Li traces one path. The loop ends when the ray escapes, the BSDF absorbs it or
// Russian roulette kills it.
func (pt *PathMIS) Li(scene Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	var radiance core.Vec3
	throughput := core.Splat(1)
	prev := scatterVertex{}
	h := pt.config.Heuristic

	for bounces := 0; ; bounces++ {
		hit, isHit := scene.Intersect(ray)
		if !isHit {
			radiance = radiance.Add(throughput.MultiplyVec(escapedRadiance(h, scene, prev, ray)))
			pt.config.Metrics.PathFinished(pt.Name(), metrics.Escaped, bounces)
			return radiance
		}

		radiance = radiance.Add(throughput.MultiplyVec(hitRadiance(h, scene, prev, ray, hit)))

		if pt.config.depthExceeded(bounces) {
			pt.config.Metrics.PathFinished(pt.Name(), metrics.DepthCap, bounces)
			return radiance
		}

		var alive bool
		if throughput, alive = russianRoulette(sampler, throughput); !alive {
			pt.config.Metrics.PathFinished(pt.Name(), metrics.Roulette, bounces)
			return radiance
		}

		wi := hit.ToLocal(ray.Direction.Negate())

		// Emitter sampling
		es := sampleEmitter(scene, sampler, hit.Point)
		direct, bsdfPdf := surfaceDirect(hit, wi, es)

		// BSDF sampling
		bounce, ok := sampleBSDF(hit, wi, sampler.Get2D())

		if !direct.IsZero() {
			var wEms float64
			switch {
			case ok && bounce.discrete:
				wEms = 0
			case lights.IsDelta(es.emitter):
				wEms = 1
			default:
				wEms = h.weight(es.density, bsdfPdf)
			}
			radiance = radiance.Add(throughput.MultiplyVec(direct).Multiply(wEms))
		}

		if !ok {
			pt.config.Metrics.PathFinished(pt.Name(), metrics.Absorbed, bounces+1)
			return radiance
		}

		var invalid bool
		if throughput, invalid = sanitize(throughput.MultiplyVec(bounce.weight)); invalid {
			pt.config.Metrics.InvalidSample(pt.Name())
		}
		if throughput.IsZero() {
			pt.config.Metrics.PathFinished(pt.Name(), metrics.Absorbed, bounces+1)
			return radiance
		}

		prev = scatterVertex{pdf: bounce.pdf, discrete: bounce.discrete, valid: true}
		ray = bounce.ray
	}
}
