package integrator

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/material"
)

// maxSurvival bounds the Russian roulette survival probability below 1 so paths terminate
const maxSurvival = 0.99

// requireEmitters fails when emitter sampling has nothing to sample
func requireEmitters(scene Scene) error {
	if scene.EmitterCount() == 0 {
		return ErrNoEmitters
	}
	return nil
}

// occluded reports whether anything blocks the ray inside its interval
func occluded(scene Scene, ray core.Ray) bool {
	_, hit := scene.Intersect(ray)
	return hit
}

// emitted returns the radiance the hit surface emits back toward from
func emitted(hit *geometry.SurfaceInteraction, from core.Vec3) core.Vec3 {
	if hit.Emitter == nil {
		return core.Vec3{}
	}
	rec := lights.NewQueryFromHit(from, hit.Point, hit.Normal())
	return hit.Emitter.Eval(&rec)
}

// environment returns the environment radiance seen along an escaped ray
func environment(scene Scene, ray core.Ray) core.Vec3 {
	env := scene.EnvironmentEmitter()
	if env == nil {
		return core.Vec3{}
	}
	rec := lights.NewQueryFromDirection(ray.Origin, ray.Direction)
	return env.Eval(&rec)
}

// emitterDensity is the solid-angle density of emitter sampling reaching rec, including
// the uniform emitter pick
func emitterDensity(scene Scene, emitter lights.Emitter, rec *lights.EmitterQueryRecord) float64 {
	count := scene.EmitterCount()
	if count == 0 || lights.IsDelta(emitter) {
		return 0
	}
	return emitter.PDF(rec) / float64(count)
}

// emitterSample is one next-event estimation draw
type emitterSample struct {
	emitter lights.Emitter
	rec     lights.EmitterQueryRecord
	value   core.Vec3 // radiance / (pdf · pick probability), zero when occluded
	density float64   // solid-angle density including the pick, zero for delta emitters
}

// sampleEmitter picks an emitter uniformly and samples a point on it as seen from ref.
// Consumes one 1D and one 2D sample even when the scene has no emitters.
func sampleEmitter(scene Scene, sampler core.Sampler, ref core.Vec3) emitterSample {
	pick := sampler.Get1D()
	u := sampler.Get2D()

	emitter := scene.PickRandomEmitter(pick)
	if emitter == nil {
		return emitterSample{}
	}

	count := float64(scene.EmitterCount())
	es := emitterSample{emitter: emitter, rec: lights.EmitterQueryRecord{Ref: ref}}
	es.value = emitter.Sample(&es.rec, u).Multiply(count)
	if es.value.IsZero() || !es.value.IsValid() || occluded(scene, es.rec.ShadowRay) {
		es.value = core.Vec3{}
		return es
	}
	if !lights.IsDelta(emitter) {
		es.density = es.rec.PDF / count
	}
	return es
}

// surfaceDirect returns f · cosθ · Le/pdf for an emitter sample seen from a surface hit,
// along with the BSDF density of the same direction
func surfaceDirect(hit *geometry.SurfaceInteraction, wiLocal core.Vec3, es emitterSample) (core.Vec3, float64) {
	if es.value.IsZero() {
		return core.Vec3{}, 0
	}
	woLocal := hit.ToLocal(es.rec.Wi)
	rec := material.NewEvalQuery(wiLocal, woLocal, material.SolidAngle, hit.UV)
	cosTheta := math.Max(0, core.CosTheta(woLocal))
	f := hit.BSDF.Eval(&rec)
	return f.MultiplyVec(es.value).Multiply(cosTheta).Sanitize(), hit.BSDF.PDF(&rec)
}

// russianRoulette decides whether a path with the given throughput continues.
// Survivors are divided by the survival probability so the expectation is unchanged.
func russianRoulette(sampler core.Sampler, throughput core.Vec3) (core.Vec3, bool) {
	survival := math.Min(throughput.MaxComponent(), maxSurvival)
	if survival <= 0 || sampler.Get1D() >= survival {
		return core.Vec3{}, false
	}
	return throughput.Divide(survival), true
}

// sanitize clamps invalid throughput channels to zero and reports whether clamping happened
func sanitize(throughput core.Vec3) (core.Vec3, bool) {
	clean := throughput.Sanitize()
	return clean, clean != throughput
}

// bsdfBounce samples the hit's BSDF for the direction leaving toward wiLocal
type bsdfBounce struct {
	weight   core.Vec3 // eval · cosθ / pdf
	ray      core.Ray
	pdf      float64
	discrete bool
}

func sampleBSDF(hit *geometry.SurfaceInteraction, wiLocal core.Vec3, u core.Vec2) (bsdfBounce, bool) {
	rec := material.NewSampleQuery(wiLocal, hit.UV)
	weight := hit.BSDF.Sample(&rec, u)
	if weight.IsZero() {
		return bsdfBounce{}, false
	}
	return bsdfBounce{
		weight:   weight,
		ray:      hit.SpawnRay(hit.ToWorld(rec.Wo)),
		pdf:      hit.BSDF.PDF(&rec),
		discrete: rec.Measure == material.Discrete,
	}, true
}

// depthExceeded reports whether a path of the given bounce count has hit the configured cap
func (c Config) depthExceeded(bounces int) bool {
	return c.MaxDepth > 0 && bounces >= c.MaxDepth
}
