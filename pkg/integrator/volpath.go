package integrator

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/medium"
	"github.com/df07/go-lighttransport/pkg/metrics"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// VolPath extends PathMIS with a scene-global homogeneous medium.
// Free-flight distances are drawn against the majorant (largest extinction channel);
// per-channel ratio weights keep the estimate unbiased for chromatic media.
type VolPath struct {
	config Config
}

// NewVolPath creates a new volumetric path tracing integrator
func NewVolPath(config Config) *VolPath {
	return &VolPath{config: config}
}

func (vp *VolPath) Name() string { return "volpath" }

func (vp *VolPath) Preprocess(scene Scene, sampler core.Sampler) error {
	return requireEmitters(scene)
}

// freeFlight samples a distance from the exponential distribution with rate sigmaMax.
// A zero rate never interacts.
func freeFlight(sigmaMax, u float64) float64 {
	if sigmaMax <= 0 {
		return math.Inf(1)
	}
	return -math.Log(1-u) / sigmaMax
}

// ratio returns exp(-(σt - σmax)·d) per channel, the transmittance divided by the
// majorant's free-flight probability
func ratio(sigmaT core.Vec3, sigmaMax, distance float64) core.Vec3 {
	return sigmaT.Subtract(core.Splat(sigmaMax)).Multiply(-distance).Exp()
}

// clearChannels is one on every channel the medium does not attenuate
func clearChannels(sigmaT core.Vec3) core.Vec3 {
	mask := func(c float64) float64 {
		if c == 0 {
			return 1
		}
		return 0
	}
	return core.NewVec3(mask(sigmaT.X), mask(sigmaT.Y), mask(sigmaT.Z))
}

// transmittance returns the medium transmittance between a and b, or one without a medium
func transmittance(m medium.Medium, a, b core.Vec3) core.Vec3 {
	if m == nil {
		return core.Splat(1)
	}
	return m.Transmittance(a, b)
}

func (vp *VolPath) Li(scene Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	var radiance core.Vec3
	throughput := core.Splat(1)
	prev := scatterVertex{}
	h := vp.config.Heuristic

	m := scene.Medium()
	var sigmaT core.Vec3
	var sigmaMax float64
	if m != nil {
		sigmaT = m.Extinction()
		sigmaMax = sigmaT.MaxComponent()
		if sigmaMax <= 0 {
			m = nil
		}
	}

	for bounces := 0; ; bounces++ {
		hit, isHit := scene.Intersect(ray)
		surfaceDistance := math.Inf(1)
		if isHit {
			surfaceDistance = hit.T
		}

		if m != nil {
			// An escaping ray always scatters against the majorant, which carries nothing on
			// channels with zero extinction. Those channels see the environment with Tr = 1.
			if !isHit {
				unattenuated := throughput.MultiplyVec(clearChannels(sigmaT))
				if !unattenuated.IsZero() {
					radiance = radiance.Add(unattenuated.MultiplyVec(escapedRadiance(h, scene, prev, ray)))
				}
			}

			if t := freeFlight(sigmaMax, sampler.Get1D()); t < surfaceDistance {
				// Volume event: weight σs·Tr(t) / (σmax·e^{-σmax·t})
				point := ray.At(t)
				throughput = throughput.MultiplyVec(m.Scattering().MultiplyVec(ratio(sigmaT, sigmaMax, t))).Divide(sigmaMax)

				if vp.config.depthExceeded(bounces) {
					vp.config.Metrics.PathFinished(vp.Name(), metrics.DepthCap, bounces)
					return radiance
				}
				var alive bool
				if throughput, alive = russianRoulette(sampler, throughput); !alive {
					vp.config.Metrics.PathFinished(vp.Name(), metrics.Roulette, bounces)
					return radiance
				}

				phase := m.PhaseValue()
				es := sampleEmitter(scene, sampler, point)
				if !es.value.IsZero() {
					wEms := 1.0
					if !lights.IsDelta(es.emitter) {
						wEms = h.weight(es.density, phase)
					}
					tr := m.Transmittance(point, es.rec.P)
					radiance = radiance.Add(throughput.MultiplyVec(tr).MultiplyVec(es.value).Multiply(phase * wEms))
				}

				// Isotropic phase sampled uniformly: phase / pdf = 1
				direction := warp.SquareToUniformSphere(sampler.Get2D())
				prev = scatterVertex{pdf: warp.SquareToUniformSpherePdf(direction), valid: true}
				ray = core.NewRayInterval(point, direction, 0, math.Inf(1))
				continue
			}

			// Surface event: weight Tr(d) / e^{-σmax·d}
			if !isHit {
				vp.config.Metrics.PathFinished(vp.Name(), metrics.Escaped, bounces)
				return radiance
			}
			throughput = throughput.MultiplyVec(ratio(sigmaT, sigmaMax, surfaceDistance))
		}

		if !isHit {
			radiance = radiance.Add(throughput.MultiplyVec(escapedRadiance(h, scene, prev, ray)))
			vp.config.Metrics.PathFinished(vp.Name(), metrics.Escaped, bounces)
			return radiance
		}

		radiance = radiance.Add(throughput.MultiplyVec(hitRadiance(h, scene, prev, ray, hit)))

		if vp.config.depthExceeded(bounces) {
			vp.config.Metrics.PathFinished(vp.Name(), metrics.DepthCap, bounces)
			return radiance
		}

		var alive bool
		if throughput, alive = russianRoulette(sampler, throughput); !alive {
			vp.config.Metrics.PathFinished(vp.Name(), metrics.Roulette, bounces)
			return radiance
		}

		wi := hit.ToLocal(ray.Direction.Negate())

		// Emitter sampling, attenuated by the medium along the shadow ray
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
			tr := transmittance(m, hit.Point, es.rec.P)
			radiance = radiance.Add(throughput.MultiplyVec(direct).MultiplyVec(tr).Multiply(wEms))
		}

		if !ok {
			vp.config.Metrics.PathFinished(vp.Name(), metrics.Absorbed, bounces+1)
			return radiance
		}

		var invalid bool
		if throughput, invalid = sanitize(throughput.MultiplyVec(bounce.weight)); invalid {
			vp.config.Metrics.InvalidSample(vp.Name())
		}
		if throughput.IsZero() {
			vp.config.Metrics.PathFinished(vp.Name(), metrics.Absorbed, bounces+1)
			return radiance
		}

		prev = scatterVertex{pdf: bounce.pdf, discrete: bounce.discrete, valid: true}
		ray = bounce.ray
	}
}
