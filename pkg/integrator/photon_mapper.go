package integrator

import (
	"fmt"
	"math"
	"time"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/log"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/metrics"
	"github.com/df07/go-lighttransport/pkg/photon"
)

// autoRadiusDivisor derives the gather radius from the scene's bounding box diagonal
const autoRadiusDivisor = 500.0

// PhotonMapper traces photons from the emitters in Preprocess and estimates radiance at
// the first diffuse surface seen from the camera by density estimation
type PhotonMapper struct {
	config Config
	logger log.Logger

	index       photon.Index
	radius      float64
	photonCount int
}

// NewPhotonMapper creates a new photon mapping integrator
func NewPhotonMapper(config Config) *PhotonMapper {
	return &PhotonMapper{
		config: config,
		logger: log.New("photon mapper"),
	}
}

func (pm *PhotonMapper) Name() string { return "photonmapper" }

// Radius returns the gather radius in use; valid after Preprocess
func (pm *PhotonMapper) Radius() float64 {
	return pm.radius
}

// Index returns the photon map built by Preprocess, or nil
func (pm *PhotonMapper) Index() photon.Index {
	return pm.index
}

// Preprocess emits PhotonCount photons and builds the photon map.
// An emitter that cannot produce photons aborts the build.
func (pm *PhotonMapper) Preprocess(scene Scene, sampler core.Sampler) error {
	if err := requireEmitters(scene); err != nil {
		return err
	}

	count := pm.config.PhotonCount
	if count <= 0 {
		count = DefaultConfig().PhotonCount
	}

	radius := pm.config.PhotonRadius
	if radius <= 0 {
		radius = scene.BoundingExtent().Length() / autoRadiusDivisor
		pm.logger.Infof("using automatic photon radius %.5g", radius)
	}

	pm.logger.Noticef("gathering %d photons", count)
	start := time.Now()

	index := photon.NewRTreeIndex(count)
	emitters := float64(scene.EmitterCount())
	for i := 0; i < count; i++ {
		emitter := scene.PickRandomEmitter(sampler.Get1D())
		ray, power, err := emitter.SamplePhoton(sampler.Get2D(), sampler.Get2D())
		if err != nil {
			return fmt.Errorf("integrator: emit photon %d: %w", i, err)
		}
		if err := pm.tracePhoton(scene, sampler, index, ray, power.Multiply(emitters)); err != nil {
			return err
		}
	}
	pm.config.Metrics.PhotonsEmitted(count)

	if err := index.Build(); err != nil {
		return fmt.Errorf("integrator: build photon map: %w", err)
	}

	pm.logger.Noticef("stored %d photons in %d ms", index.Len(), time.Since(start).Nanoseconds()/1e6)

	pm.index = index
	pm.radius = radius
	pm.photonCount = count
	return nil
}

// tracePhoton follows one light path, storing the photon at every diffuse hit.
// Russian roulette runs on the first power channel.
func (pm *PhotonMapper) tracePhoton(scene Scene, sampler core.Sampler, index photon.Index, ray core.Ray, power core.Vec3) error {
	for bounces := 0; ; bounces++ {
		hit, isHit := scene.Intersect(ray)
		if !isHit {
			return nil
		}

		if hit.BSDF.IsDiffuse() {
			stored := photon.Photon{Position: hit.Point, Direction: ray.Direction.Negate(), Power: power}
			if _, err := index.Insert(stored); err != nil {
				return fmt.Errorf("integrator: store photon: %w", err)
			}
			pm.config.Metrics.PhotonStored()
		}

		if pm.config.depthExceeded(bounces + 1) {
			return nil
		}

		survival := math.Min(power.X, maxSurvival)
		if survival <= 0 || sampler.Get1D() >= survival {
			return nil
		}
		power = power.Divide(survival)

		bounce, ok := sampleBSDF(hit, hit.ToLocal(ray.Direction.Negate()), sampler.Get2D())
		if !ok {
			return nil
		}

		var invalid bool
		if power, invalid = sanitize(power.MultiplyVec(bounce.weight)); invalid {
			pm.config.Metrics.InvalidSample(pm.Name())
		}
		if power.IsZero() {
			return nil
		}
		ray = bounce.ray
	}
}

// Li follows specular and glossy bounces to the first diffuse surface and estimates the
// radiance leaving it from the photon map. Before Preprocess there is no map and only
// emission is returned.
func (pm *PhotonMapper) Li(scene Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	var radiance core.Vec3
	throughput := core.Splat(1)

	for bounces := 0; ; bounces++ {
		hit, isHit := scene.Intersect(ray)
		if !isHit {
			radiance = radiance.Add(throughput.MultiplyVec(environment(scene, ray)))
			pm.config.Metrics.PathFinished(pm.Name(), metrics.Escaped, bounces)
			return radiance
		}

		radiance = radiance.Add(throughput.MultiplyVec(emitted(hit, ray.Origin)))

		if hit.BSDF.IsDiffuse() {
			radiance = radiance.Add(throughput.MultiplyVec(pm.densityEstimate(hit, ray)))
			pm.config.Metrics.PathFinished(pm.Name(), metrics.Gathered, bounces)
			return radiance
		}

		if pm.config.depthExceeded(bounces) {
			pm.config.Metrics.PathFinished(pm.Name(), metrics.DepthCap, bounces)
			return radiance
		}

		var alive bool
		if throughput, alive = russianRoulette(sampler, throughput); !alive {
			pm.config.Metrics.PathFinished(pm.Name(), metrics.Roulette, bounces)
			return radiance
		}

		bounce, ok := sampleBSDF(hit, hit.ToLocal(ray.Direction.Negate()), sampler.Get2D())
		if !ok {
			pm.config.Metrics.PathFinished(pm.Name(), metrics.Absorbed, bounces+1)
			return radiance
		}

		var invalid bool
		if throughput, invalid = sanitize(throughput.MultiplyVec(bounce.weight)); invalid {
			pm.config.Metrics.InvalidSample(pm.Name())
		}
		if throughput.IsZero() {
			pm.config.Metrics.PathFinished(pm.Name(), metrics.Absorbed, bounces+1)
			return radiance
		}
		ray = bounce.ray
	}
}

// densityEstimate sums f·Φ over the photons within the gather radius and divides by the
// disk area times the number of emitted photons
func (pm *PhotonMapper) densityEstimate(hit *geometry.SurfaceInteraction, ray core.Ray) core.Vec3 {
	if pm.index == nil {
		return core.Vec3{}
	}
	handles, err := pm.index.RangeQuery(hit.Point, pm.radius)
	if err != nil {
		pm.logger.Errorf("photon lookup failed: %v", err)
		return core.Vec3{}
	}

	wi := hit.ToLocal(ray.Direction.Negate())
	var sum core.Vec3
	for _, handle := range handles {
		p := pm.index.Retrieve(handle)
		rec := material.NewEvalQuery(wi, hit.ToLocal(p.Direction), material.SolidAngle, hit.UV)
		sum = sum.Add(hit.BSDF.Eval(&rec).MultiplyVec(p.Power).Sanitize())
	}
	return sum.Divide(math.Pi * pm.radius * pm.radius * float64(pm.photonCount))
}
