// Package integrator implements the Monte Carlo estimators of incident radiance along a ray.
package integrator

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/medium"
	"github.com/df07/go-lighttransport/pkg/metrics"
)

// Scene is the query facade every integrator runs against
type Scene interface {
	Intersect(ray core.Ray) (*geometry.SurfaceInteraction, bool)
	PickRandomEmitter(u float64) lights.Emitter
	EmitterCount() int
	EnvironmentEmitter() lights.Emitter // nil when the scene has no environment
	Medium() medium.Medium              // nil when the scene has no medium
	BoundingExtent() core.Vec3
}

// Integrator estimates incident radiance along a ray.
// Li is safe for concurrent use after Preprocess returns, provided each caller owns its sampler.
type Integrator interface {
	Name() string
	Preprocess(scene Scene, sampler core.Sampler) error
	Li(scene Scene, sampler core.Sampler, ray core.Ray) core.Vec3
}

// Heuristic selects the multiple importance sampling weight function
type Heuristic int

const (
	Balance Heuristic = iota
	Power
)

// weight returns the MIS weight of the technique with density pSelf against pOther.
// A zero denominator or an invalid density yields zero.
func (h Heuristic) weight(pSelf, pOther float64) float64 {
	var w float64
	if h == Power {
		w = core.PowerHeuristic(1, pSelf, 1, pOther)
	} else {
		w = core.BalanceHeuristic(1, pSelf, 1, pOther)
	}
	if math.IsNaN(w) || w < 0 {
		return 0
	}
	return w
}

func (h Heuristic) String() string {
	if h == Power {
		return "power"
	}
	return "balance"
}

// ParseHeuristic maps "balance" or "power" to a Heuristic
func ParseHeuristic(name string) (Heuristic, error) {
	switch name {
	case "balance", "":
		return Balance, nil
	case "power":
		return Power, nil
	}
	return Balance, fmt.Errorf("integrator: unknown heuristic %q", name)
}

// Config contains integrator configuration
type Config struct {
	AOLength     float64            // Occlusion ray length for ambient occlusion
	PhotonCount  int                // Photons emitted by the photon mapper
	PhotonRadius float64            // Density estimation radius; 0 derives it from the scene extent
	MaxDepth     int                // Maximum bounces; 0 leaves termination to Russian roulette
	Heuristic    Heuristic          // MIS weight function
	Metrics      *metrics.Collector // Optional counters, nil disables them
}

// DefaultConfig returns the default integrator configuration
func DefaultConfig() Config {
	return Config{
		AOLength:     1.0,
		PhotonCount:  100000,
		PhotonRadius: 0,
		MaxDepth:     0,
		Heuristic:    Balance,
	}
}

var constructors = map[string]func(Config) Integrator{
	"ao":           func(c Config) Integrator { return NewAmbientOcclusion(c) },
	"direct_ems":   func(c Config) Integrator { return NewDirectEMS(c) },
	"direct_mats":  func(c Config) Integrator { return NewDirectMATS(c) },
	"direct_mis":   func(c Config) Integrator { return NewDirectMIS(c) },
	"path_mis":     func(c Config) Integrator { return NewPathMIS(c) },
	"volpath":      func(c Config) Integrator { return NewVolPath(c) },
	"photonmapper": func(c Config) Integrator { return NewPhotonMapper(c) },
}

// New creates the integrator registered under name
func New(name string, config Config) (Integrator, error) {
	constructor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, name)
	}
	return constructor(config), nil
}

// Names returns every registered integrator name in sorted order
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
