package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/medium"
	"github.com/df07/go-lighttransport/pkg/scene"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// estimate averages n evaluations of the X channel and returns the mean and per-sample variance
func estimate(t *testing.T, integ Integrator, s Scene, ray core.Ray, n int, seed int64) (float64, float64) {
	t.Helper()
	sampler := core.NewSeededSampler(seed)
	if err := integ.Preprocess(s, sampler); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	var sum, sumSquares float64
	for i := 0; i < n; i++ {
		value := integ.Li(s, sampler, ray)
		if !value.IsValid() {
			t.Fatalf("Sample %d is invalid: %v", i, value)
		}
		sum += value.X
		sumSquares += value.X * value.X
	}
	mean := sum / float64(n)
	return mean, sumSquares/float64(n) - mean*mean
}

func mustBuild(t *testing.T, build func() (*scene.Scene, error)) *scene.Scene {
	t.Helper()
	s, err := build()
	if err != nil {
		t.Fatalf("Scene build failed: %v", err)
	}
	return s
}

func mustNew(t *testing.T, name string, config Config) Integrator {
	t.Helper()
	integ, err := New(name, config)
	if err != nil {
		t.Fatal(err)
	}
	return integ
}

// patchProbe looks straight down at the floor of the patch scene
var patchProbe = core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(0, -1, 0))

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			integ := mustNew(t, name, DefaultConfig())
			if integ.Name() != name {
				t.Errorf("Expected name %q, got %q", name, integ.Name())
			}
		})
	}
	if len(Names()) != 7 {
		t.Errorf("Expected 7 integrators, got %d", len(Names()))
	}
	if _, err := New("bdpt", DefaultConfig()); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("Expected ErrUnknownIntegrator, got %v", err)
	}
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		h        Heuristic
		self     float64
		other    float64
		expected float64
	}{
		{"balance equal", Balance, 1, 1, 0.5},
		{"balance dominant", Balance, 3, 1, 0.75},
		{"power dominant", Power, 3, 1, 0.9},
		{"zero denominator", Balance, 0, 0, 0},
		{"invalid density", Balance, math.NaN(), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.weight(tt.self, tt.other); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}

	if h, err := ParseHeuristic("power"); err != nil || h != Power {
		t.Errorf("Expected power heuristic, got %v (err %v)", h, err)
	}
	if _, err := ParseHeuristic("cubic"); err == nil {
		t.Error("Expected error for unknown heuristic")
	}
}

func TestRussianRoulette_PreservesExpectation(t *testing.T) {
	tests := []struct {
		name       string
		throughput core.Vec3
	}{
		{"low survival", core.NewVec3(0.1, 0.05, 0.02)},
		{"mixed channels", core.NewVec3(0.3, 0.7, 0.5)},
		{"capped survival", core.NewVec3(4, 2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := core.NewSeededSampler(1)
			const trials = 200000
			var sum core.Vec3
			for i := 0; i < trials; i++ {
				if survived, ok := russianRoulette(sampler, tt.throughput); ok {
					sum = sum.Add(survived)
				}
			}
			mean := sum.Divide(trials)
			if math.Abs(mean.Y-tt.throughput.Y)/tt.throughput.Y > 0.03 {
				t.Errorf("Expected mean %v, got %v", tt.throughput, mean)
			}
		})
	}

	if _, ok := russianRoulette(core.NewSeededSampler(1), core.Vec3{}); ok {
		t.Error("Zero throughput must never survive")
	}
}

func TestPreprocess_NoEmitters(t *testing.T) {
	s := scene.New()
	s.Add(geometry.NewSphere(core.Vec3{}, 1, nil))
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"direct_ems", "direct_mis", "path_mis", "volpath", "photonmapper"} {
		integ := mustNew(t, name, DefaultConfig())
		if err := integ.Preprocess(s, core.NewSeededSampler(1)); !errors.Is(err, ErrNoEmitters) {
			t.Errorf("%s: expected ErrNoEmitters, got %v", name, err)
		}
	}
	for _, name := range []string{"ao", "direct_mats"} {
		integ := mustNew(t, name, DefaultConfig())
		if err := integ.Preprocess(s, core.NewSeededSampler(1)); err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
	}
}

func TestEmissionOnlyScene(t *testing.T) {
	s := mustBuild(t, scene.NewEmitterScene)
	probe := core.NewRay(core.NewVec3(0.2, -0.3, 3), core.NewVec3(0, 0, -1))

	for _, name := range []string{"direct_ems", "direct_mats", "direct_mis", "path_mis", "volpath"} {
		t.Run(name, func(t *testing.T) {
			integ := mustNew(t, name, DefaultConfig())
			sampler := core.NewSeededSampler(3)
			if err := integ.Preprocess(s, sampler); err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 500; i++ {
				value := integ.Li(s, sampler, probe)
				if value.Subtract(core.Splat(2)).Length() > 1e-9 {
					t.Fatalf("Sample %d: expected exactly the emitted radiance 2, got %v", i, value)
				}
			}
		})
	}
}

func TestFurnace(t *testing.T) {
	s := mustBuild(t, scene.NewFurnaceScene)
	probe := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	for _, name := range []string{"direct_ems", "direct_mats", "direct_mis", "path_mis", "volpath"} {
		t.Run(name, func(t *testing.T) {
			mean, _ := estimate(t, mustNew(t, name, DefaultConfig()), s, probe, 20000, 11)
			if math.Abs(mean-0.5) > 0.02 {
				t.Errorf("Expected 0.5, got %f", mean)
			}
		})
	}
}

func TestDirect_EstimatorsAgree(t *testing.T) {
	s := mustBuild(t, scene.NewPatchScene)
	const n = 40000

	ems, emsVariance := estimate(t, mustNew(t, "direct_ems", DefaultConfig()), s, patchProbe, n, 5)
	mats, matsVariance := estimate(t, mustNew(t, "direct_mats", DefaultConfig()), s, patchProbe, n, 6)
	mis, misVariance := estimate(t, mustNew(t, "direct_mis", DefaultConfig()), s, patchProbe, n, 7)

	if math.Abs(ems-mats)/ems > 0.06 {
		t.Errorf("EMS (%f) and MATS (%f) should converge to the same value", ems, mats)
	}
	if math.Abs(ems-mis)/ems > 0.03 {
		t.Errorf("EMS (%f) and MIS (%f) should converge to the same value", ems, mis)
	}
	if misVariance >= matsVariance {
		t.Errorf("MIS variance %f should be below MATS variance %f", misVariance, matsVariance)
	}
	if misVariance > 1.1*emsVariance {
		t.Errorf("MIS variance %f should stay close to the EMS variance %f on a diffuse patch", misVariance, emsVariance)
	}
	t.Logf("EMS %f (var %f), MATS %f (var %f), MIS %f (var %f)", ems, emsVariance, mats, matsVariance, mis, misVariance)
}

func TestDirect_GlossyFloorUnderLargeLight(t *testing.T) {
	s := scene.New()
	s.Add(geometry.NewQuad(core.NewVec3(-3, 0, -3), core.NewVec3(0, 0, 6), core.NewVec3(6, 0, 0),
		material.NewMicrofacet(0.05, 1.5, core.Vec3{}, warp.GTR2)))
	light := geometry.NewQuad(core.NewVec3(-2, 2, 0.5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 2), material.NewLambertian(core.Vec3{}))
	if err := s.AddAreaLight(light, core.Splat(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}

	// The mirror direction at the origin lands inside the light
	probe := core.NewRay(core.NewVec3(0, 1, -1), core.NewVec3(0, -1, 1))
	const n = 40000

	ems, emsVariance := estimate(t, mustNew(t, "direct_ems", DefaultConfig()), s, probe, n, 31)
	mats, _ := estimate(t, mustNew(t, "direct_mats", DefaultConfig()), s, probe, n, 32)
	mis, misVariance := estimate(t, mustNew(t, "direct_mis", DefaultConfig()), s, probe, n, 33)

	if mats <= 0 || math.Abs(mis-mats)/mats > 0.05 {
		t.Errorf("MIS (%f) and MATS (%f) should converge to the same value", mis, mats)
	}
	if misVariance >= emsVariance {
		t.Errorf("MIS variance %f should be below EMS variance %f on a glossy lobe", misVariance, emsVariance)
	}
	t.Logf("EMS %f (var %f), MATS %f, MIS %f (var %f)", ems, emsVariance, mats, mis, misVariance)
}

func TestPathMIS_PowerHeuristicAgrees(t *testing.T) {
	s := mustBuild(t, scene.NewPatchScene)
	config := DefaultConfig()

	balance, _ := estimate(t, mustNew(t, "path_mis", config), s, patchProbe, 20000, 8)
	config.Heuristic = Power
	power, _ := estimate(t, mustNew(t, "path_mis", config), s, patchProbe, 20000, 9)

	if math.Abs(balance-power)/balance > 0.04 {
		t.Errorf("Balance (%f) and power (%f) heuristics should agree", balance, power)
	}
}

func TestPathMIS_DiscreteLobe(t *testing.T) {
	s := scene.New()
	s.Add(geometry.NewQuad(core.NewVec3(-2, 0, -2), core.NewVec3(0, 0, 4), core.NewVec3(4, 0, 0), material.NewMirror(core.Splat(0.9))))
	light := geometry.NewQuad(core.NewVec3(-1, 1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), material.NewLambertian(core.Vec3{}))
	if err := s.AddAreaLight(light, core.Splat(5)); err != nil {
		t.Fatal(err)
	}
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}

	// Reflects off the mirror at the origin straight into the light
	probe := core.NewRay(core.NewVec3(0, 0.5, -0.25), core.NewVec3(0, -2, 1))
	mean, _ := estimate(t, NewPathMIS(DefaultConfig()), s, probe, 20000, 2)
	if math.Abs(mean-4.5)/4.5 > 0.03 {
		t.Errorf("Expected mirror-reflected radiance 4.5, got %f", mean)
	}
}

func TestVolPath_ZeroExtinctionMatchesPath(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*scene.Scene, error)
		probe core.Ray
	}{
		{"patch", scene.NewPatchScene, patchProbe},
		{"glossy", scene.NewGlossyScene, core.NewRay(core.NewVec3(0, 2, 4), core.NewVec3(0.3, -2, -3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustBuild(t, tt.build)
			s.SetMedium(medium.NewHomogeneous(core.Vec3{}, core.Vec3{}))

			path := NewPathMIS(DefaultConfig())
			vol := NewVolPath(DefaultConfig())
			for seed := int64(0); seed < 300; seed++ {
				expected := path.Li(s, core.NewSeededSampler(seed), tt.probe)
				got := vol.Li(s, core.NewSeededSampler(seed), tt.probe)
				if got != expected {
					t.Fatalf("Seed %d: volpath %v differs from path %v", seed, got, expected)
				}
			}
		})
	}
}

func TestVolPath_AbsorbingMedium(t *testing.T) {
	s := mustBuild(t, scene.NewEmitterScene)
	s.SetMedium(medium.NewHomogeneous(core.Splat(0.5), core.Vec3{}))
	probe := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))

	mean, _ := estimate(t, NewVolPath(DefaultConfig()), s, probe, 40000, 4)
	expected := 2 * math.Exp(-1.5)
	if math.Abs(mean-expected) > 0.02 {
		t.Errorf("Expected transmitted radiance %f, got %f", expected, mean)
	}
}

func TestVolPath_ScatteringMediumConverges(t *testing.T) {
	s := mustBuild(t, scene.NewPatchScene)
	s.SetMedium(medium.NewHomogeneous(core.Splat(0.05), core.Splat(0.2)))

	vol, _ := estimate(t, NewVolPath(DefaultConfig()), s, patchProbe, 20000, 12)
	path, _ := estimate(t, NewPathMIS(DefaultConfig()), s, patchProbe, 20000, 13)
	if vol <= 0 || vol >= path {
		t.Errorf("Medium should dim the estimate: volpath %f, path %f", vol, path)
	}
}

func TestPhotonMapper_MatchesDirectOnPatch(t *testing.T) {
	s := mustBuild(t, scene.NewPatchScene)
	direct, _ := estimate(t, NewDirectMIS(DefaultConfig()), s, patchProbe, 40000, 22)

	// More photons gathered over a smaller disk: the error shrinks with each step
	steps := []struct {
		photons   int
		radius    float64
		tolerance float64
	}{
		{20000, 0.6, 0.25},
		{200000, 0.1, 0.1},
	}

	previous := math.Inf(1)
	for _, step := range steps {
		config := DefaultConfig()
		config.PhotonCount = step.photons
		config.PhotonRadius = step.radius
		photons, _ := estimate(t, NewPhotonMapper(config), s, patchProbe, 10, 21)

		relErr := math.Abs(photons-direct) / direct
		if relErr > step.tolerance {
			t.Errorf("%d photons, radius %.2f: estimate %f should approach direct lighting %f", step.photons, step.radius, photons, direct)
		}
		if relErr >= previous {
			t.Errorf("%d photons, radius %.2f: error %.4f did not shrink from %.4f", step.photons, step.radius, relErr, previous)
		}
		previous = relErr
	}
}

func TestPhotonMapper_Preprocess(t *testing.T) {
	s := mustBuild(t, scene.NewPatchScene)

	pm := NewPhotonMapper(Config{PhotonCount: 1000})
	if value := pm.Li(s, core.NewSeededSampler(1), patchProbe); !value.IsZero() {
		t.Errorf("Expected zero before Preprocess, got %v", value)
	}

	if err := pm.Preprocess(s, core.NewSeededSampler(1)); err != nil {
		t.Fatal(err)
	}
	expectedRadius := s.BoundingExtent().Length() / 500
	if math.Abs(pm.Radius()-expectedRadius) > 1e-12 {
		t.Errorf("Expected automatic radius %f, got %f", expectedRadius, pm.Radius())
	}
	if pm.Index() == nil || pm.Index().Len() == 0 {
		t.Error("Expected stored photons")
	}
}

func TestPhotonMapper_ZeroPhotonDensity(t *testing.T) {
	s := scene.New()
	degenerate := geometry.NewQuad(core.Vec3{}, core.NewVec3(1, 0, 0), core.Vec3{}, nil)
	if err := s.AddAreaLight(degenerate, core.Splat(1)); err != nil {
		t.Fatal(err)
	}
	s.Add(geometry.NewSphere(core.NewVec3(0, -2, 0), 1, nil))
	if err := s.Preprocess(); err != nil {
		t.Fatal(err)
	}

	err := NewPhotonMapper(Config{PhotonCount: 10}).Preprocess(s, core.NewSeededSampler(1))
	if !errors.Is(err, lights.ErrZeroPhotonDensity) {
		t.Errorf("Expected ErrZeroPhotonDensity, got %v", err)
	}
}

func TestAmbientOcclusion(t *testing.T) {
	s := mustBuild(t, scene.NewPatchScene)

	tests := []struct {
		name   string
		length float64
		check  func(mean float64) bool
	}{
		{"short rays never reach the light", 0.5, func(mean float64) bool { return mean == 1 }},
		{"long rays are sometimes blocked", 2, func(mean float64) bool { return mean > 0.5 && mean < 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.AOLength = tt.length
			mean, _ := estimate(t, NewAmbientOcclusion(config), s, patchProbe, 5000, 3)
			if !tt.check(mean) {
				t.Errorf("Unexpected occlusion mean %f", mean)
			}
		})
	}

	miss := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0))
	if value := NewAmbientOcclusion(DefaultConfig()).Li(s, core.NewSeededSampler(1), miss); value != core.Splat(1) {
		t.Errorf("Expected 1 for a missed primary ray, got %v", value)
	}
}

func TestVolPath_ClearChannelSeesEnvironment(t *testing.T) {
	s := mustBuild(t, scene.NewFurnaceScene)
	s.SetMedium(medium.NewHomogeneous(core.NewVec3(0, 0.05, 0.05), core.Vec3{}))
	vol := NewVolPath(DefaultConfig())
	if err := vol.Preprocess(s, core.NewSeededSampler(1)); err != nil {
		t.Fatal(err)
	}

	// Looking away from the sphere only the unattenuated channel reaches the environment
	away := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))
	for seed := int64(0); seed < 50; seed++ {
		got := vol.Li(s, core.NewSeededSampler(seed), away)
		if got != core.NewVec3(1, 0, 0) {
			t.Fatalf("Seed %d: expected (1, 0, 0), got %v", seed, got)
		}
	}

	probe := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	volMean, _ := estimate(t, vol, s, probe, 20000, 14)
	pathMean, _ := estimate(t, NewPathMIS(DefaultConfig()), s, probe, 20000, 15)
	if math.Abs(volMean-0.5) > 0.03 || math.Abs(volMean-pathMean) > 0.03 {
		t.Errorf("Red channel should match the path tracer: volpath %f, path %f", volMean, pathMean)
	}
}
