package scene

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/medium"
	"github.com/df07/go-lighttransport/pkg/warp"
)

// NewCornellScene creates a classic Cornell box with quad walls, a ceiling light and two spheres.
// The box spans [0, 555]³ and is open toward -Z.
func NewCornellScene() (*Scene, error) {
	s := New()

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0
	x := core.NewVec3(boxSize, 0, 0)
	y := core.NewVec3(0, boxSize, 0)
	z := core.NewVec3(0, 0, boxSize)

	// Every wall faces into the box
	s.Add(
		geometry.NewQuad(core.NewVec3(0, 0, 0), z, x, white),       // floor
		geometry.NewQuad(core.NewVec3(0, boxSize, 0), x, z, white), // ceiling
		geometry.NewQuad(core.NewVec3(0, 0, boxSize), y, x, white), // back wall
		geometry.NewQuad(core.NewVec3(0, 0, 0), y, z, red),         // left wall
		geometry.NewQuad(core.NewVec3(boxSize, 0, 0), z, y, green), // right wall
	)

	s.Add(
		geometry.NewSphere(core.NewVec3(185, 90, 170), 90, material.NewMirror(core.Splat(0.95))),
		geometry.NewSphere(core.NewVec3(370, 90, 370), 90, material.NewDielectric(1.5)),
	)

	light := geometry.NewQuad(
		core.NewVec3(213, boxSize-1, 227),
		core.NewVec3(130, 0, 0),
		core.NewVec3(0, 0, 105),
		nil,
	)
	if err := s.AddAreaLight(light, core.NewVec3(15, 15, 15)); err != nil {
		return nil, err
	}

	return s, s.Preprocess()
}

// NewFogScene is the Cornell box filled with a thin homogeneous medium
func NewFogScene() (*Scene, error) {
	s, err := NewCornellScene()
	if err != nil {
		return nil, err
	}
	s.SetMedium(medium.NewHomogeneous(core.Splat(0.0005), core.Splat(0.002)))
	return s, nil
}

// NewFurnaceScene is a diffuse sphere of albedo 0.5 inside a uniform white environment.
// Every estimator converges to 0.5 on the sphere.
func NewFurnaceScene() (*Scene, error) {
	s := New()
	s.Add(geometry.NewSphere(core.Vec3{}, 1, material.NewLambertian(core.Splat(0.5))))
	s.SetEnvironment(core.Splat(1))
	return s, s.Preprocess()
}

// NewEmitterScene contains a single emissive quad facing +Z and nothing else
func NewEmitterScene() (*Scene, error) {
	s := New()
	quad := geometry.NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), nil)
	if err := s.AddAreaLight(quad, core.NewVec3(2, 2, 2)); err != nil {
		return nil, err
	}
	return s, s.Preprocess()
}

// NewPatchScene is a diffuse floor patch lit by a small bright quad light hanging above it
func NewPatchScene() (*Scene, error) {
	s := New()
	s.Add(geometry.NewQuad(
		core.NewVec3(-2, 0, -2),
		core.NewVec3(0, 0, 4),
		core.NewVec3(4, 0, 0),
		material.NewLambertian(core.Splat(0.8)),
	))

	light := geometry.NewQuad(
		core.NewVec3(-0.25, 1, -0.25),
		core.NewVec3(0.5, 0, 0),
		core.NewVec3(0, 0, 0.5),
		material.NewLambertian(core.Vec3{}),
	)
	if err := s.AddAreaLight(light, core.NewVec3(20, 20, 20)); err != nil {
		return nil, err
	}
	return s, s.Preprocess()
}

// NewGlossyScene lights a rough microfacet floor, a checkered back wall and a glass sphere
// with a point light and a quad light
func NewGlossyScene() (*Scene, error) {
	s := New()
	checker := material.NewCheckerboard(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.3, 0.6), 4)
	s.Add(
		geometry.NewQuad(
			core.NewVec3(-3, 0, -3),
			core.NewVec3(6, 0, 0),
			core.NewVec3(0, 4, 0),
			material.NewTexturedLambertian(checker),
		),
		geometry.NewQuad(
			core.NewVec3(-3, 0, -3),
			core.NewVec3(0, 0, 6),
			core.NewVec3(6, 0, 0),
			material.NewMicrofacet(0.2, 1.5, core.NewVec3(0.2, 0.25, 0.3), warp.GTR2),
		),
		geometry.NewSphere(core.NewVec3(0, 0.75, 0), 0.75, material.NewDielectric(1.5)),
	)
	s.AddPointLight(core.NewVec3(-1.5, 3, 1), core.Splat(60))

	light := geometry.NewQuad(
		core.NewVec3(0.5, 2.5, -1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		material.NewLambertian(core.Vec3{}),
	)
	if err := s.AddAreaLight(light, core.NewVec3(8, 8, 8)); err != nil {
		return nil, err
	}
	return s, s.Preprocess()
}
