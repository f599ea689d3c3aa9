// Package scene implements the query facade the integrators run against.
package scene

import (
	"fmt"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/lights"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/medium"
)

// defaultAlbedo is given to shapes added without a BSDF
var defaultAlbedo = core.Splat(0.5)

// Scene contains the shapes, emitters and medium of one render
type Scene struct {
	Shapes   []geometry.Shape
	Emitters []lights.Emitter
	BVH      *geometry.BVH // Acceleration structure for ray-object intersection

	environment  lights.Emitter
	medium       medium.Medium
	lightSampler *lights.UniformLightSampler
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// Add adds shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddAreaLight turns shape into an emitter with constant radiance on its outward side
func (s *Scene) AddAreaLight(shape geometry.Shape, radiance core.Vec3) error {
	if shape == nil {
		return lights.ErrNoShape
	}
	light, err := lights.NewAreaLight(shape, radiance)
	if err != nil {
		return err
	}
	shape.Attached().Emitter = light
	s.Shapes = append(s.Shapes, shape)
	s.Emitters = append(s.Emitters, light)
	return nil
}

// AddPointLight adds an isotropic point light with the given power
func (s *Scene) AddPointLight(position, power core.Vec3) {
	s.Emitters = append(s.Emitters, lights.NewPointLight(position, power))
}

// SetEnvironment adds a uniform environment emitter seen by rays that leave the scene
func (s *Scene) SetEnvironment(radiance core.Vec3) {
	env := lights.NewUniformInfiniteLight(radiance)
	s.environment = env
	s.Emitters = append(s.Emitters, env)
}

// SetMedium fills the whole scene with a participating medium
func (s *Scene) SetMedium(m medium.Medium) {
	s.medium = m
}

// Preprocess prepares the scene for rendering by preprocessing all objects that need it
func (s *Scene) Preprocess() error {
	for _, shape := range s.Shapes {
		if bindings := shape.Attached(); bindings.BSDF == nil {
			bindings.BSDF = material.NewLambertian(defaultAlbedo)
		}
	}

	s.BVH = geometry.NewBVH(s.Shapes)

	for _, emitter := range s.Emitters {
		if preprocessor, ok := emitter.(lights.Preprocessor); ok {
			if err := preprocessor.Preprocess(s.BVH.Center, s.BVH.Radius); err != nil {
				return fmt.Errorf("scene: preprocess emitter: %w", err)
			}
		}
	}

	s.lightSampler = lights.NewUniformLightSampler(s.Emitters)
	return nil
}

// Intersect returns the closest surface hit along ray
func (s *Scene) Intersect(ray core.Ray) (*geometry.SurfaceInteraction, bool) {
	if s.BVH == nil {
		return nil, false
	}
	return s.BVH.Hit(ray)
}

// PickRandomEmitter selects an emitter uniformly. Returns nil when the scene has none.
func (s *Scene) PickRandomEmitter(u float64) lights.Emitter {
	if s.lightSampler == nil {
		return nil
	}
	return s.lightSampler.Pick(u)
}

// EmitterCount returns the number of emitters PickRandomEmitter chooses from
func (s *Scene) EmitterCount() int {
	return len(s.Emitters)
}

// EnvironmentEmitter returns the emitter seen by escaping rays, or nil
func (s *Scene) EnvironmentEmitter() lights.Emitter {
	return s.environment
}

// Medium returns the scene-global medium, or nil
func (s *Scene) Medium() medium.Medium {
	return s.medium
}

// BoundingExtent returns the size of the scene's bounding box
func (s *Scene) BoundingExtent() core.Vec3 {
	if s.BVH == nil {
		return core.Vec3{}
	}
	return s.BVH.BoundingBox().Size()
}
