package integrator

import "errors"

var (
	// ErrUnknownIntegrator is returned by New for unregistered names
	ErrUnknownIntegrator = errors.New("integrator: unknown integrator")
	// ErrNoEmitters is returned by Preprocess when an emitter-sampling integrator runs on a scene without emitters
	ErrNoEmitters = errors.New("integrator: scene has no emitters")
)
