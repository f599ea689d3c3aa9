// Package photon stores photons deposited by the photon mapper and answers radius queries.
package photon

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Photon is a stored light transport sample
type Photon struct {
	Position  core.Vec3
	Direction core.Vec3 // direction the photon arrived from, pointing away from the surface
	Power     core.Vec3
}

// Handle identifies a stored photon
type Handle int

// Index is a build-once spatial index over photons.
// Inserts happen before Build; queries are only valid after it and may run concurrently.
type Index interface {
	Insert(p Photon) (Handle, error)
	Build() error
	RangeQuery(center core.Vec3, radius float64) ([]Handle, error)
	Retrieve(h Handle) Photon
	Len() int
}
