// Package medium provides the participating media used by the volumetric path tracer.
package medium

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Medium is a scene-global participating medium
type Medium interface {
	// Transmittance returns the per-channel fraction of light surviving from a to b
	Transmittance(a, b core.Vec3) core.Vec3
	// Extinction returns the per-channel extinction coefficient σt = σa + σs
	Extinction() core.Vec3
	// Albedo returns the per-channel single-scattering albedo σs/σt
	Albedo() core.Vec3
	// PhaseValue returns the phase function value for any pair of directions
	PhaseValue() float64
	// Scattering returns the per-channel scattering coefficient σs
	Scattering() core.Vec3
}

// Homogeneous is a medium with constant coefficients and an isotropic phase function
type Homogeneous struct {
	SigmaA core.Vec3 // absorption coefficient
	SigmaS core.Vec3 // scattering coefficient
}

// NewHomogeneous creates a homogeneous medium from absorption and scattering coefficients
func NewHomogeneous(sigmaA, sigmaS core.Vec3) *Homogeneous {
	return &Homogeneous{SigmaA: sigmaA, SigmaS: sigmaS}
}

func (h *Homogeneous) Extinction() core.Vec3 {
	return h.SigmaA.Add(h.SigmaS)
}

func (h *Homogeneous) Scattering() core.Vec3 {
	return h.SigmaS
}

// Albedo is zero on channels with no extinction
func (h *Homogeneous) Albedo() core.Vec3 {
	return h.SigmaS.DivideVec(h.Extinction())
}

func (h *Homogeneous) PhaseValue() float64 {
	return 1.0 / (4.0 * math.Pi)
}

func (h *Homogeneous) Transmittance(a, b core.Vec3) core.Vec3 {
	return TransmittanceOver(h.Extinction(), b.Subtract(a).Length())
}

// TransmittanceOver returns exp(-σt·distance) per channel.
// Channels with zero extinction transmit fully, even over an infinite distance.
func TransmittanceOver(sigmaT core.Vec3, distance float64) core.Vec3 {
	tr := func(sigma float64) float64 {
		if sigma == 0 {
			return 1
		}
		return math.Exp(-sigma * distance)
	}
	return core.NewVec3(tr(sigmaT.X), tr(sigmaT.Y), tr(sigmaT.Z))
}
