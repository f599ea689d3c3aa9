package warp

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// SquareToBeckmann samples a microfacet normal from the Beckmann distribution.
// The density is D(m)·cosθ so that it integrates to one over the hemisphere.
func SquareToBeckmann(sample core.Vec2, alpha float64) core.Vec3 {
	alpha = math.Max(alpha, minRoughness)
	phi := 2 * math.Pi * sample.X
	tan2Theta := -alpha * alpha * math.Log(1-sample.Y)
	cosTheta := 1 / math.Sqrt(1+tan2Theta)
	return sphericalDirection(cosTheta, phi)
}

// SquareToBeckmannPdf returns D(m)·cosθ for the Beckmann distribution
func SquareToBeckmannPdf(m core.Vec3, alpha float64) float64 {
	if !onUnitSphere(m) || m.Z <= 0 {
		return 0
	}
	alpha = math.Max(alpha, minRoughness)
	cosTheta := m.Z
	cos2Theta := cosTheta * cosTheta
	tan2Theta := (1 - cos2Theta) / cos2Theta
	alpha2 := alpha * alpha
	return math.Exp(-tan2Theta/alpha2) / (math.Pi * alpha2 * cos2Theta * cosTheta)
}

// SquareToGTR1 samples the Berry (GTR γ=1) distribution used for clearcoat lobes.
// Roughness at or above one collapses to the cosine-weighted hemisphere, which is
// the closed-form limit of the distribution.
func SquareToGTR1(sample core.Vec2, alpha float64) core.Vec3 {
	if alpha >= 1 {
		return SquareToCosineHemisphere(sample)
	}
	alpha = math.Max(alpha, minRoughness)
	phi := 2 * math.Pi * sample.X
	alpha2 := alpha * alpha
	cos2Theta := (1 - math.Pow(alpha2, 1-sample.Y)) / (1 - alpha2)
	return sphericalDirection(math.Sqrt(math.Max(0, cos2Theta)), phi)
}

// SquareToGTR1Pdf returns D(m)·cosθ for the Berry distribution
func SquareToGTR1Pdf(m core.Vec3, alpha float64) float64 {
	if !onUnitSphere(m) || m.Z < 0 {
		return 0
	}
	cosTheta := m.Z
	if alpha >= 1 {
		return cosTheta / math.Pi
	}
	alpha = math.Max(alpha, minRoughness)
	alpha2 := alpha * alpha
	d := (alpha2 - 1) / (math.Pi * math.Log(alpha2) * (1 + (alpha2-1)*cosTheta*cosTheta))
	return d * cosTheta
}

// SquareToGTR2 samples the GGX (GTR γ=2) distribution
func SquareToGTR2(sample core.Vec2, alpha float64) core.Vec3 {
	alpha = math.Max(alpha, minRoughness)
	phi := 2 * math.Pi * sample.X
	alpha2 := alpha * alpha
	cos2Theta := (1 - sample.Y) / (1 + (alpha2-1)*sample.Y)
	return sphericalDirection(math.Sqrt(math.Max(0, cos2Theta)), phi)
}

// SquareToGTR2Pdf returns D(m)·cosθ for the GGX distribution
func SquareToGTR2Pdf(m core.Vec3, alpha float64) float64 {
	if !onUnitSphere(m) || m.Z < 0 {
		return 0
	}
	alpha = math.Max(alpha, minRoughness)
	alpha2 := alpha * alpha
	cosTheta := m.Z
	denom := 1 + (alpha2-1)*cosTheta*cosTheta
	return alpha2 * cosTheta / (math.Pi * denom * denom)
}
