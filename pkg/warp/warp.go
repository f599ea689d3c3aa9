// Package warp maps uniform unit-square samples onto target domains.
//
// Every warp comes paired with a density function returning the exact
// analytic PDF of the warp's output under the domain's natural measure
// (area for planar domains, solid angle for directions). Densities are
// exactly zero outside the support of the distribution, so callers can
// treat zero as "unreachable" without dividing by it.
package warp

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// tolerance used by the on-manifold tests of the density functions
const tolerance = 1e-6

// minRoughness keeps microfacet warps away from the delta limit
const minRoughness = 1e-4

func onUnitSphere(v core.Vec3) bool {
	return math.Abs(v.Length()-1) < tolerance
}

// SquareToUniformSquare is the identity warp
func SquareToUniformSquare(sample core.Vec2) core.Vec2 {
	return sample
}

// SquareToUniformSquarePdf is 1 inside the unit square
func SquareToUniformSquarePdf(p core.Vec2) float64 {
	if p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1 {
		return 1
	}
	return 0
}

// SquareToUniformDisk maps a sample to the unit disk using the concentric mapping,
// which avoids rejection sampling and keeps strata compact
func SquareToUniformDisk(sample core.Vec2) core.Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	ux := 2*sample.X - 1
	uy := 2*sample.Y - 1
	if ux == 0 && uy == 0 {
		return core.Vec2{}
	}

	var theta, r float64
	if math.Abs(ux) > math.Abs(uy) {
		r = ux
		theta = math.Pi / 4 * (uy / ux)
	} else {
		r = uy
		theta = math.Pi/2 - math.Pi/4*(ux/uy)
	}

	return core.NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SquareToUniformDiskPdf is 1/π inside the unit disk
func SquareToUniformDiskPdf(p core.Vec2) float64 {
	if p.Length() <= 1+tolerance {
		return 1 / math.Pi
	}
	return 0
}

// SquareToUniformCylinder maps a sample to the unit cylinder of height 2 centered on the origin
func SquareToUniformCylinder(sample core.Vec2) core.Vec3 {
	phi := 2 * math.Pi * sample.Y
	return core.NewVec3(math.Cos(phi), math.Sin(phi), 2*sample.X-1)
}

// SquareToUniformCylinderPdf is 1/(4π), the inverse cylinder area
func SquareToUniformCylinderPdf(v core.Vec3) float64 {
	if math.Abs(math.Hypot(v.X, v.Y)-1) < tolerance && math.Abs(v.Z) <= 1+tolerance {
		return 1 / (4 * math.Pi)
	}
	return 0
}

// SquareToUniformSphere projects the cylinder warp onto the sphere (Archimedes)
func SquareToUniformSphere(sample core.Vec2) core.Vec3 {
	c := SquareToUniformCylinder(sample)
	r := math.Sqrt(math.Max(0, 1-c.Z*c.Z))
	return core.NewVec3(r*c.X, r*c.Y, c.Z)
}

// SquareToUniformSpherePdf is 1/(4π) on the unit sphere
func SquareToUniformSpherePdf(v core.Vec3) float64 {
	if onUnitSphere(v) {
		return 1 / (4 * math.Pi)
	}
	return 0
}

// SquareToUniformSphereCap samples the cap of directions with cosθ ≥ cosThetaMax around +z
func SquareToUniformSphereCap(sample core.Vec2, cosThetaMax float64) core.Vec3 {
	cosThetaMax = math.Max(-1, math.Min(1, cosThetaMax))
	z := cosThetaMax + sample.X*(1-cosThetaMax)
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * sample.Y
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SquareToUniformSphereCapPdf is the inverse cap solid angle, 1/(2π(1-cosThetaMax)).
// A degenerate cap (cosThetaMax ≥ 1) has no continuous density.
func SquareToUniformSphereCapPdf(v core.Vec3, cosThetaMax float64) float64 {
	cosThetaMax = math.Max(-1, cosThetaMax)
	if cosThetaMax >= 1 || !onUnitSphere(v) || v.Z < cosThetaMax-tolerance {
		return 0
	}
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

// SquareToUniformHemisphere samples the upper (+z) hemisphere uniformly
func SquareToUniformHemisphere(sample core.Vec2) core.Vec3 {
	s := SquareToUniformSphere(sample)
	return core.NewVec3(s.X, s.Y, math.Abs(s.Z))
}

// SquareToUniformHemispherePdf is 1/(2π) on the upper hemisphere
func SquareToUniformHemispherePdf(v core.Vec3) float64 {
	if onUnitSphere(v) && v.Z >= 0 {
		return 1 / (2 * math.Pi)
	}
	return 0
}

// SquareToCosineHemisphere samples the upper hemisphere proportionally to cosθ
func SquareToCosineHemisphere(sample core.Vec2) core.Vec3 {
	phi := 2 * math.Pi * sample.X
	r := math.Sqrt(sample.Y)
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), math.Sqrt(1-sample.Y))
}

// SquareToCosineHemispherePdf is cosθ/π on the upper hemisphere
func SquareToCosineHemispherePdf(v core.Vec3) float64 {
	if onUnitSphere(v) && v.Z >= 0 {
		return v.Z / math.Pi
	}
	return 0
}

// SquareToUniformTriangle returns uniformly distributed barycentric coordinates (b0, b1, b2)
func SquareToUniformTriangle(sample core.Vec2) core.Vec3 {
	su := math.Sqrt(sample.X)
	b0 := 1 - su
	b1 := sample.Y * su
	return core.NewVec3(b0, b1, 1-b0-b1)
}

// SquareToUniformTrianglePdf is 2, the inverse area of the (b0, b1) reference triangle
func SquareToUniformTrianglePdf(b core.Vec3) float64 {
	if b.X < -tolerance || b.Y < -tolerance || b.Z < -tolerance {
		return 0
	}
	if math.Abs(b.X+b.Y+b.Z-1) > tolerance {
		return 0
	}
	return 2
}

// sphericalDirection builds a unit vector from a polar cosine and azimuth
func sphericalDirection(cosTheta, phi float64) core.Vec3 {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}
