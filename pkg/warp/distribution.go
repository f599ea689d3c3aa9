package warp

import (
	"fmt"
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Distribution names one warp/density pair
type Distribution int

const (
	UniformSquare Distribution = iota
	UniformDisk
	UniformCylinder
	UniformSphere
	UniformSphereCap
	UniformHemisphere
	CosineHemisphere
	UniformTriangle
	Beckmann
	GTR1
	GTR2
)

var distributionNames = map[Distribution]string{
	UniformSquare:     "square",
	UniformDisk:       "disk",
	UniformCylinder:   "cylinder",
	UniformSphere:     "sphere",
	UniformSphereCap:  "spherecap",
	UniformHemisphere: "hemisphere",
	CosineHemisphere:  "cosine-hemisphere",
	UniformTriangle:   "triangle",
	Beckmann:          "beckmann",
	GTR1:              "gtr1",
	GTR2:              "gtr2",
}

// Distributions lists every supported distribution in declaration order
func Distributions() []Distribution {
	out := make([]Distribution, 0, len(distributionNames))
	for d := UniformSquare; d <= GTR2; d++ {
		out = append(out, d)
	}
	return out
}

func (d Distribution) String() string {
	if name, ok := distributionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Distribution(%d)", int(d))
}

// Warp maps a unit-square sample through distribution d. Planar results are returned
// with Z=0. param is the cone cosine for the sphere cap and the roughness for the
// microfacet distributions; it is ignored otherwise.
func Warp(d Distribution, sample core.Vec2, param float64) core.Vec3 {
	switch d {
	case UniformSquare:
		p := SquareToUniformSquare(sample)
		return core.NewVec3(p.X, p.Y, 0)
	case UniformDisk:
		p := SquareToUniformDisk(sample)
		return core.NewVec3(p.X, p.Y, 0)
	case UniformCylinder:
		return SquareToUniformCylinder(sample)
	case UniformSphere:
		return SquareToUniformSphere(sample)
	case UniformSphereCap:
		return SquareToUniformSphereCap(sample, param)
	case UniformHemisphere:
		return SquareToUniformHemisphere(sample)
	case CosineHemisphere:
		return SquareToCosineHemisphere(sample)
	case UniformTriangle:
		return SquareToUniformTriangle(sample)
	case Beckmann:
		return SquareToBeckmann(sample, param)
	case GTR1:
		return SquareToGTR1(sample, param)
	case GTR2:
		return SquareToGTR2(sample, param)
	}
	return core.Vec3{}
}

// Density evaluates the density of distribution d at v, using the same conventions as Warp
func Density(d Distribution, v core.Vec3, param float64) float64 {
	switch d {
	case UniformSquare:
		return SquareToUniformSquarePdf(core.NewVec2(v.X, v.Y))
	case UniformDisk:
		return SquareToUniformDiskPdf(core.NewVec2(v.X, v.Y))
	case UniformCylinder:
		return SquareToUniformCylinderPdf(v)
	case UniformSphere:
		return SquareToUniformSpherePdf(v)
	case UniformSphereCap:
		return SquareToUniformSphereCapPdf(v, param)
	case UniformHemisphere:
		return SquareToUniformHemispherePdf(v)
	case CosineHemisphere:
		return SquareToCosineHemispherePdf(v)
	case UniformTriangle:
		return SquareToUniformTrianglePdf(v)
	case Beckmann:
		return SquareToBeckmannPdf(v, param)
	case GTR1:
		return SquareToGTR1Pdf(v, param)
	case GTR2:
		return SquareToGTR2Pdf(v, param)
	}
	return 0
}

// Integrate estimates the integral of the density of d over its whole domain by Monte
// Carlo integration with n uniform samples. A correct density integrates to one.
func Integrate(d Distribution, param float64, sampler core.Sampler, n int) float64 {
	if n <= 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		u := sampler.Get2D()
		switch d {
		case UniformSquare, UniformDisk:
			// [-1,1]² encloses both planar supports
			p := core.NewVec3(2*u.X-1, 2*u.Y-1, 0)
			sum += Density(d, p, param) * 4
		case UniformTriangle:
			sum += Density(d, core.NewVec3(u.X, u.Y, 1-u.X-u.Y), param)
		case UniformCylinder:
			sum += Density(d, SquareToUniformCylinder(u), param) * 4 * math.Pi
		default:
			sum += Density(d, SquareToUniformSphere(u), param) * 4 * math.Pi
		}
	}
	return sum / float64(n)
}
