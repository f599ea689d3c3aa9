package renderer

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// SampleStats accumulates radiance samples for one probe ray
type SampleStats struct {
	ColorAccum   core.Vec3 // RGB accumulator for the mean
	ColorSqAccum core.Vec3 // Per-channel squared accumulator for the variance
	SampleCount  int       // Number of samples taken
}

// AddSample adds a new radiance sample
func (ss *SampleStats) AddSample(color core.Vec3) {
	ss.ColorAccum = ss.ColorAccum.Add(color)
	ss.ColorSqAccum = ss.ColorSqAccum.Add(color.MultiplyVec(color))
	ss.SampleCount++
}

// Merge adds another accumulator's samples to this one
func (ss *SampleStats) Merge(other SampleStats) {
	ss.ColorAccum = ss.ColorAccum.Add(other.ColorAccum)
	ss.ColorSqAccum = ss.ColorSqAccum.Add(other.ColorSqAccum)
	ss.SampleCount += other.SampleCount
}

// Mean returns the current average radiance
func (ss *SampleStats) Mean() core.Vec3 {
	if ss.SampleCount == 0 {
		return core.Vec3{}
	}
	return ss.ColorAccum.Divide(float64(ss.SampleCount))
}

// Variance returns the per-channel sample variance
func (ss *SampleStats) Variance() core.Vec3 {
	if ss.SampleCount < 2 {
		return core.Vec3{}
	}
	n := float64(ss.SampleCount)
	mean := ss.Mean()
	variance := ss.ColorSqAccum.Divide(n).Subtract(mean.MultiplyVec(mean)).Multiply(n / (n - 1))
	return variance.Sanitize()
}

// Estimate is the result of evaluating an integrator many times along one ray
type Estimate struct {
	Mean     core.Vec3
	Variance core.Vec3 // Per-sample variance
	Samples  int
}

// StdError returns the per-channel standard error of the mean
func (e Estimate) StdError() core.Vec3 {
	if e.Samples == 0 {
		return core.Vec3{}
	}
	n := float64(e.Samples)
	return core.NewVec3(
		math.Sqrt(e.Variance.X/n),
		math.Sqrt(e.Variance.Y/n),
		math.Sqrt(e.Variance.Z/n),
	)
}
