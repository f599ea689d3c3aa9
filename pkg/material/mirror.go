package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Mirror is a perfect specular reflector
type Mirror struct {
	Reflectance core.Vec3
}

// NewMirror creates a new mirror with the given per-channel reflectance
func NewMirror(reflectance core.Vec3) *Mirror {
	return &Mirror{Reflectance: reflectance}
}

// Eval is zero: a delta lobe has no value under the solid-angle measure
func (m *Mirror) Eval(rec *BSDFQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF is zero: a delta lobe has no density under the solid-angle measure
func (m *Mirror) PDF(rec *BSDFQueryRecord) float64 {
	return 0
}

// Sample reflects Wi about the local normal
func (m *Mirror) Sample(rec *BSDFQueryRecord, sample core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}
	rec.Wo = reflectLocal(rec.Wi)
	rec.Measure = Discrete
	rec.Eta = 1
	return m.Reflectance
}

// IsDiffuse is false for mirrors
func (m *Mirror) IsDiffuse() bool {
	return false
}

// reflectLocal mirrors a local direction about the z axis
func reflectLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(-v.X, -v.Y, v.Z)
}
