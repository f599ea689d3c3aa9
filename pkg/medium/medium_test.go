package medium

import (
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
)

func TestHomogeneous_Coefficients(t *testing.T) {
	m := NewHomogeneous(core.NewVec3(0.1, 0, 0), core.NewVec3(0.3, 0.5, 0))

	if m.Extinction().Subtract(core.NewVec3(0.4, 0.5, 0)).Length() > 1e-12 {
		t.Errorf("Unexpected extinction %v", m.Extinction())
	}
	albedo := m.Albedo()
	if math.Abs(albedo.X-0.75) > 1e-12 || albedo.Y != 1 {
		t.Errorf("Unexpected albedo %v", albedo)
	}
	if albedo.Z != 0 {
		t.Errorf("Albedo must be zero on a channel without extinction, got %f", albedo.Z)
	}
	if math.Abs(m.PhaseValue()*4*math.Pi-1) > 1e-12 {
		t.Errorf("Isotropic phase function must integrate to 1, got %f", m.PhaseValue())
	}
}

func TestHomogeneous_Transmittance(t *testing.T) {
	m := NewHomogeneous(core.NewVec3(1, 0.5, 0), core.Vec3{})

	tests := []struct {
		name     string
		a, b     core.Vec3
		expected core.Vec3
	}{
		{"zero length", core.Vec3{}, core.Vec3{}, core.NewVec3(1, 1, 1)},
		{"unit length", core.Vec3{}, core.NewVec3(0, 1, 0), core.NewVec3(math.Exp(-1), math.Exp(-0.5), 1)},
		{"symmetric", core.NewVec3(0, 2, 0), core.Vec3{}, core.NewVec3(math.Exp(-2), math.Exp(-1), 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := m.Transmittance(tt.a, tt.b)
			if tr.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, tr)
			}
		})
	}
}

func TestTransmittanceOver_InfiniteDistance(t *testing.T) {
	tr := TransmittanceOver(core.NewVec3(0, 1, 0), math.Inf(1))
	if tr.X != 1 || tr.Y != 0 || tr.Z != 1 {
		t.Errorf("Expected (1, 0, 1), got %v", tr)
	}
	if !tr.IsValid() {
		t.Error("Transmittance must never be NaN")
	}
}
