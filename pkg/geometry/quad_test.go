package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

func newUnitQuad() *Quad {
	// Unit square in the XY plane, normal +Z
	return NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
}

func TestQuad_Hit_BasicIntersection(t *testing.T) {
	quad := newUnitQuad()
	ray := core.NewRay(core.NewVec3(0.25, 0.75, 2), core.NewVec3(0, 0, -1))

	hit, isHit := quad.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
	if math.Abs(hit.UV.X-0.25) > 1e-9 || math.Abs(hit.UV.Y-0.75) > 1e-9 {
		t.Errorf("Expected uv (0.25, 0.75), got %v", hit.UV)
	}
	if hit.Normal().Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected normal +Z, got %v", hit.Normal())
	}
}

func TestQuad_Hit_OutsideBounds(t *testing.T) {
	quad := newUnitQuad()

	tests := []struct {
		name   string
		origin core.Vec3
	}{
		{"left of quad", core.NewVec3(-0.1, 0.5, 1)},
		{"right of quad", core.NewVec3(1.1, 0.5, 1)},
		{"below quad", core.NewVec3(0.5, -0.1, 1)},
		{"above quad", core.NewVec3(0.5, 1.1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))
			if _, isHit := quad.Hit(ray); isHit {
				t.Error("Expected miss")
			}
		})
	}
}

func TestQuad_Hit_BackFaceAndParallel(t *testing.T) {
	quad := newUnitQuad()

	hit, isHit := quad.Hit(core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1)))
	if !isHit || hit.FrontFace {
		t.Error("Expected back face hit")
	}

	if _, isHit := quad.Hit(core.NewRay(core.NewVec3(0, 0.5, 0.5), core.NewVec3(1, 0, 0))); isHit {
		t.Error("Expected parallel ray to miss")
	}
}

func TestQuad_BindingsReachInteraction(t *testing.T) {
	bsdf := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0), bsdf)

	hit, isHit := quad.Hit(core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, -1)))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.BSDF != bsdf {
		t.Error("Expected BSDF from shape bindings")
	}
	if hit.Shape != quad {
		t.Error("Expected interaction to reference the hit shape")
	}
	if quad.Area() != 6 || math.Abs(quad.SurfacePDF(hit.Point)-1.0/6) > 1e-12 {
		t.Errorf("Expected area 6, got %f", quad.Area())
	}
}

func TestQuad_SampleSurface(t *testing.T) {
	quad := NewQuad(core.NewVec3(1, 1, 1), core.NewVec3(0, 2, 0), core.NewVec3(0, 0, 2), nil)
	point, normal, pdf := quad.SampleSurface(core.NewVec2(0.5, 0.25))

	if point.Subtract(core.NewVec3(1, 2, 1.5)).Length() > 1e-12 {
		t.Errorf("Expected (1, 2, 1.5), got %v", point)
	}
	if normal.Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-12 {
		t.Errorf("Expected normal +X, got %v", normal)
	}
	if math.Abs(pdf-0.25) > 1e-12 {
		t.Errorf("Expected pdf 0.25, got %f", pdf)
	}

	box := quad.BoundingBox()
	if box.Size().X <= 0 {
		t.Error("Flat quad bounding box should be padded")
	}
}
