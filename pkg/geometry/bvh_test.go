package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
)

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, isHit := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))); isHit {
		t.Error("Empty BVH should never hit")
	}
	if bvh.Radius != 0 {
		t.Errorf("Expected zero radius, got %f", bvh.Radius)
	}
}

func TestBVH_MatchesLinearSearch(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	var shapes []Shape
	for i := 0; i < 60; i++ {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		shapes = append(shapes, NewSphere(center, 0.2+random.Float64(), nil))
	}
	bvh := NewBVH(shapes)

	for i := 0; i < 200; i++ {
		direction := core.NewVec3(random.NormFloat64(), random.NormFloat64(), random.NormFloat64())
		ray := core.NewRay(core.NewVec3(0, 0, 0), direction)

		var linear *SurfaceInteraction
		narrowed := ray
		for _, shape := range shapes {
			if hit, ok := shape.Hit(narrowed); ok {
				linear = hit
				narrowed.TMax = hit.T
			}
		}

		hit, isHit := bvh.Hit(ray)
		if isHit != (linear != nil) {
			t.Fatalf("Ray %d: BVH hit=%t, linear hit=%t", i, isHit, linear != nil)
		}
		if isHit && (math.Abs(hit.T-linear.T) > 1e-9 || hit.Shape != linear.Shape) {
			t.Fatalf("Ray %d: BVH found t=%f, linear search t=%f", i, hit.T, linear.T)
		}
	}
}

func TestBVH_Bounds(t *testing.T) {
	shapes := []Shape{
		NewSphere(core.NewVec3(-2, 0, 0), 1, nil),
		NewSphere(core.NewVec3(2, 0, 0), 1, nil),
	}
	bvh := NewBVH(shapes)

	if bvh.Center.Length() > 1e-12 {
		t.Errorf("Expected center at origin, got %v", bvh.Center)
	}
	expected := math.Sqrt(9 + 1 + 1)
	if math.Abs(bvh.Radius-expected) > 1e-9 {
		t.Errorf("Expected radius %f, got %f", expected, bvh.Radius)
	}
	if bvh.BoundingBox().Size().X != 6 {
		t.Errorf("Expected X extent 6, got %f", bvh.BoundingBox().Size().X)
	}
}
