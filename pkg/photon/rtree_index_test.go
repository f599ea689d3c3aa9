package photon

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
)

func TestRTreeIndex_BuildBarrier(t *testing.T) {
	idx := NewRTreeIndex(4)

	if _, err := idx.RangeQuery(core.Vec3{}, 1); !errors.Is(err, ErrIndexNotBuilt) {
		t.Errorf("Expected ErrIndexNotBuilt before Build, got %v", err)
	}
	if _, err := idx.Insert(Photon{}); err != nil {
		t.Fatal(err)
	}
	if err := idx.Build(); err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Insert(Photon{}); !errors.Is(err, ErrIndexBuilt) {
		t.Errorf("Expected ErrIndexBuilt after Build, got %v", err)
	}
	if err := idx.Build(); !errors.Is(err, ErrIndexBuilt) {
		t.Errorf("Expected ErrIndexBuilt on second Build, got %v", err)
	}
}

func TestRTreeIndex_EmptyQuery(t *testing.T) {
	idx := NewRTreeIndex(0)
	if err := idx.Build(); err != nil {
		t.Fatal(err)
	}
	handles, err := idx.RangeQuery(core.Vec3{}, 10)
	if err != nil || len(handles) != 0 {
		t.Errorf("Expected no photons, got %v (err %v)", handles, err)
	}
}

func TestRTreeIndex_RetrievePreservesValues(t *testing.T) {
	idx := NewRTreeIndex(2)
	want := Photon{
		Position:  core.NewVec3(1, 2, 3),
		Direction: core.NewVec3(0, 1, 0),
		Power:     core.NewVec3(0.25, 0.5, 0.75),
	}
	h, _ := idx.Insert(want)
	idx.Insert(Photon{Position: core.NewVec3(5, 5, 5)})
	if err := idx.Build(); err != nil {
		t.Fatal(err)
	}

	handles, err := idx.RangeQuery(core.NewVec3(1, 2, 3), 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if len(handles) != 1 || handles[0] != h {
		t.Fatalf("Expected only handle %d, got %v", h, handles)
	}
	if got := idx.Retrieve(h); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestRTreeIndex_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	idx := NewRTreeIndex(2000)
	var positions []core.Vec3
	for i := 0; i < 2000; i++ {
		p := core.NewVec3(random.Float64()*10, random.Float64()*10, random.Float64()*10)
		positions = append(positions, p)
		idx.Insert(Photon{Position: p, Power: core.Splat(1)})
	}
	if err := idx.Build(); err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 2000 {
		t.Fatalf("Expected 2000 photons, got %d", idx.Len())
	}

	tests := []struct {
		name   string
		center core.Vec3
		radius float64
	}{
		{"small radius", core.NewVec3(5, 5, 5), 0.5},
		{"large radius", core.NewVec3(2, 3, 4), 3},
		{"corner", core.NewVec3(0, 0, 0), 1.5},
		{"outside", core.NewVec3(-5, -5, -5), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var expected []Handle
			for i, p := range positions {
				if p.Subtract(tt.center).Length() <= tt.radius {
					expected = append(expected, Handle(i))
				}
			}

			handles, err := idx.RangeQuery(tt.center, tt.radius)
			if err != nil {
				t.Fatal(err)
			}
			if len(handles) != len(expected) {
				t.Fatalf("Expected %d photons, got %d", len(expected), len(handles))
			}
			for i := range handles {
				if handles[i] != expected[i] {
					t.Fatalf("Handle %d: expected %d, got %d", i, expected[i], handles[i])
				}
			}
		})
	}
}
