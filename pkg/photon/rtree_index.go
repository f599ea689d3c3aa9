package photon

import (
	"fmt"
	"slices"

	"github.com/dhconnelly/rtreego"

	"github.com/df07/go-lighttransport/pkg/core"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	pointTolerance   = 1e-9
)

// entry adapts a stored photon to rtreego.Spatial
type entry struct {
	handle Handle
	point  rtreego.Point
}

func (e *entry) Bounds() rtreego.Rect {
	return e.point.ToRect(pointTolerance)
}

// RTreeIndex is an Index backed by an R-tree that is bulk loaded on Build
type RTreeIndex struct {
	photons []Photon
	tree    *rtreego.Rtree
}

// NewRTreeIndex creates an empty index with room for capacity photons
func NewRTreeIndex(capacity int) *RTreeIndex {
	return &RTreeIndex{photons: make([]Photon, 0, capacity)}
}

// Insert stores a photon and returns its handle
func (idx *RTreeIndex) Insert(p Photon) (Handle, error) {
	if idx.tree != nil {
		return 0, ErrIndexBuilt
	}
	idx.photons = append(idx.photons, p)
	return Handle(len(idx.photons) - 1), nil
}

// Build finalizes the index. No inserts are accepted afterwards.
func (idx *RTreeIndex) Build() error {
	if idx.tree != nil {
		return ErrIndexBuilt
	}
	objs := make([]rtreego.Spatial, len(idx.photons))
	for i, p := range idx.photons {
		objs[i] = &entry{handle: Handle(i), point: toPoint(p.Position)}
	}
	idx.tree = rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren, objs...)
	return nil
}

// RangeQuery returns the handles of all photons within radius of center, in ascending order
func (idx *RTreeIndex) RangeQuery(center core.Vec3, radius float64) ([]Handle, error) {
	if idx.tree == nil {
		return nil, ErrIndexNotBuilt
	}
	if radius <= 0 || idx.tree.Size() == 0 {
		return nil, nil
	}

	side := 2 * radius
	box, err := rtreego.NewRect(toPoint(center.Subtract(core.Splat(radius))), []float64{side, side, side})
	if err != nil {
		return nil, fmt.Errorf("photon: query box: %w", err)
	}

	radiusSquared := radius * radius
	var handles []Handle
	for _, obj := range idx.tree.SearchIntersect(box) {
		e := obj.(*entry)
		if idx.photons[e.handle].Position.Subtract(center).LengthSquared() <= radiusSquared {
			handles = append(handles, e.handle)
		}
	}
	slices.Sort(handles)
	return handles, nil
}

// Retrieve returns the photon stored under h
func (idx *RTreeIndex) Retrieve(h Handle) Photon {
	return idx.photons[h]
}

// Len returns the number of stored photons
func (idx *RTreeIndex) Len() int {
	return len(idx.photons)
}

func toPoint(v core.Vec3) rtreego.Point {
	return rtreego.Point{v.X, v.Y, v.Z}
}
