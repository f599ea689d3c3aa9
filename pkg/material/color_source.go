package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates
	Evaluate(uv core.Vec2) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV
func (s *SolidColor) Evaluate(uv core.Vec2) core.Vec3 {
	return s.Color
}

// Checkerboard alternates two colors over a grid of Scale×Scale checks in UV space
type Checkerboard struct {
	Color1, Color2 core.Vec3
	Scale          float64
}

// NewCheckerboard creates a procedural checkerboard pattern
func NewCheckerboard(color1, color2 core.Vec3, scale float64) *Checkerboard {
	return &Checkerboard{Color1: color1, Color2: color2, Scale: scale}
}

// Evaluate picks the check containing uv
func (c *Checkerboard) Evaluate(uv core.Vec2) core.Vec3 {
	checkX := int(math.Floor(uv.X * c.Scale))
	checkY := int(math.Floor(uv.Y * c.Scale))
	if (checkX+checkY)%2 == 0 {
		return c.Color1
	}
	return c.Color2
}
