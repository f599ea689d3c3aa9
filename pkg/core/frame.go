package core

import "math"

// Frame is an orthonormal basis. Local coordinates put N on the z axis.
type Frame struct {
	S, T, N Vec3
}

// NewFrame builds a frame around the given unit normal
func NewFrame(normal Vec3) Frame {
	// Find a vector perpendicular to normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	s := nt.Cross(normal).Normalize()
	t := normal.Cross(s)
	return Frame{S: s, T: t, N: normal}
}

// ToLocal expresses a world-space vector in this frame
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.S), v.Dot(f.T), v.Dot(f.N)}
}

// ToWorld expresses a local vector in world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.S.Multiply(v.X).Add(f.T.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// CosTheta returns the cosine between a local direction and the frame normal
func CosTheta(local Vec3) float64 {
	return local.Z
}
