package math3d

import "math"

// Vec4 is a homogeneous point, typically in clip space.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point promotes v to a homogeneous point with w = 1.
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Vec3 drops the W component.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// DivideW divides x, y and z by w when |w| exceeds eps. Otherwise the
// components are returned untouched.
func (v Vec4) DivideW(eps float64) Vec3 {
	if math.Abs(v.W) <= eps {
		return v.Vec3()
	}
	inv := 1 / v.W
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}
