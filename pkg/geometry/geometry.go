// Package geometry provides the 3D primitives used by the steering and
// collision packages: axis-aligned and oriented bounding boxes, bounding
// spheres, rays and the orientation-basis helpers.
//
// All types build on mgl64 vectors and matrices. Values are small structs
// passed by value; methods never mutate their receiver.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the precision constant for float64 comparisons.
const Epsilon = 1e-9

// WorldUp is the global up axis used for orientation derivation.
var WorldUp = mgl64.Vec3{0, 1, 0}

// defaultFront is substituted when a direction has no usable length.
var defaultFront = mgl64.Vec3{0, 0, 1}

// BasisFromDirection builds an orthonormal basis (right, up, front) whose
// front axis points along d. A zero-length d yields the default front axis.
// When d is parallel to WorldUp the front axis is perturbed by a small
// epsilon on X before the right axis is recomputed, so the result is
// deterministic and free of NaNs even in the gimbal-degenerate case.
func BasisFromDirection(d mgl64.Vec3) (right, up, front mgl64.Vec3) {
	front = defaultFront
	if d.LenSqr() > Epsilon {
		front = d.Normalize()
	}

	right = front.Cross(WorldUp)
	if right.LenSqr() < Epsilon {
		// front is (anti)parallel to the world up axis
		front = front.Add(mgl64.Vec3{1e-4, 0, 0}).Normalize()
		right = front.Cross(WorldUp)
	}
	right = right.Normalize()
	up = front.Cross(right)
	return right, up, front
}

// QuatFromDirection converts a direction vector into a rotation whose
// forward axis (+Z) points along that direction, using BasisFromDirection.
func QuatFromDirection(d mgl64.Vec3) mgl64.Quat {
	r, u, f := BasisFromDirection(d)
	// Column-major rotation matrix with columns (right, up, front).
	m := mgl64.Mat4{
		r[0], r[1], r[2], 0,
		u[0], u[1], u[2], 0,
		f[0], f[1], f[2], 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize()
}

// Truncate limits the magnitude of v to max, preserving its direction.
func Truncate(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if v.LenSqr() > max*max {
		return v.Normalize().Mul(max)
	}
	return v
}

// transformPoint applies the full affine transform m to a point.
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// matrixScale returns the length of each of the three basis columns of m,
// i.e. the scale factor the matrix applies along each local axis.
func matrixScale(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{
		m.Col(0).Vec3().Len(),
		m.Col(1).Vec3().Len(),
		m.Col(2).Vec3().Len(),
	}
}

func maxScale(m mgl64.Mat4) float64 {
	s := matrixScale(m)
	return math.Max(s[0], math.Max(s[1], s[2]))
}
