package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line with an acceptance window. Near and PrecisionEpsilon
// bound the smallest accepted hit distance (both default to zero so a ray
// starting inside a volume still reports its zero-distance hit); Far bounds
// the largest, with Far <= 0 meaning unbounded.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3

	Near             float64
	Far              float64
	PrecisionEpsilon float64
}

// NewRay returns a ray with a normalized direction and an unbounded
// acceptance window.
func NewRay(origin, dir mgl64.Vec3) Ray {
	if dir.LenSqr() > Epsilon {
		dir = dir.Normalize()
	}
	return Ray{Origin: origin, Dir: dir}
}

// PointAt returns the point at parametric distance t along the ray.
func (r Ray) PointAt(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// MinDistance is the lower bound of the acceptance window.
func (r Ray) MinDistance() float64 {
	return math.Max(r.PrecisionEpsilon, r.Near)
}

// MaxDistance is the upper bound of the acceptance window.
func (r Ray) MaxDistance() float64 {
	if r.Far <= 0 {
		return math.Inf(1)
	}
	return r.Far
}

// IntersectAABB runs the slab test against an axis-aligned box. It returns
// the parametric entry distance and whether the ray hits at all; a ray
// whose origin lies inside the box hits at t = 0.
func (r Ray) IntersectAABB(box AABB) (float64, bool) {
	return slabTest(r.Origin, r.Dir, box.Center(), box.HalfSize(), identityAxes)
}

// IntersectOBB runs the slab test in the oriented box's own axes.
func (r Ray) IntersectOBB(o OBB) (float64, bool) {
	return slabTest(r.Origin, r.Dir, o.Center, o.HalfSize, o.Axes)
}

// slabTest intersects a ray with a box given by center, half-extents and
// axes, by clipping the ray against the pair of planes of each axis.
func slabTest(origin, dir, center, half mgl64.Vec3, axes [3]mgl64.Vec3) (float64, bool) {
	p := center.Sub(origin)
	tEnter := math.Inf(-1)
	tExit := math.Inf(1)

	for i := 0; i < 3; i++ {
		e := axes[i].Dot(p)   // distance from origin to slab center, along the axis
		f := axes[i].Dot(dir) // ray speed along the axis

		if math.Abs(f) < Epsilon {
			// Ray parallel to this slab: it must already lie between the planes.
			if -e-half[i] > 0 || -e+half[i] < 0 {
				return 0, false
			}
			continue
		}

		t1 := (e - half[i]) / f
		t2 := (e + half[i]) / f
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit || tExit < 0 {
			return 0, false
		}
	}

	if tEnter < 0 {
		// origin inside the box
		return 0, true
	}
	return tEnter, true
}

// IntersectTriangle intersects the ray with triangle (a, b, c) using the
// Möller–Trumbore algorithm, testing both faces. It returns the parametric
// hit distance and whether the triangle was hit in front of the origin.
func (r Ray) IntersectTriangle(a, b, c mgl64.Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)

	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < Epsilon {
		return 0, false // parallel or degenerate
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
