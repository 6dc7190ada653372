package geometry

import "github.com/go-gl/mathgl/mgl64"

// AABB is an axis-aligned bounding box given by its minimum and maximum
// corners.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// AABBFromCenter builds an AABB from a center point and half-extents.
func AABBFromCenter(center, half mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// AABBFromPoints returns the smallest AABB enclosing all points.
// An empty point list yields the zero box.
func AABBFromPoints(points []mgl64.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < box.Min[i] {
				box.Min[i] = p[i]
			}
			if p[i] > box.Max[i] {
				box.Max[i] = p[i]
			}
		}
	}
	return box
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// HalfSize returns the box half-extents along each axis.
func (a AABB) HalfSize() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}

// Size returns the full extent of the box along each axis.
func (a AABB) Size() mgl64.Vec3 {
	return a.Max.Sub(a.Min)
}

// Overlaps reports whether the two boxes intersect. Touching faces count
// as an overlap.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// ContainsPoint reports whether the point lies inside or on the box.
func (a AABB) ContainsPoint(p mgl64.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}

// Transformed returns the axis-aligned box enclosing this box after the
// affine transform m (Arvo's method: accumulate the signed extremes of the
// rotated extents per axis, on top of the translation).
func (a AABB) Transformed(m mgl64.Mat4) AABB {
	var out AABB
	for i := 0; i < 3; i++ {
		out.Min[i] = m.At(i, 3)
		out.Max[i] = m.At(i, 3)
		for j := 0; j < 3; j++ {
			e := m.At(i, j) * a.Min[j]
			f := m.At(i, j) * a.Max[j]
			if e < f {
				out.Min[i] += e
				out.Max[i] += f
			} else {
				out.Min[i] += f
				out.Max[i] += e
			}
		}
	}
	return out
}
