package geometry

import "github.com/go-gl/mathgl/mgl64"

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// SphereFromAABB returns the smallest sphere enclosing the box.
func SphereFromAABB(box AABB) Sphere {
	return Sphere{
		Center: box.Center(),
		Radius: box.HalfSize().Len(),
	}
}

// Transformed returns the sphere under the affine transform m. The radius
// grows by the largest per-axis scale factor, which keeps the result
// conservative under non-uniform scaling.
func (s Sphere) Transformed(m mgl64.Mat4) Sphere {
	return Sphere{
		Center: transformPoint(m, s.Center),
		Radius: s.Radius * maxScale(m),
	}
}

// ContainsPoint reports whether the point lies inside or on the sphere.
func (s Sphere) ContainsPoint(p mgl64.Vec3) bool {
	return p.Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}
