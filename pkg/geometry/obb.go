package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OBB is an oriented bounding box: a center, half-extents along each local
// axis, and three mutually orthogonal unit axes.
type OBB struct {
	Center   mgl64.Vec3
	HalfSize mgl64.Vec3
	Axes     [3]mgl64.Vec3
}

// identityAxes are the world axes; an AABB is an OBB with these.
var identityAxes = [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// OBBFromAABB derives the oriented box of a local-space bounding box under
// the world transform m: the axes are the normalized basis columns of m,
// the half-extents are the local half-extents scaled by the column lengths
// and the center is the transformed local center.
func OBBFromAABB(local AABB, m mgl64.Mat4) OBB {
	half := local.HalfSize()
	o := OBB{Center: transformPoint(m, local.Center())}
	for i := 0; i < 3; i++ {
		col := m.Col(i).Vec3()
		scale := col.Len()
		if scale < Epsilon {
			// degenerate scale, fall back to the world axis
			o.Axes[i] = identityAxes[i]
			o.HalfSize[i] = 0
			continue
		}
		o.Axes[i] = col.Mul(1 / scale)
		o.HalfSize[i] = half[i] * scale
	}
	return o
}

// OBBFromAABBIdentity wraps an axis-aligned box as an OBB with world axes.
func OBBFromAABBIdentity(box AABB) OBB {
	return OBB{Center: box.Center(), HalfSize: box.HalfSize(), Axes: identityAxes}
}

// IntersectsAABB runs the separating-axis test between this box and an
// axis-aligned box (treated as an OBB with identity axes).
func (o OBB) IntersectsAABB(box AABB) bool {
	return o.IntersectsOBB(OBBFromAABBIdentity(box))
}

// IntersectsOBB is the 15-axis separating-axis test between two oriented
// boxes: the 3 axes of each box plus the 9 pairwise cross products. The
// boxes intersect iff no candidate axis separates their projections.
// Standard formulation after Ericson, Real-Time Collision Detection §4.4.1;
// Epsilon is folded into the absolute rotation terms so near-parallel edge
// pairs cannot produce an arithmetically null separating axis.
func (o OBB) IntersectsOBB(other OBB) bool {
	var rot, absRot [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot[i][j] = o.Axes[i].Dot(other.Axes[j])
			absRot[i][j] = math.Abs(rot[i][j]) + Epsilon
		}
	}

	// Translation between centers, expressed in o's frame.
	d := other.Center.Sub(o.Center)
	t := mgl64.Vec3{d.Dot(o.Axes[0]), d.Dot(o.Axes[1]), d.Dot(o.Axes[2])}

	// Axes of o.
	for i := 0; i < 3; i++ {
		ra := o.HalfSize[i]
		rb := other.HalfSize[0]*absRot[i][0] + other.HalfSize[1]*absRot[i][1] + other.HalfSize[2]*absRot[i][2]
		if math.Abs(t[i]) > ra+rb {
			return false
		}
	}

	// Axes of other.
	for j := 0; j < 3; j++ {
		ra := o.HalfSize[0]*absRot[0][j] + o.HalfSize[1]*absRot[1][j] + o.HalfSize[2]*absRot[2][j]
		rb := other.HalfSize[j]
		if math.Abs(t[0]*rot[0][j]+t[1]*rot[1][j]+t[2]*rot[2][j]) > ra+rb {
			return false
		}
	}

	// Cross products of each axis pair.
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			ra := o.HalfSize[i1]*absRot[i2][j] + o.HalfSize[i2]*absRot[i1][j]
			rb := other.HalfSize[j1]*absRot[i][j2] + other.HalfSize[j2]*absRot[i][j1]
			if math.Abs(t[i2]*rot[i1][j]-t[i1]*rot[i2][j]) > ra+rb {
				return false
			}
		}
	}

	return true
}

// ContainsPoint reports whether the point lies inside or on the box.
func (o OBB) ContainsPoint(p mgl64.Vec3) bool {
	d := p.Sub(o.Center)
	for i := 0; i < 3; i++ {
		if math.Abs(d.Dot(o.Axes[i])) > o.HalfSize[i] {
			return false
		}
	}
	return true
}
