package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/geometry"
)

// Mesh is the geometry a Collidable wraps: precomputed local-space bounds
// plus a world transform kept current by the scene layer, and a native
// per-triangle raycast for the exact-precision path.
type Mesh interface {
	LocalBounds() geometry.AABB
	LocalBoundingSphere() geometry.Sphere
	WorldMatrix() mgl64.Mat4
	RaycastTriangles(ray geometry.Ray, hits []Hit) []Hit
}

// TriangleMesh is an indexed triangle mesh with a world transform.
type TriangleMesh struct {
	vertices []mgl64.Vec3
	faces    [][3]int

	local       geometry.AABB
	localSphere geometry.Sphere
	world       mgl64.Mat4
}

// NewTriangleMesh builds a mesh from vertices and triangle indices and
// precomputes its local bounds. The world transform starts as identity.
func NewTriangleMesh(vertices []mgl64.Vec3, faces [][3]int) *TriangleMesh {
	local := geometry.AABBFromPoints(vertices)
	return &TriangleMesh{
		vertices:    vertices,
		faces:       faces,
		local:       local,
		localSphere: geometry.SphereFromAABB(local),
		world:       mgl64.Ident4(),
	}
}

// NewBoxMesh returns an axis-aligned box mesh centered on the local
// origin with the given full extents, triangulated into 12 faces.
func NewBoxMesh(size mgl64.Vec3) *TriangleMesh {
	h := size.Mul(0.5)
	v := []mgl64.Vec3{
		{-h.X(), -h.Y(), -h.Z()},
		{h.X(), -h.Y(), -h.Z()},
		{h.X(), h.Y(), -h.Z()},
		{-h.X(), h.Y(), -h.Z()},
		{-h.X(), -h.Y(), h.Z()},
		{h.X(), -h.Y(), h.Z()},
		{h.X(), h.Y(), h.Z()},
		{-h.X(), h.Y(), h.Z()},
	}
	f := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // back  (-Z)
		{4, 5, 6}, {4, 6, 7}, // front (+Z)
		{0, 4, 7}, {0, 7, 3}, // left
		{1, 2, 6}, {1, 6, 5}, // right
		{3, 7, 6}, {3, 6, 2}, // top
		{0, 1, 5}, {0, 5, 4}, // bottom
	}
	return NewTriangleMesh(v, f)
}

// LocalBounds returns the local-space bounding box.
func (m *TriangleMesh) LocalBounds() geometry.AABB {
	return m.local
}

// LocalBoundingSphere returns the local-space bounding sphere.
func (m *TriangleMesh) LocalBoundingSphere() geometry.Sphere {
	return m.localSphere
}

// WorldMatrix returns the current world transform.
func (m *TriangleMesh) WorldMatrix() mgl64.Mat4 {
	return m.world
}

// SetWorldMatrix replaces the world transform. Bounding volumes derived
// from the mesh are refreshed by their owners on the next query.
func (m *TriangleMesh) SetWorldMatrix(world mgl64.Mat4) {
	m.world = world
}

// RaycastTriangles intersects the ray with every triangle in world space
// and appends one hit per intersected face to hits, tagged with the face
// index and the geometric face normal. Hits outside the ray's acceptance
// window are dropped.
func (m *TriangleMesh) RaycastTriangles(ray geometry.Ray, hits []Hit) []Hit {
	minDist, maxDist := ray.MinDistance(), ray.MaxDistance()
	for i, face := range m.faces {
		a := transformPoint(m.world, m.vertices[face[0]])
		b := transformPoint(m.world, m.vertices[face[1]])
		c := transformPoint(m.world, m.vertices[face[2]])

		t, ok := ray.IntersectTriangle(a, b, c)
		if !ok || t < minDist || t > maxDist {
			continue
		}

		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.LenSqr() > geometry.Epsilon {
			normal = normal.Normalize()
		}
		hits = append(hits, Hit{
			Distance:  t,
			Point:     ray.PointAt(t),
			Normal:    normal,
			FaceIndex: i,
		})
	}
	return hits
}

func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
