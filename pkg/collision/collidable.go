package collision

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/geometry"
)

// CollisionType selects the bounding volume answering box intersection
// queries.
type CollisionType int

const (
	CollisionAABB CollisionType = iota
	CollisionOBB
)

func (t CollisionType) String() string {
	switch t {
	case CollisionAABB:
		return "aabb"
	case CollisionOBB:
		return "obb"
	default:
		return fmt.Sprintf("CollisionType(%d)", int(t))
	}
}

// RaycastPrecision selects the representation answering ray queries,
// trading accuracy against cost.
type RaycastPrecision int

const (
	RaycastAABB RaycastPrecision = iota
	RaycastOBB
	RaycastFace
)

func (p RaycastPrecision) String() string {
	switch p {
	case RaycastAABB:
		return "aabb"
	case RaycastOBB:
		return "obb"
	case RaycastFace:
		return "face"
	default:
		return fmt.Sprintf("RaycastPrecision(%d)", int(p))
	}
}

// ConfigurationError reports a collision type or raycast precision outside
// its enumerated set. It indicates a setup defect, not a runtime
// condition, so callers should treat it as fatal.
type ConfigurationError struct {
	Field string
	Value int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("collision: invalid %s %d", e.Field, e.Value)
}

// Hit is one intersection record. Box-level hits are synthetic: they have
// no face, so FaceIndex is -1 and Normal is zero.
type Hit struct {
	Distance  float64
	Point     mgl64.Vec3
	Normal    mgl64.Vec3
	FaceIndex int
	Object    *Collidable
}

// Collidable wraps a mesh with a collision-type and raycast-precision
// policy and owns the cached bounding volumes queries refresh from the
// mesh's current world transform. The caches are private scratch state;
// concurrent queries on one Collidable must be serialized by the caller.
type Collidable struct {
	mesh      Mesh
	collision CollisionType
	precision RaycastPrecision

	sphere  geometry.Sphere
	aabb    geometry.AABB
	obb     geometry.OBB
	scratch []Hit
}

// NewCollidable wraps mesh with the given policies. Both enums are
// validated once here and never revalidated.
func NewCollidable(mesh Mesh, collision CollisionType, precision RaycastPrecision) (*Collidable, error) {
	switch collision {
	case CollisionAABB, CollisionOBB:
	default:
		return nil, &ConfigurationError{Field: "collision type", Value: int(collision)}
	}
	switch precision {
	case RaycastAABB, RaycastOBB, RaycastFace:
	default:
		return nil, &ConfigurationError{Field: "raycast precision", Value: int(precision)}
	}
	c := &Collidable{mesh: mesh, collision: collision, precision: precision}
	c.Update()
	return c, nil
}

// Mesh returns the wrapped mesh.
func (c *Collidable) Mesh() Mesh { return c.mesh }

// CollisionType returns the configured box intersection policy.
func (c *Collidable) CollisionType() CollisionType { return c.collision }

// RaycastPrecision returns the configured ray query policy.
func (c *Collidable) RaycastPrecision() RaycastPrecision { return c.precision }

// BoundingSphere returns the world-space sphere as of the last Update.
func (c *Collidable) BoundingSphere() geometry.Sphere { return c.sphere }

// Update refreshes the cached bounding sphere from the mesh's current
// world transform. It is cheap and meant to run every frame; the box
// caches are refreshed lazily inside queries instead.
func (c *Collidable) Update() {
	c.sphere = c.mesh.LocalBoundingSphere().Transformed(c.mesh.WorldMatrix())
}

// WorldBounds returns the mesh bounds under the current world transform,
// without touching the query caches.
func (c *Collidable) WorldBounds() geometry.AABB {
	return c.mesh.LocalBounds().Transformed(c.mesh.WorldMatrix())
}

// IsIntersection reports whether the object's configured bounding volume
// overlaps the axis-aligned query box.
func (c *Collidable) IsIntersection(query geometry.AABB) (bool, error) {
	switch c.collision {
	case CollisionAABB:
		c.aabb = c.mesh.LocalBounds().Transformed(c.mesh.WorldMatrix())
		return c.aabb.Overlaps(query), nil
	case CollisionOBB:
		c.obb = geometry.OBBFromAABB(c.mesh.LocalBounds(), c.mesh.WorldMatrix())
		return c.obb.IntersectsAABB(query), nil
	default:
		return false, &ConfigurationError{Field: "collision type", Value: int(c.collision)}
	}
}

// Raycast intersects the ray with the object at the configured precision
// and appends the resulting hits to out. Every appended hit is tagged
// with this Collidable, never the raw mesh.
func (c *Collidable) Raycast(ray geometry.Ray, out *[]Hit) error {
	switch c.precision {
	case RaycastFace:
		c.scratch = c.mesh.RaycastTriangles(ray, c.scratch[:0])
		for i := range c.scratch {
			c.scratch[i].Object = c
			*out = append(*out, c.scratch[i])
		}
		c.scratch = c.scratch[:0]
		return nil

	case RaycastOBB:
		c.obb = geometry.OBBFromAABB(c.mesh.LocalBounds(), c.mesh.WorldMatrix())
		t, ok := ray.IntersectOBB(c.obb)
		c.appendBoxHit(ray, t, ok, out)
		return nil

	case RaycastAABB:
		c.aabb = c.mesh.LocalBounds().Transformed(c.mesh.WorldMatrix())
		t, ok := ray.IntersectAABB(c.aabb)
		c.appendBoxHit(ray, t, ok, out)
		return nil

	default:
		return &ConfigurationError{Field: "raycast precision", Value: int(c.precision)}
	}
}

// appendBoxHit turns a slab test result into one synthetic hit record,
// subject to the ray's acceptance window.
func (c *Collidable) appendBoxHit(ray geometry.Ray, t float64, ok bool, out *[]Hit) {
	if !ok {
		return
	}
	point := ray.PointAt(t)
	dist := point.Sub(ray.Origin).Len()
	if dist < ray.MinDistance() || dist > ray.MaxDistance() {
		return
	}
	*out = append(*out, Hit{
		Distance:  dist,
		Point:     point,
		FaceIndex: -1,
		Object:    c,
	})
}
