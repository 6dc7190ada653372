package steering

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/geometry"
)

// Target is anything a behavior can chase or avoid. MovingEntity satisfies
// it, but so can scripted quarry points or other scene objects.
type Target interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	Forward() mgl64.Vec3
	Speed() float64
}

// MovingEntity holds the kinematic state of one agent: position, velocity,
// orientation, and the physical limits used during integration.
type MovingEntity struct {
	Pos    mgl64.Vec3
	Vel    mgl64.Vec3
	Orient mgl64.Quat

	Mass        float64
	MaxSpeed    float64
	MaxForce    float64
	MaxTurnRate float64
}

// NewMovingEntity returns an entity at the given position facing +Z.
// A non-positive mass is replaced by 1 so integration stays finite.
func NewMovingEntity(pos mgl64.Vec3, mass, maxSpeed, maxForce float64) *MovingEntity {
	if mass <= 0 {
		mass = 1
	}
	return &MovingEntity{
		Pos:      pos,
		Orient:   mgl64.QuatIdent(),
		Mass:     mass,
		MaxSpeed: maxSpeed,
		MaxForce: maxForce,
	}
}

// Position returns the entity's current position.
func (e *MovingEntity) Position() mgl64.Vec3 { return e.Pos }

// Velocity returns the entity's current velocity.
func (e *MovingEntity) Velocity() mgl64.Vec3 { return e.Vel }

// Speed returns the magnitude of the current velocity.
func (e *MovingEntity) Speed() float64 { return e.Vel.Len() }

// Forward returns the entity's facing direction, the local +Z axis rotated
// by the current orientation.
func (e *MovingEntity) Forward() mgl64.Vec3 {
	return e.Orient.Rotate(mgl64.Vec3{0, 0, 1})
}

// SetHeading re-derives the orientation from a direction vector. A zero
// direction leaves the orientation unchanged.
func (e *MovingEntity) SetHeading(d mgl64.Vec3) {
	if d.LenSqr() < geometry.Epsilon {
		return
	}
	e.Orient = geometry.QuatFromDirection(d)
}
