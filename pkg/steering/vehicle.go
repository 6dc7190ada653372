package steering

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/geometry"
)

// headingThreshold is the squared speed below which the vehicle is
// considered stationary and keeps its previous orientation.
const headingThreshold = 1e-8

// Vehicle is a moving entity driven by a steering force. Each update
// integrates the force into velocity and position and re-derives the
// orientation from motion, optionally through a velocity smoother.
type Vehicle struct {
	MovingEntity

	Steering *Behaviors

	SmoothingOn bool
	smoother    *Smoother
	smoothVel   mgl64.Vec3
}

// NewVehicle returns a vehicle at the given position with a default
// steering set and a smoother of the given capacity.
func NewVehicle(pos mgl64.Vec3, mass, maxSpeed, maxForce float64, smootherCapacity int) *Vehicle {
	v := &Vehicle{
		MovingEntity: *NewMovingEntity(pos, mass, maxSpeed, maxForce),
		smoother:     NewSmoother(smootherCapacity),
	}
	v.Steering = NewBehaviors(&v.MovingEntity)
	return v
}

// SmoothedVelocity returns the last smoothed velocity sample.
func (v *Vehicle) SmoothedVelocity() mgl64.Vec3 {
	return v.smoothVel
}

// Update advances the vehicle by dt seconds: compute the steering force,
// integrate acceleration into velocity (clamped to MaxSpeed), advance the
// position and re-derive the heading from the (optionally smoothed)
// velocity. A near-zero velocity leaves the orientation untouched.
func (v *Vehicle) Update(dt float64) {
	force := v.Steering.Calculate(dt)
	accel := force.Mul(1 / v.Mass)

	v.Vel = geometry.Truncate(v.Vel.Add(accel.Mul(dt)), v.MaxSpeed)
	v.Pos = v.Pos.Add(v.Vel.Mul(dt))

	if v.Vel.LenSqr() > headingThreshold {
		heading := v.Vel
		if v.SmoothingOn {
			v.smoothVel = v.smoother.Update(v.Vel)
			heading = v.smoothVel
		}
		v.SetHeading(heading)
	}
}
