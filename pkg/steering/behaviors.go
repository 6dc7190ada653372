package steering

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/geometry"
)

// Deceleration selects how gently an arriving vehicle slows down. The
// values are divisors applied to the remaining distance, so a larger tier
// means a longer, softer approach.
type Deceleration int

const (
	DecelerationFast   Deceleration = 3
	DecelerationMiddle Deceleration = 4
	DecelerationSlow   Deceleration = 5
)

// FleeRange is the panic distance for Flee and Evade. A threat further
// away than this produces no steering response.
const FleeRange = 50.0

// Behavior computes one steering force against the current target of the
// owning Behaviors set.
type Behavior interface {
	Force(b *Behaviors) mgl64.Vec3
}

// SeekBehavior steers straight at the target's position.
type SeekBehavior struct{}

func (SeekBehavior) Force(b *Behaviors) mgl64.Vec3 {
	return b.Seek(b.target.Position())
}

// FleeBehavior steers directly away from the target while inside the
// panic range.
type FleeBehavior struct{}

func (FleeBehavior) Force(b *Behaviors) mgl64.Vec3 {
	return b.Flee(b.target.Position())
}

// ArriveBehavior steers at the target and decelerates to stop on it.
type ArriveBehavior struct {
	Tier Deceleration
}

func (a ArriveBehavior) Force(b *Behaviors) mgl64.Vec3 {
	return b.Arrive(b.target.Position(), a.Tier)
}

// PursuitBehavior intercepts the target at its predicted future position.
type PursuitBehavior struct{}

func (PursuitBehavior) Force(b *Behaviors) mgl64.Vec3 {
	return b.Pursuit(b.target)
}

// EvadeBehavior flees from the target's predicted future position.
type EvadeBehavior struct{}

func (EvadeBehavior) Force(b *Behaviors) mgl64.Vec3 {
	return b.Evade(b.target)
}

type weightedBehavior struct {
	behavior Behavior
	weight   float64
}

// Behaviors computes the combined steering force for one vehicle. Active
// behaviors are summed with their weights and the total is clamped to the
// vehicle's maximum force.
type Behaviors struct {
	vehicle *MovingEntity
	target  Target
	accum   mgl64.Vec3
	active  []weightedBehavior
}

// NewBehaviors returns a steering set for the vehicle with a single
// arrive behavior at the middle deceleration tier, the usual setup for a
// point-and-click agent. Use Add to compose more.
func NewBehaviors(vehicle *MovingEntity) *Behaviors {
	b := &Behaviors{vehicle: vehicle}
	b.Add(ArriveBehavior{Tier: DecelerationMiddle}, 1)
	return b
}

// Add appends a behavior with the given weight to the active set.
func (b *Behaviors) Add(behavior Behavior, weight float64) {
	b.active = append(b.active, weightedBehavior{behavior: behavior, weight: weight})
}

// Clear removes all active behaviors.
func (b *Behaviors) Clear() {
	b.active = b.active[:0]
}

// SetTarget sets the entity the active behaviors act against. A nil
// target disables steering until one is set.
func (b *Behaviors) SetTarget(t Target) {
	b.target = t
}

// Target returns the current steering target, nil if none is set.
func (b *Behaviors) Target() Target {
	return b.target
}

// Calculate sums the active behaviors against the current target and
// clamps the total to the vehicle's maximum force, preserving direction.
// With no target set it returns the zero vector. dt is reserved for
// behaviors that integrate over time; the current set is instantaneous.
func (b *Behaviors) Calculate(dt float64) mgl64.Vec3 {
	b.accum = mgl64.Vec3{}
	if b.target == nil {
		return mgl64.Vec3{}
	}
	for _, wb := range b.active {
		b.accum = b.accum.Add(wb.behavior.Force(b).Mul(wb.weight))
	}
	b.accum = geometry.Truncate(b.accum, b.vehicle.MaxForce)
	return b.accum
}

// Seek returns a force steering the vehicle straight at targetPos at
// maximum speed.
func (b *Behaviors) Seek(targetPos mgl64.Vec3) mgl64.Vec3 {
	to := targetPos.Sub(b.vehicle.Pos)
	if to.LenSqr() < geometry.Epsilon {
		return mgl64.Vec3{}.Sub(b.vehicle.Vel)
	}
	desired := to.Normalize().Mul(b.vehicle.MaxSpeed)
	return desired.Sub(b.vehicle.Vel)
}

// Flee returns a force steering the vehicle directly away from targetPos,
// or zero once the target is outside the panic range.
func (b *Behaviors) Flee(targetPos mgl64.Vec3) mgl64.Vec3 {
	away := b.vehicle.Pos.Sub(targetPos)
	if away.Len() >= FleeRange {
		return mgl64.Vec3{}
	}
	if away.LenSqr() < geometry.Epsilon {
		return mgl64.Vec3{}.Sub(b.vehicle.Vel)
	}
	desired := away.Normalize().Mul(b.vehicle.MaxSpeed)
	return desired.Sub(b.vehicle.Vel)
}

// Arrive steers at targetPos and decelerates so the vehicle comes to rest
// on it. Standing exactly on the target yields the zero vector.
func (b *Behaviors) Arrive(targetPos mgl64.Vec3, tier Deceleration) mgl64.Vec3 {
	to := targetPos.Sub(b.vehicle.Pos)
	dist := to.Len()
	if dist == 0 {
		return mgl64.Vec3{}
	}
	speed := dist / float64(tier)
	if speed > b.vehicle.MaxSpeed {
		speed = b.vehicle.MaxSpeed
	}
	desired := to.Mul(speed / dist)
	return desired.Sub(b.vehicle.Vel)
}

// Pursuit intercepts a moving evader. When the evader is roughly ahead
// and facing back at the vehicle it seeks the evader directly; otherwise
// it seeks the evader's position extrapolated by a lookahead proportional
// to the distance and inversely proportional to the closing speed.
func (b *Behaviors) Pursuit(evader Target) mgl64.Vec3 {
	toEvader := evader.Position().Sub(b.vehicle.Pos)
	forward := b.vehicle.Forward()

	if toEvader.Dot(forward) > 0 && forward.Dot(evader.Forward()) < 0.95 {
		return b.Seek(evader.Position())
	}

	lookAhead := toEvader.Len() / (b.vehicle.MaxSpeed + evader.Speed())
	predicted := evader.Position().Add(evader.Velocity().Mul(lookAhead))
	return b.Seek(predicted)
}

// Evade flees from a pursuer's predicted future position. A pursuer
// further away than the panic range is ignored.
func (b *Behaviors) Evade(pursuer Target) mgl64.Vec3 {
	toPursuer := pursuer.Position().Sub(b.vehicle.Pos)
	if toPursuer.Len() > FleeRange {
		return mgl64.Vec3{}
	}

	lookAhead := toPursuer.Len() / (b.vehicle.MaxSpeed + pursuer.Speed())
	predicted := pursuer.Position().Add(pursuer.Velocity().Mul(lookAhead))
	return b.Flee(predicted)
}
