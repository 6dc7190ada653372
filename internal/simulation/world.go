package simulation

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/collision"
	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/steering"
)

// World owns the agents and obstacles of one scene and advances them
// synchronously, one Step per tick.
type World struct {
	cfg *Config
	log zerolog.Logger

	Vehicles  []*steering.Vehicle
	Quarry    *steering.MovingEntity
	Obstacles []*collision.Collidable

	elapsed float64
	hits    []collision.Hit
}

// NewWorld builds a scene from the config: a quarry entity the vehicles
// chase, a ring of vehicles around it and the configured box obstacles.
// The first vehicle pursues the quarry, the second evades the first, the
// rest arrive on the quarry directly.
func NewWorld(cfg *Config, log zerolog.Logger) (*World, error) {
	w := &World{
		cfg:    cfg,
		log:    log,
		Quarry: steering.NewMovingEntity(mgl64.Vec3{}, 1, cfg.QuarrySpeed*cfg.QuarryOrbitAmp, 0),
	}

	tier := steering.Deceleration(cfg.Deceleration)
	switch tier {
	case steering.DecelerationFast, steering.DecelerationMiddle, steering.DecelerationSlow:
	default:
		tier = steering.DecelerationMiddle
	}

	ringRadius := cfg.WorldExtent * 0.7
	for i := 0; i < cfg.NumVehicles; i++ {
		angle := 2 * math.Pi * float64(i) / float64(cfg.NumVehicles)
		pos := mgl64.Vec3{ringRadius * math.Cos(angle), 0, ringRadius * math.Sin(angle)}
		v := steering.NewVehicle(pos, cfg.VehicleMass, cfg.MaxSpeed, cfg.MaxForce, cfg.SmootherSamples)
		v.MaxTurnRate = cfg.MaxTurnRate
		v.SmoothingOn = cfg.SmoothingOn
		v.Steering.Clear()
		v.Steering.Add(steering.ArriveBehavior{Tier: tier}, 1)
		v.Steering.SetTarget(w.Quarry)
		w.Vehicles = append(w.Vehicles, v)
	}

	if len(w.Vehicles) > 0 {
		w.Vehicles[0].Steering.Clear()
		w.Vehicles[0].Steering.Add(steering.PursuitBehavior{}, 1)
	}
	if len(w.Vehicles) > 1 {
		w.Vehicles[1].Steering.Clear()
		w.Vehicles[1].Steering.Add(steering.EvadeBehavior{}, 1)
		w.Vehicles[1].Steering.SetTarget(&w.Vehicles[0].MovingEntity)
	}

	for i, oc := range cfg.Obstacles {
		obstacle, err := buildObstacle(oc)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		w.Obstacles = append(w.Obstacles, obstacle)
	}

	log.Info().
		Int("vehicles", len(w.Vehicles)).
		Int("obstacles", len(w.Obstacles)).
		Msg("world created")
	return w, nil
}

func buildObstacle(oc ObstacleConfig) (*collision.Collidable, error) {
	ct, err := ParseCollisionType(oc.CollisionType)
	if err != nil {
		return nil, err
	}
	rp, err := ParseRaycastPrecision(oc.RaycastPrecision)
	if err != nil {
		return nil, err
	}

	mesh := collision.NewBoxMesh(mgl64.Vec3{oc.Size[0], oc.Size[1], oc.Size[2]})
	world := mgl64.Translate3D(oc.Position[0], oc.Position[1], oc.Position[2]).
		Mul4(mgl64.HomogRotate3DY(oc.RotationY))
	mesh.SetWorldMatrix(world)

	return collision.NewCollidable(mesh, ct, rp)
}

// SetDestination parks the quarry at p; useful when wandering is off and
// the quarry acts as a click destination marker.
func (w *World) SetDestination(p mgl64.Vec3) {
	w.Quarry.Pos = p
	w.Quarry.Vel = mgl64.Vec3{}
}

// Step advances the world by dt seconds: move the quarry along its path,
// update every vehicle with movement blocked by obstacle intersection,
// then refresh the obstacles' per-frame caches.
func (w *World) Step(dt float64) error {
	w.elapsed += dt

	if w.cfg.QuarryWanders {
		w.moveQuarry()
	}

	half := mgl64.Vec3{w.cfg.VehicleRadius, w.cfg.VehicleRadius, w.cfg.VehicleRadius}
	for i, v := range w.Vehicles {
		prevPos := v.Pos
		v.Update(dt)

		query := geometry.AABBFromCenter(v.Pos, half)
		for _, obstacle := range w.Obstacles {
			blocked, err := obstacle.IsIntersection(query)
			if err != nil {
				return err
			}
			if blocked {
				v.Pos = prevPos
				v.Vel = mgl64.Vec3{}
				w.log.Debug().Int("vehicle", i).Msg("movement blocked by obstacle")
				break
			}
		}
	}

	for _, obstacle := range w.Obstacles {
		obstacle.Update()
	}
	return nil
}

// moveQuarry drives the quarry along a figure-eight path on the ground
// plane, with its velocity set to the analytic derivative so pursuit can
// extrapolate it.
func (w *World) moveQuarry() {
	amp := w.cfg.QuarryOrbitAmp
	t := w.elapsed * w.cfg.QuarrySpeed

	w.Quarry.Pos = mgl64.Vec3{amp * math.Sin(t), 0, amp * math.Sin(2*t) * 0.5}
	w.Quarry.Vel = mgl64.Vec3{
		amp * math.Cos(t) * w.cfg.QuarrySpeed,
		0,
		amp * math.Cos(2*t) * w.cfg.QuarrySpeed,
	}
	w.Quarry.SetHeading(w.Quarry.Vel)
}

// VehicleState is one vehicle's renderable state.
type VehicleState struct {
	Pos     mgl64.Vec3
	Forward mgl64.Vec3
}

// Snapshot is the render-facing view of the world for one frame.
type Snapshot struct {
	Vehicles  []VehicleState
	Quarry    mgl64.Vec3
	Obstacles []geometry.AABB
	Spheres   []geometry.Sphere
}

// Snapshot captures the current world state for the renderer.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Vehicles:  make([]VehicleState, 0, len(w.Vehicles)),
		Quarry:    w.Quarry.Pos,
		Obstacles: make([]geometry.AABB, 0, len(w.Obstacles)),
		Spheres:   make([]geometry.Sphere, 0, len(w.Obstacles)),
	}
	for _, v := range w.Vehicles {
		snap.Vehicles = append(snap.Vehicles, VehicleState{Pos: v.Pos, Forward: v.Forward()})
	}
	for _, obstacle := range w.Obstacles {
		snap.Obstacles = append(snap.Obstacles, obstacle.WorldBounds())
		snap.Spheres = append(snap.Spheres, obstacle.BoundingSphere())
	}
	return snap
}

// Pick casts a vertical ray down onto the scene at ground coordinates
// (x, z) and returns the obstacle hits sorted nearest first. The returned
// slice is reused by the next Pick call.
func (w *World) Pick(x, z float64) ([]collision.Hit, error) {
	ray := geometry.NewRay(mgl64.Vec3{x, w.cfg.WorldExtent, z}, mgl64.Vec3{0, -1, 0})

	w.hits = w.hits[:0]
	for _, obstacle := range w.Obstacles {
		if err := obstacle.Raycast(ray, &w.hits); err != nil {
			return nil, err
		}
	}
	sort.Slice(w.hits, func(i, j int) bool {
		return w.hits[i].Distance < w.hits[j].Distance
	})

	if len(w.hits) > 0 {
		w.log.Debug().
			Float64("x", x).
			Float64("z", z).
			Int("hits", len(w.hits)).
			Float64("nearest", w.hits[0].Distance).
			Msg("pick")
	}
	return w.hits, nil
}
