// Command picking runs a headless raycast sweep over a small scene,
// printing the hits each precision level reports. Useful to compare the
// aabb, obb and face answers for the same ray without starting the UI.
package main

import (
	"flag"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/collision"
	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/geometry"
)

func main() {
	rotation := flag.Float64("rotation", 0.8, "obstacle rotation around the up axis, radians")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	world := mgl64.Translate3D(10, 0, 0).Mul4(mgl64.HomogRotate3DY(*rotation))

	precisions := []collision.RaycastPrecision{
		collision.RaycastAABB,
		collision.RaycastOBB,
		collision.RaycastFace,
	}

	// One ray grazing the rotated box corner: the aabb answer is looser
	// than the obb one, and face pins the exact triangle.
	ray := geometry.NewRay(mgl64.Vec3{10, 50, 3.5}, mgl64.Vec3{0, -1, 0})

	for _, precision := range precisions {
		mesh := collision.NewBoxMesh(mgl64.Vec3{8, 4, 6})
		mesh.SetWorldMatrix(world)

		obj, err := collision.NewCollidable(mesh, collision.CollisionOBB, precision)
		if err != nil {
			log.Fatal().Err(err).Msg("collidable setup failed")
		}
		obj.Update()

		var hits []collision.Hit
		if err := obj.Raycast(ray, &hits); err != nil {
			log.Fatal().Err(err).Msg("raycast failed")
		}

		if len(hits) == 0 {
			log.Info().Stringer("precision", precision).Msg("no hit")
			continue
		}
		for _, h := range hits {
			log.Info().
				Stringer("precision", precision).
				Float64("distance", h.Distance).
				Int("faceIndex", h.FaceIndex).
				Floats64("point", h.Point[:]).
				Msg("hit")
		}
	}

	// The same scene answered by box intersection instead of rays.
	for _, ct := range []collision.CollisionType{collision.CollisionAABB, collision.CollisionOBB} {
		mesh := collision.NewBoxMesh(mgl64.Vec3{8, 4, 6})
		mesh.SetWorldMatrix(world)
		obj, err := collision.NewCollidable(mesh, ct, collision.RaycastAABB)
		if err != nil {
			log.Fatal().Err(err).Msg("collidable setup failed")
		}

		query := geometry.AABBFromCenter(mgl64.Vec3{10, 0, 4.5}, mgl64.Vec3{1, 1, 1})
		overlap, err := obj.IsIntersection(query)
		if err != nil {
			log.Fatal().Err(err).Msg("intersection failed")
		}
		log.Info().Stringer("collisionType", ct).Bool("overlap", overlap).Msg("box query")
	}
}
