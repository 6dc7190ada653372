package simulation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lao-tseu-is-alive/go-agent-motion/pkg/collision"
)

// ObstacleConfig describes one static box obstacle in the scene.
type ObstacleConfig struct {
	Position  [3]float64 `json:"position"`
	Size      [3]float64 `json:"size"`
	RotationY float64    `json:"rotationY"` // radians around the world up axis

	CollisionType    string `json:"collisionType"`    // "aabb" or "obb"
	RaycastPrecision string `json:"raycastPrecision"` // "aabb", "obb" or "face"
}

type Config struct {
	// Window dimensions (pixels)
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Half-extent of the ground plane in world units; the window maps onto
	// [-WorldExtent, WorldExtent] on both ground axes.
	WorldExtent float64 `json:"worldExtent"`

	// Agents
	NumVehicles     int     `json:"numVehicles"`
	VehicleMass     float64 `json:"vehicleMass"`
	MaxSpeed        float64 `json:"maxSpeed"`
	MaxForce        float64 `json:"maxForce"`
	MaxTurnRate     float64 `json:"maxTurnRate"`
	VehicleRadius   float64 `json:"vehicleRadius"` // half-extent of the movement query box
	SmootherSamples int     `json:"smootherSamples"`
	SmoothingOn     bool    `json:"smoothingOn"`
	Deceleration    int     `json:"deceleration"` // arrive tier: 3 fast, 4 middle, 5 slow

	// Quarry (the entity the vehicles chase)
	QuarrySpeed    float64 `json:"quarrySpeed"`
	QuarryWanders  bool    `json:"quarryWanders"`
	QuarryOrbitAmp float64 `json:"quarryOrbitAmp"`

	Obstacles []ObstacleConfig `json:"obstacles"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:      1000,
		WorldHeight:     800,
		WorldExtent:     100,
		NumVehicles:     6,
		VehicleMass:     1.0,
		MaxSpeed:        25.0,
		MaxForce:        60.0,
		MaxTurnRate:     math.Pi,
		VehicleRadius:   1.5,
		SmootherSamples: 10,
		SmoothingOn:     true,
		Deceleration:    4,
		QuarrySpeed:     0.4,
		QuarryWanders:   true,
		QuarryOrbitAmp:  60,
		Obstacles: []ObstacleConfig{
			{Position: [3]float64{-40, 0, -30}, Size: [3]float64{20, 10, 14}, CollisionType: "aabb", RaycastPrecision: "aabb"},
			{Position: [3]float64{35, 0, 20}, Size: [3]float64{18, 10, 10}, RotationY: 0.6, CollisionType: "obb", RaycastPrecision: "obb"},
			{Position: [3]float64{0, 0, 55}, Size: [3]float64{24, 10, 8}, RotationY: -0.4, CollisionType: "obb", RaycastPrecision: "face"},
		},
	}
}

// ParseCollisionType maps a config string to its enum value.
func ParseCollisionType(s string) (collision.CollisionType, error) {
	switch s {
	case "aabb":
		return collision.CollisionAABB, nil
	case "obb":
		return collision.CollisionOBB, nil
	default:
		return 0, fmt.Errorf("unknown collision type %q", s)
	}
}

// ParseRaycastPrecision maps a config string to its enum value.
func ParseRaycastPrecision(s string) (collision.RaycastPrecision, error) {
	switch s {
	case "aabb":
		return collision.RaycastAABB, nil
	case "obb":
		return collision.RaycastOBB, nil
	case "face":
		return collision.RaycastFace, nil
	default:
		return 0, fmt.Errorf("unknown raycast precision %q", s)
	}
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
