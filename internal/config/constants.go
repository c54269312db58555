package config

import "time"

// Built-in tuning. These are the defaults behind every config field.

// Snake grid.
const (
	StepSize      float32 = 20  // grid cell edge
	Padding       float32 = 2.5 // gap between drawn body cells
	FruitPadding  float32 = 7.5 // gap around a drawn pickup
	ScreenWidth   float32 = 800
	ScreenHeight  float32 = 600
	InitialFruit          = 100
	SafetySkip            = 3    // segments 0..2 never count as self-collision
	GrowthSpeedup         = 0.95 // step multiplier per pickup

	StartingStep = 150 * time.Millisecond
	MinStep      = 40 * time.Millisecond
)

// 3D sandbox.
const (
	AsteroidSpawnInterval          = 300 * time.Millisecond
	AsteroidVelocityScalar float32 = 10
	AsteroidAccelScalar    float32 = 1
	AsteroidRadius         float32 = 2.5

	ShipSpeed         float32 = 25 // units/s along the nose
	ShipRotationSpeed float32 = 5  // yaw, radians/s
	ShipRollSpeed     float32 = 5  // roll, radians/s
	ShipRadius        float32 = 4

	MissileSpeed        float32 = 50
	MissileAcceleration float32 = 20
	MissileForward      float32 = 8.5
	MissileRadius       float32 = 1
)

// Colours, 0xRRGGBB.
const (
	ColorSeaGreen uint32 = 0x2e8b57
	ColorTomato   uint32 = 0xff6347
)
