package event

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/core/ecs"
)

// Kind tags the fixed set of event variants carried by the Bus.
type Kind uint8

const (
	KindMovement Kind = iota
	KindFruitEaten
	KindCollision
	KindDeath
)

func (k Kind) String() string {
	switch k {
	case KindMovement:
		return "movement"
	case KindFruitEaten:
		return "fruit_eaten"
	case KindCollision:
		return "collision"
	case KindDeath:
		return "death"
	}
	return "unknown"
}

// Event is implemented only by the variants below.
type Event interface {
	Kind() Kind
	sealed()
}

// Movement is emitted by the integrator for every entity that moved this step.
// From is the position before the move.
type Movement struct {
	Entity ecs.EntityID
	From   mgl32.Vec3
}

// FruitEaten is emitted once per pickup consumed by the chain head.
type FruitEaten struct{}

// Collision is emitted once per overlapping collider pair, A < B.
type Collision struct {
	A, B ecs.EntityID
}

// Death is emitted when a terminal condition freezes the game. Length counts
// the head plus its segments.
type Death struct {
	Length int
}

func (Movement) Kind() Kind   { return KindMovement }
func (FruitEaten) Kind() Kind { return KindFruitEaten }
func (Collision) Kind() Kind  { return KindCollision }
func (Death) Kind() Kind      { return KindDeath }

func (Movement) sealed()   {}
func (FruitEaten) sealed() {}
func (Collision) sealed()  {}
func (Death) sealed()      {}
