package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/core/ecs"
)

// Direction is a grid heading.
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}

// Opposite returns the reverse heading. None is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	}
	return DirNone
}

// Unit is the heading as a unit vector on the XY plane, +Y up.
func (d Direction) Unit() mgl32.Vec3 {
	switch d {
	case DirLeft:
		return mgl32.Vec3{-1, 0, 0}
	case DirRight:
		return mgl32.Vec3{1, 0, 0}
	case DirUp:
		return mgl32.Vec3{0, 1, 0}
	case DirDown:
		return mgl32.Vec3{0, -1, 0}
	}
	return mgl32.Vec3{}
}

// ChainHead leads a chain of segments.
//
// Segments is in body order, head to tail, and the head owns every entity in
// it: despawning the head despawns them all.
type ChainHead struct {
	Dir      Direction // last accepted heading
	Pending  Direction // candidate from this frame's input, DirNone if none
	Segments []ecs.EntityID
	Phase    float32 // animation accumulator, seconds
}

// Segment marks a chain body element.
type Segment struct {
	Head ecs.EntityID
}
