package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/core/ecs"
	"github.com/l1jgo/arcade/internal/core/event"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/world"
)

// Playfield is the snake board: a grid of square cells centred on the origin.
type Playfield struct {
	StepSize float32
	Width    float32
	Height   float32
}

// HalfExtents returns the distance from the centre to each edge.
func (p Playfield) HalfExtents() (float32, float32) {
	return p.Width / 2, p.Height / 2
}

// Contains reports whether pos lies on the board, edges included.
func (p Playfield) Contains(pos mgl32.Vec3) bool {
	hw, hh := p.HalfExtents()
	return pos.X() >= -hw && pos.X() <= hw && pos.Y() >= -hh && pos.Y() <= hh
}

// RandomCell returns the centre of a uniformly chosen cell.
func (p Playfield) RandomCell(rng *rand.Rand) mgl32.Vec3 {
	cols := int(p.Width / p.StepSize / 2)
	rows := int(p.Height / p.StepSize / 2)
	x := float32(rng.Intn(2*cols)-cols)*p.StepSize + p.StepSize/2
	y := float32(rng.Intn(2*rows)-rows)*p.StepSize + p.StepSize/2
	return mgl32.Vec3{x, y, 0}
}

// FruitSpawnSystem replaces every eaten fruit with a new one on a random cell.
// It reads FruitEaten without draining, so it must run before GrowthSystem in
// the same step. Phase 3 (Step).
type FruitSpawnSystem struct {
	state  *world.State
	bus    *event.Bus
	field  Playfield
	size   float32
	color  uint32
	rng    *rand.Rand
	reader event.Reader
}

func NewFruitSpawnSystem(state *world.State, bus *event.Bus, field Playfield, size float32, color uint32, rng *rand.Rand) *FruitSpawnSystem {
	return &FruitSpawnSystem{state: state, bus: bus, field: field, size: size, color: color, rng: rng}
}

func (s *FruitSpawnSystem) Phase() coresys.Phase { return coresys.PhaseStep }

func (s *FruitSpawnSystem) Update(_ time.Duration) {
	for range s.bus.FruitEaten.Read(&s.reader) {
		s.Spawn()
	}
}

// Spawn places one fruit at a random cell with a random animation phase.
func (s *FruitSpawnSystem) Spawn() ecs.EntityID {
	pos := s.field.RandomCell(s.rng)
	return s.state.SpawnFruit(pos, s.size, s.color, s.rng.Float32()*100)
}

// AnimationSystem advances animation phases with frame time: fruit pulse
// their scale, chain heads just accumulate. Phase 1 (Frame).
type AnimationSystem struct {
	state *world.State
}

func NewAnimationSystem(state *world.State) *AnimationSystem {
	return &AnimationSystem{state: state}
}

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhaseFrame }

func (s *AnimationSystem) Update(dt time.Duration) {
	sec := float32(dt.Seconds())
	ecs.Each2(s.state.Fruits, s.state.Transforms, func(_ ecs.EntityID, f *component.Fruit, t *component.Transform) {
		t.Scale = PulseScale(f.Phase)
		f.Phase += sec
	})
	s.state.Heads.Each(func(_ ecs.EntityID, h *component.ChainHead) {
		h.Phase += sec
	})
}

// PulseScale maps an animation phase to a scale in [0.5, 1].
func PulseScale(phase float32) float32 {
	return float32(math.Sin(2*float64(phase)))/4 + 0.75
}
