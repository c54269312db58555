package event

// Bus holds one queue per event kind. The set of kinds is closed; Emit routes
// by type switch rather than by runtime type lookup.
//
// Clearing disciplines per kind:
//   - Movement: aged once per step by the pre-step maintenance system.
//   - FruitEaten: drained by the growth system; never aged.
//   - Collision, Death: aged once per frame by the scheduler.
//
// Accessed only from the simulation goroutine.
type Bus struct {
	Movement   *Queue[Movement]
	FruitEaten *Queue[FruitEaten]
	Collision  *Queue[Collision]
	Death      *Queue[Death]
}

func NewBus() *Bus {
	return &Bus{
		Movement:   NewQueue[Movement](),
		FruitEaten: NewQueue[FruitEaten](),
		Collision:  NewQueue[Collision](),
		Death:      NewQueue[Death](),
	}
}

// Emit queues ev on the queue for its kind.
func (b *Bus) Emit(ev Event) {
	switch e := ev.(type) {
	case Movement:
		b.Movement.Send(e)
	case FruitEaten:
		b.FruitEaten.Send(e)
	case Collision:
		b.Collision.Send(e)
	case Death:
		b.Death.Send(e)
	}
}

// UpdateFrame ages the per-frame notification queues.
func (b *Bus) UpdateFrame() {
	b.Collision.Update()
	b.Death.Update()
}

// Pending returns the number of buffered events of kind k.
func (b *Bus) Pending(k Kind) int {
	switch k {
	case KindMovement:
		return b.Movement.Len()
	case KindFruitEaten:
		return b.FruitEaten.Len()
	case KindCollision:
		return b.Collision.Len()
	case KindDeath:
		return b.Death.Len()
	}
	return 0
}
