package event

import (
	"testing"

	"github.com/l1jgo/arcade/internal/core/ecs"
)

func TestQueueReadIsFIFOAndOncePerReader(t *testing.T) {
	q := NewQueue[Collision]()
	q.SendBatch(
		Collision{A: 1, B: 2},
		Collision{A: 3, B: 4},
	)
	q.Send(Collision{A: 5, B: 6})

	var r Reader
	got := q.Read(&r)
	if len(got) != 3 {
		t.Fatalf("first read got %d events, want 3", len(got))
	}
	for i, want := range []ecs.EntityID{1, 3, 5} {
		if got[i].A != want {
			t.Errorf("event %d: A=%d, want %d", i, got[i].A, want)
		}
	}

	if again := q.Read(&r); len(again) != 0 {
		t.Errorf("second read by same reader got %d events, want 0", len(again))
	}

	var other Reader
	if n := len(q.Read(&other)); n != 3 {
		t.Errorf("independent reader got %d events, want 3", n)
	}
}

func TestQueueEmptyReadIsNotAnError(t *testing.T) {
	q := NewQueue[Death]()
	var r Reader
	if got := q.Read(&r); got != nil {
		t.Errorf("empty read = %v, want nil", got)
	}
	q.SendBatch()
	if q.Len() != 0 {
		t.Errorf("empty batch queued %d events", q.Len())
	}
}

func TestQueueExpiresAfterTwoUpdates(t *testing.T) {
	q := NewQueue[Movement]()
	q.Send(Movement{Entity: 7})

	q.Update()
	var r Reader
	if got := q.Read(&r); len(got) != 1 {
		t.Fatalf("after one update got %d events, want 1", len(got))
	}

	q.Send(Movement{Entity: 8})
	q.Update()
	q.Update()

	var late Reader
	if got := q.Read(&late); len(got) != 0 {
		t.Errorf("unread events survived two updates: %v", got)
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d after expiry, want 0", q.Len())
	}
}

func TestQueueReaderSpansBuffers(t *testing.T) {
	q := NewQueue[Movement]()
	var r Reader

	q.Send(Movement{Entity: 1})
	q.Update()
	q.Send(Movement{Entity: 2})

	got := q.Read(&r)
	if len(got) != 2 || got[0].Entity != 1 || got[1].Entity != 2 {
		t.Fatalf("read across buffers = %v, want entities 1,2", got)
	}

	q.Update()
	q.Send(Movement{Entity: 3})
	got = q.Read(&r)
	if len(got) != 1 || got[0].Entity != 3 {
		t.Errorf("read after update = %v, want entity 3 only", got)
	}
}

func TestQueueDrainClearsForEveryone(t *testing.T) {
	q := NewQueue[FruitEaten]()
	q.Send(FruitEaten{})
	q.Update()
	q.Send(FruitEaten{})

	if n := len(q.Drain()); n != 2 {
		t.Fatalf("Drain returned %d events, want 2", n)
	}
	if q.Drain() != nil {
		t.Error("second Drain returned events")
	}
	var r Reader
	if n := len(q.Read(&r)); n != 0 {
		t.Errorf("reader saw %d drained events", n)
	}

	q.Send(FruitEaten{})
	if n := len(q.Read(&r)); n != 1 {
		t.Errorf("reader missed event sent after drain: got %d", n)
	}
}

func TestBusEmitRoutesByKind(t *testing.T) {
	b := NewBus()
	for _, ev := range []Event{
		Movement{Entity: 1},
		FruitEaten{},
		FruitEaten{},
		Collision{A: 1, B: 2},
		Death{Length: 4},
	} {
		b.Emit(ev)
	}

	cases := []struct {
		kind Kind
		want int
	}{
		{KindMovement, 1},
		{KindFruitEaten, 2},
		{KindCollision, 1},
		{KindDeath, 1},
	}
	for _, c := range cases {
		if got := b.Pending(c.kind); got != c.want {
			t.Errorf("%s pending = %d, want %d", c.kind, got, c.want)
		}
	}

	b.UpdateFrame()
	b.UpdateFrame()
	if b.Pending(KindCollision) != 0 || b.Pending(KindDeath) != 0 {
		t.Error("per-frame kinds not expired after two frame updates")
	}
	if b.Pending(KindFruitEaten) != 2 {
		t.Error("frame update aged the manually drained queue")
	}
	if b.Pending(KindMovement) != 1 {
		t.Error("frame update aged the per-step queue")
	}
}
