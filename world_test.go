package ballast

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestNewWorld_Errors(t *testing.T) {
	if _, err := NewWorld(nil, DefaultConfig()); !errors.Is(err, ErrNilPool) {
		t.Errorf("NewWorld(nil) error = %v, want ErrNilPool", err)
	}

	cfg := DefaultConfig()
	cfg.Workers = 0
	if _, err := NewWorld(actor.NewPool(0), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewWorld(invalid) error = %v, want ErrInvalidConfig", err)
	}
}

func TestWorld_SetConfigRejectsInvalid(t *testing.T) {
	w := newTestWorld(t, actor.NewPool(0))

	cfg := DefaultConfig()
	cfg.GravityMagnitude = -1
	if err := w.SetConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetConfig() error = %v, want ErrInvalidConfig", err)
	}
	if w.Config() != DefaultConfig() {
		t.Error("invalid config must not replace the current one")
	}
}

func TestWorld_EndCollect_DropsStaleAndDuplicates(t *testing.T) {
	pool := actor.NewPool(4)
	live := pool.Add(createBox(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}))
	removed := pool.Add(createBox(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 1, 1}))
	pool.Remove(removed)

	var buf bytes.Buffer
	w := newTestWorld(t, pool)
	w.Logger = log.New(&buf, "", 0)

	w.BeginCollect()
	w.RegisterObject(live)
	w.RegisterObject(live)
	w.RegisterObject(removed)
	w.EndCollect()

	if len(w.Bodies()) != 1 || w.Bodies()[0] != pool.Get(live) {
		t.Fatalf("Bodies() = %v, want only the live body", w.Bodies())
	}
	if !strings.Contains(buf.String(), "stale") {
		t.Errorf("expected a stale handle log line, got %q", buf.String())
	}
}

func TestWorld_BeginCollectForgetsPreviousFrame(t *testing.T) {
	pool := actor.NewPool(4)
	a := pool.Add(createBox(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}))
	b := pool.Add(createBox(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 1, 1}))
	w := newTestWorld(t, pool)

	w.BeginCollect()
	w.RegisterObject(a)
	w.RegisterObject(b)
	w.EndCollect()

	w.BeginCollect()
	w.RegisterObject(b)
	w.EndCollect()

	if len(w.Bodies()) != 1 || w.Bodies()[0] != pool.Get(b) {
		t.Errorf("Bodies() = %v, want only the body registered this frame", w.Bodies())
	}
}

func TestWorld_SimulateClosesOpenCollection(t *testing.T) {
	pool := actor.NewPool(1)
	h := pool.Add(createBox(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 1, 1}))
	w := newTestWorld(t, pool)

	w.RegisterObject(h)
	w.Simulate(testDt)

	if body := pool.Get(h); !body.DidMove || body.Transform.Position.Y() >= 10 {
		t.Errorf("body did not fall, position = %v", body.Transform.Position)
	}
}

func TestWorld_SimulateNonPositiveDt(t *testing.T) {
	pool := actor.NewPool(1)
	h := pool.Add(createBox(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 1, 1}))
	w := newTestWorld(t, pool)
	w.BeginCollect()
	w.RegisterObject(h)
	w.EndCollect()

	w.Simulate(0)
	w.Simulate(-1)

	body := pool.Get(h)
	if body.Transform.Position != (mgl64.Vec3{0, 10, 0}) || body.Velocity != (mgl64.Vec3{}) {
		t.Errorf("Simulate(<=0) changed the body: position %v velocity %v", body.Transform.Position, body.Velocity)
	}
}

func TestWorld_BoxLandsOnFloor(t *testing.T) {
	tests := []struct {
		name  string
		floor actor.Body
		top   float64
	}{
		{"static box", createStaticBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0.5, 10}), 0.5},
		{"rotated static box", func() actor.Body {
			floor := createStaticBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0.5, 2})
			floor.Transform.Rotation = mgl64.QuatRotate(0.6, mgl64.Vec3{0, 1, 0})
			return floor
		}(), 0.5},
		{"triangle mesh", createFloorMesh(mgl64.Vec3{0, 0, 0}, 10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := actor.NewPool(2)
			floor := pool.Add(tt.floor)
			falling := pool.Add(createBox(mgl64.Vec3{0, tt.top + 2.5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}))
			w := newTestWorld(t, pool)

			for range 180 {
				simulate(w, []actor.Handle{floor, falling}, 1)
				checkTickInvariants(t, w)
			}

			bottom := pool.Get(falling).Bounds().Min.Y()
			if bottom < tt.top-0.02 || bottom > tt.top+0.02 {
				t.Errorf("box bottom = %v, want resting near %v", bottom, tt.top)
			}
			if pool.Get(floor).Transform.Position != (mgl64.Vec3{}) {
				t.Errorf("floor moved to %v", pool.Get(floor).Transform.Position)
			}
		})
	}
}

func TestWorld_LandingEvents(t *testing.T) {
	pool := actor.NewPool(2)
	floor := pool.Add(createStaticBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0.5, 10}))
	falling := pool.Add(createBox(mgl64.Vec3{0, 1.2, 0}, mgl64.Vec3{0.5, 0.5, 0.5}))
	w := newTestWorld(t, pool)

	enter := &eventCapture{}
	contact := &eventCapture{}
	w.Events.Subscribe(COLLISION_ENTER, enter.capture)
	w.Events.Subscribe(CONTACT, contact.capture)

	simulate(w, []actor.Handle{floor, falling}, 60)

	if enter.count() == 0 {
		t.Fatal("expected a COLLISION_ENTER event when the box lands")
	}
	first := enter.events[0].(CollisionEnterEvent)
	if makePairKey(first.BodyA, first.BodyB) != makePairKey(floor, falling) {
		t.Errorf("enter pair = %v/%v, want floor and box", first.BodyA, first.BodyB)
	}

	hit := contact.events[0].(ContactEvent)
	if hit.Body != falling || hit.Other != floor || hit.Correction.Y() <= 0 {
		t.Errorf("contact = %+v, want box pushed up out of the floor", hit)
	}
}

func BenchmarkWorldSimulate(b *testing.B) {
	pool := actor.NewPool(128)
	handles := []actor.Handle{pool.Add(createStaticBox(mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{50, 0.5, 50}))}
	for i := 0; i < 100; i++ {
		x := float64(i%10)*2 - 10
		z := float64(i/10)*2 - 10
		handles = append(handles, pool.Add(createBox(mgl64.Vec3{x, 1 + float64(i%3), z}, mgl64.Vec3{0.5, 0.5, 0.5})))
	}
	w := newTestWorld(b, pool)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		simulate(w, handles, 1)
	}
}
