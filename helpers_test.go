package ballast

import (
	"math"
	"testing"

	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const testDt = 1.0 / 60.0

func vecNear(a, b mgl64.Vec3, tolerance float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

// createBox creates a pushable box under gravity
func createBox(position, halfExtents mgl64.Vec3) actor.Body {
	transform := actor.NewTransform()
	transform.Position = position

	return actor.NewBody(transform, &actor.Box{HalfExtents: halfExtents})
}

// createFloatingBox creates a pushable box without gravity
func createFloatingBox(position, halfExtents mgl64.Vec3) actor.Body {
	body := createBox(position, halfExtents)
	body.Gravity = mgl64.Vec3{}

	return body
}

// createStaticBox creates an immovable carrier box
func createStaticBox(position, halfExtents mgl64.Vec3) actor.Body {
	transform := actor.NewTransform()
	transform.Position = position

	return actor.NewStaticBody(transform, &actor.Box{HalfExtents: halfExtents})
}

// createFloorMesh creates a static quad mesh of halfSize centered at position, facing up
func createFloorMesh(position mgl64.Vec3, halfSize float64) actor.Body {
	transform := actor.NewTransform()
	transform.Position = position
	mesh := actor.NewMeshData(
		[]mgl64.Vec3{
			{-halfSize, 0, -halfSize},
			{-halfSize, 0, halfSize},
			{halfSize, 0, halfSize},
			{halfSize, 0, -halfSize},
		},
		[]uint32{0, 1, 3, 1, 2, 3},
	)

	return actor.NewStaticBody(transform, &actor.Mesh{Data: mesh})
}

func newTestWorld(t testing.TB, pool *actor.Pool) *World {
	t.Helper()

	w, err := NewWorld(pool, DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	return w
}

// simulate registers handles and runs ticks steps of testDt
func simulate(w *World, handles []actor.Handle, ticks int) {
	for range ticks {
		w.BeginCollect()
		for _, h := range handles {
			w.RegisterObject(h)
		}
		w.EndCollect()
		w.Simulate(testDt)
	}
}

// checkTickInvariants fails when a body keeps a pending move or a recursion depth after a tick
func checkTickInvariants(t *testing.T, w *World) {
	t.Helper()

	for _, body := range w.Bodies() {
		if body.Move != (mgl64.Vec3{}) {
			t.Errorf("%v: Move = %v after tick, want zero", body.Handle(), body.Move)
		}
		if body.CollisionDepth != 0 {
			t.Errorf("%v: CollisionDepth = %d after tick, want 0", body.Handle(), body.CollisionDepth)
		}
	}
}

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}
