package ballast

import (
	"errors"
	"fmt"
	"log"

	"github.com/akmonengine/ballast/actor"
)

var ErrNilPool = errors.New("ballast: nil pool")

// World resolves movement for the bodies registered each frame.
// Bodies live in the caller's Pool; the world keeps their handles and resolves them once per frame.
// Resolved pointers stay valid until the caller adds to the Pool, so bodies must not be added
// between EndCollect and the end of Simulate.
type World struct {
	Pool   *actor.Pool
	Events Events
	// Logger receives registration diagnostics, nil keeps the world silent
	Logger *log.Logger

	config Config
	// tick is the config snapshot used by the running Simulate call
	tick Config
	dt   float64

	collecting bool
	handles    []actor.Handle
	bodies     []*actor.Body
	seen       map[actor.Handle]struct{}

	debugRanges []debugRange
}

// NewWorld creates a world over pool with a validated config
func NewWorld(pool *actor.Pool, cfg Config) (*World, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}

	return &World{
		Pool:   pool,
		Events: NewEvents(),
		config: cfg,
		tick:   cfg,
		seen:   make(map[actor.Handle]struct{}),
	}, nil
}

func (w *World) Config() Config {
	return w.config
}

// SetConfig replaces the tunables, the next tick picks them up
func (w *World) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	w.config = cfg

	return nil
}

// BeginCollect starts a new frame and forgets the bodies registered for the previous one
func (w *World) BeginCollect() {
	w.collecting = true
	w.handles = w.handles[:0]
	w.bodies = w.bodies[:0]
}

// RegisterObject adds a body to the current frame. Calling it outside a collection starts one.
func (w *World) RegisterObject(handle actor.Handle) {
	if !w.collecting {
		w.BeginCollect()
	}
	w.handles = append(w.handles, handle)
}

// EndCollect resolves the registered handles. Stale handles and duplicates are dropped.
func (w *World) EndCollect() {
	w.collecting = false
	w.bodies = w.bodies[:0]
	if w.seen == nil {
		w.seen = make(map[actor.Handle]struct{})
	}
	clear(w.seen)

	for _, h := range w.handles {
		if _, ok := w.seen[h]; ok {
			continue
		}
		w.seen[h] = struct{}{}

		body := w.Pool.Get(h)
		if body == nil {
			w.logf("ballast: dropping stale handle %v", h)
			continue
		}
		if body.Shape == nil {
			w.logf("ballast: dropping %v without shape", h)
			continue
		}

		body.Registered()
		w.bodies = append(w.bodies, body)
	}
}

// Bodies returns the bodies of the current frame in registration order
func (w *World) Bodies() []*actor.Body {
	return w.bodies
}

// Simulate advances the registered bodies by dt seconds. A non-positive dt does nothing.
func (w *World) Simulate(dt float64) {
	if dt <= 0 {
		return
	}
	if w.collecting {
		w.EndCollect()
	}

	w.tick = w.config
	w.dt = dt

	// Phase 1: Integrate forces into pending moves
	w.integrate(dt)

	// Phase 2: Move carriers first, carried bodies inherit their displacement
	w.findCarriers()
	for _, body := range w.bodies {
		w.propagateCarry(body)
	}

	// Phase 3: Resolve every remaining move, recursing into pushed bodies
	for _, body := range w.bodies {
		w.resolve(body, 0, resolveFree)
	}

	// Phase 4: Display smoothing
	for _, body := range w.bodies {
		body.UpdateDisplay(dt, w.tick.DisplayLockDistance, w.tick.DisplayLockDuration)
	}

	w.Events.flush()
}

func (w *World) integrate(dt float64) {
	for _, body := range w.bodies {
		body.Integrate(dt, w.tick.GravityMagnitude)
	}
}

func (w *World) logf(format string, args ...any) {
	if w.Logger != nil {
		w.Logger.Printf(format, args...)
	}
}
