package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Body is the simulation state of one object in the world.
// Fields under "engine scratch" are owned by the world during a tick; callers read them as diagnostics.
type Body struct {
	handle Handle

	// Spatial properties
	Transform Transform
	Velocity  mgl64.Vec3

	// Move is the pending displacement for the current tick. Callers may add to it
	// between ticks (character input); the world always leaves it zero after a tick.
	Move mgl64.Vec3
	// PushForce is the reactive force received from bodies pushing into this one this tick
	PushForce mgl64.Vec3

	accumulatedForce mgl64.Vec3

	// Physical properties
	// Gravity is direction * scale, multiplied by the world gravity magnitude. It need not point down.
	Gravity     mgl64.Vec3
	Friction    float64
	CanBePushed bool
	// CanCarry lets the body carry others, and ride a carrier itself
	CanCarry    bool

	// Collision shape
	Shape Shape
	// FlipWinding is set at registration when the transform mirrors geometry
	FlipWinding bool

	// Queries and hooks
	RayMask uint32
	// Filter vetoes a pairwise test when it returns false, checked on both bodies
	Filter func(self, other *Body) bool
	// Constrain rewrites the proposed move before resolution (rails, axis locks)
	Constrain func(b *Body, move mgl64.Vec3) mgl64.Vec3
	// OnCollide is called with the blocking partner and the correction applied to self
	OnCollide func(self, other *Body, correction mgl64.Vec3)

	DebugColor Color

	// engine scratch
	CollisionDepth   int
	CopiedParentMove bool
	Carrier          *Body
	Carried          []*Body
	DidMove          bool
	ActualMove       mgl64.Vec3

	// display smoothing
	displayPosition    mgl64.Vec3
	lockedPosition     mgl64.Vec3
	displayTimer       float64
	displayInitialized bool
}

// NewBody creates a pushable body with unit gravity scale pointing down -Y
func NewBody(transform Transform, shape Shape) Body {
	return Body{
		Transform:   transform,
		Shape:       shape,
		Gravity:     mgl64.Vec3{0, -1, 0},
		Friction:    1.0,
		CanBePushed: true,
		RayMask:     1,
	}
}

// NewStaticBody creates an immovable body without gravity that can carry others
func NewStaticBody(transform Transform, shape Shape) Body {
	return Body{
		Transform: transform,
		Shape:     shape,
		Friction:  1.0,
		CanCarry:  true,
		RayMask:   1,
	}
}

// Handle returns the pool handle of the body, or InvalidHandle if it was never pooled
func (b *Body) Handle() Handle {
	return b.handle
}

// Bounds returns the world AABB of the body at its current position
func (b *Body) Bounds() AABB {
	return b.BoundsAt(b.Transform.Position)
}

// BoundsAt returns the world AABB of the body as if it stood at position
func (b *Body) BoundsAt(position mgl64.Vec3) AABB {
	transform := b.Transform
	transform.Position = position

	return b.Shape.Bounds(transform)
}

// AddForce accumulates a force applied on the next integration
func (b *Body) AddForce(force mgl64.Vec3) {
	b.accumulatedForce = b.accumulatedForce.Add(force)
}

// AddMove accumulates a direct displacement for the next tick
func (b *Body) AddMove(move mgl64.Vec3) {
	b.Move = b.Move.Add(move)
}

func (b *Body) Force() mgl64.Vec3 {
	return b.accumulatedForce
}

// Registered prepares the body for a frame, caching values derived from its transform
func (b *Body) Registered() {
	b.FlipWinding = b.Transform.IsMirrored()
}

// Integrate applies gravity and forces to the velocity, converts velocity into pending move
// and clears the per-tick scratch state
func (b *Body) Integrate(dt float64, gravityMagnitude float64) {
	b.Velocity = b.Velocity.Add(b.Gravity.Mul(dt * gravityMagnitude))
	b.Velocity = b.Velocity.Add(b.accumulatedForce.Mul(dt))
	b.Move = b.Move.Add(b.Velocity.Mul(dt))

	b.CollisionDepth = 0
	b.CopiedParentMove = false
	b.Carrier = nil
	b.Carried = b.Carried[:0]
	b.PushForce = mgl64.Vec3{}
	b.DidMove = false
	b.ActualMove = mgl64.Vec3{}
	b.ClearForces()
}

func (b *Body) ClearForces() {
	b.accumulatedForce = mgl64.Vec3{0, 0, 0}
}

// Commit moves the body by move and records it as actual displacement
func (b *Body) Commit(move mgl64.Vec3) {
	b.Transform.Position = b.Transform.Position.Add(move)
	b.ActualMove = b.ActualMove.Add(move)
	b.DidMove = true
}

// UpdateDisplay refreshes the smoothed render position.
// Moves farther than lockDistance from the locked position show immediately and restart the countdown;
// smaller moves keep the locked position until lockDuration elapses, then the display catches up once.
func (b *Body) UpdateDisplay(dt, lockDistance, lockDuration float64) {
	position := b.Transform.Position

	if !b.displayInitialized || position.Sub(b.lockedPosition).Len() > lockDistance {
		b.displayInitialized = true
		b.displayTimer = lockDuration
		b.lockedPosition = position
		b.displayPosition = position
		return
	}

	b.displayTimer -= dt
	if b.displayTimer > 0 {
		b.displayPosition = b.lockedPosition
		return
	}

	b.displayTimer = lockDuration
	b.lockedPosition = position
	b.displayPosition = position
}

// DisplayPosition returns the smoothed position for rendering. It never feeds back into simulation.
func (b *Body) DisplayPosition() mgl64.Vec3 {
	if !b.displayInitialized {
		return b.Transform.Position
	}

	return b.displayPosition
}

// DebugColorOrDefault returns DebugColor, or a colour derived from the body kind when unset
func (b *Body) DebugColorOrDefault() Color {
	if b.DebugColor != (Color{}) {
		return b.DebugColor
	}

	switch b.Shape.(type) {
	case *Mesh:
		return ColorMesh
	case *Box:
		switch {
		case b.CanCarry:
			return ColorCarrierBox
		case b.CanBePushed:
			return ColorPushableBox
		}
	}

	return ColorStaticBox
}
