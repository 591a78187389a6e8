package ballast

import (
	"math"

	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// maxCollisionDepth caps push recursion. Deeper pushes are dropped.
	maxCollisionDepth = 3
	maxIterations     = 10
	maxMoveLength     = 10.0
	// maxSubstepLength bounds each swept step so thin geometry is not skipped
	maxSubstepLength = 0.5
	// pushOvershoot pushes partners slightly further than the penetration so they separate
	pushOvershoot = 1.05
	minMoveLength = 1e-4
	minCommitSqr  = 1e-6
)

type resolveMode uint8

const (
	resolveFree resolveMode = iota
	// resolveCarrier moves a carrier through everything except the bodies it carries,
	// those receive its displacement afterwards
	resolveCarrier
)

// resolve sweeps body along its pending move, pushing partners out of the way when they can be pushed.
// The pending move is always consumed.
func (w *World) resolve(body *actor.Body, depth int, mode resolveMode) {
	if depth > maxCollisionDepth {
		body.Move = mgl64.Vec3{}
		w.Events.emit(DepthLimitEvent{Body: body.Handle(), Depth: depth})
		return
	}

	previousDepth := body.CollisionDepth
	body.CollisionDepth = depth
	defer func() {
		body.Move = mgl64.Vec3{}
		body.CollisionDepth = previousDepth
	}()

	move := body.Move
	if body.Constrain != nil {
		move = body.Constrain(body, move)
	}
	if move.Len() < minMoveLength {
		return
	}

	for iteration := 0; iteration < maxIterations; iteration++ {
		if length := move.Len(); length > maxMoveLength {
			move = move.Mul(maxMoveLength / length)
		}

		next, blocked := w.sweep(body, move, depth, mode)
		if !blocked {
			if move.LenSqr() > minCommitSqr {
				body.Commit(move)
			}
			return
		}
		move = next
	}
}

// sweep steps body along move and reports whether it was blocked.
// When blocked, it returns the displacement up to the contact plus the correction.
func (w *World) sweep(body *actor.Body, move mgl64.Vec3, depth int, mode resolveMode) (mgl64.Vec3, bool) {
	steps := max(1, int(math.Ceil(move.Len()/maxSubstepLength)))
	step := move.Mul(1 / float64(steps))
	moveDir := direction(move)

	for k := 1; k <= steps; k++ {
		partial := step.Mul(float64(k))
		candidate := body.Transform.Position.Add(partial)

		other, correction, hit := w.firstCollision(body, candidate, moveDir, mode)
		if !hit {
			continue
		}
		w.contact(body, other, correction)

		if other.CanBePushed {
			w.push(body, other, correction, depth)

			other, correction, hit = w.firstCollision(body, candidate, moveDir, mode)
			if !hit {
				continue
			}
		}

		w.block(body, other, correction)
		return partial.Add(correction), true
	}

	return mgl64.Vec3{}, false
}

// contact notifies a collision and applies the reactive push force on other
func (w *World) contact(body, other *actor.Body, correction mgl64.Vec3) {
	if body.OnCollide != nil {
		body.OnCollide(body, other, correction)
	}
	w.Events.recordContact(body.Handle(), other.Handle(), correction)

	other.PushForce = other.PushForce.Sub(correction.Mul(1 / w.dt))
}

// push resolves other out of the way of body one level deeper, keeping the pending move of other
func (w *World) push(body, other *actor.Body, correction mgl64.Vec3, depth int) {
	pending := other.Move
	other.Move = correction.Mul(-pushOvershoot)
	w.Events.emit(PushEvent{Pusher: body.Handle(), Pushed: other.Handle(), Move: other.Move})

	w.resolve(other, depth+1, resolveFree)
	other.Move = pending
}

// block removes the velocity of body going into the contact and applies sliding friction
func (w *World) block(body, other *actor.Body, correction mgl64.Vec3) {
	normal := direction(correction)

	if into := body.Velocity.Dot(normal); into < 0 {
		body.Velocity = body.Velocity.Sub(normal.Mul(into))
	}

	w.applyFriction(body, other, normal)
}

// applyFriction slows the tangential velocity of body relative to other by mu*dt, never reversing it.
// A carrier's own motion is already transferred as displacement, so it does not count as sliding.
func (w *World) applyFriction(body, other *actor.Body, normal mgl64.Vec3) {
	mu := body.Friction * other.Friction
	if mu <= 0 {
		return
	}

	otherVelocity := other.Velocity
	if other == body.Carrier {
		otherVelocity = mgl64.Vec3{}
	}

	relative := body.Velocity.Sub(otherVelocity)
	tangential := relative.Sub(normal.Mul(relative.Dot(normal)))
	speed := tangential.Len()
	if speed < 1e-9 {
		return
	}

	body.Velocity = body.Velocity.Sub(tangential.Mul(math.Min(1, mu*w.dt/speed)))
}

// direction normalizes v, returning zero for a zero vector
func direction(v mgl64.Vec3) mgl64.Vec3 {
	length := v.Len()
	if length < 1e-12 {
		return mgl64.Vec3{}
	}

	return v.Mul(1 / length)
}
