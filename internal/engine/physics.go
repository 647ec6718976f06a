package engine

import "github.com/vovakirdan/tui-runner/internal/core"

// AddStatic creates an immovable body. Its collision geometry starts at box.
func (w *World) AddStatic(kind Kind, box core.Box) *Body {
	b := w.add(kind, box)
	b.static = true
	b.hit = box
	return b
}

// AddDynamic creates a gravity-affected body.
func (w *World) AddDynamic(kind Kind, box core.Box) *Body {
	b := w.add(kind, box)
	b.gravity = true
	return b
}

func (w *World) add(kind Kind, box core.Box) *Body {
	w.nextID++
	b := &Body{
		id:    w.nextID,
		kind:  kind,
		pos:   box,
		alive: true,
	}
	w.bodies = append(w.bodies, b)
	return b
}

// Destroy removes a body from the world. Destroying twice is a no-op.
func (w *World) Destroy(b *Body) {
	if b == nil || !b.alive {
		return
	}
	b.alive = false
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Bodies returns the live bodies of a kind in creation order.
func (w *World) Bodies(kind Kind) []*Body {
	var out []*Body
	for _, b := range w.bodies {
		if b.kind == kind {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the number of live bodies.
func (w *World) Count() int { return len(w.bodies) }

// Collider makes dynamic bodies of kind a land on static bodies of kind b.
func (w *World) Collider(a, b Kind) {
	w.colliders = append(w.colliders, pair{a, b})
}

// Overlap reports touching bodies of kinds a and b to Lifecycle.OnCollision.
func (w *World) Overlap(a, b Kind) {
	w.overlaps = append(w.overlaps, pair{a, b})
}

func (w *World) integrate(dt float64) {
	for _, b := range w.bodies {
		if b.static || !b.gravity {
			continue
		}
		b.vy += w.cfg.Gravity * dt
		b.pos.Y += b.vy * dt
		b.grounded = false
	}
}

// resolveContacts pushes falling bodies out of the top of their colliders and
// keeps everything above the world floor.
func (w *World) resolveContacts() {
	for _, p := range w.colliders {
		for _, mover := range w.bodies {
			if mover.kind != p.a || mover.static {
				continue
			}
			for _, solid := range w.bodies {
				if solid.kind != p.b || !solid.static {
					continue
				}
				land(mover, solid.hit)
			}
		}
	}

	for _, b := range w.bodies {
		if b.static {
			continue
		}
		if floor := w.cfg.Height; floor > 0 && b.pos.Bottom() > floor {
			b.pos.Y = floor - b.pos.H
			if b.vy > 0 {
				b.vy = 0
			}
			b.grounded = true
		}
	}
}

// land settles a falling mover on top of solid when they overlap and the
// mover's center is still above the solid's top edge.
func land(mover *Body, solid core.Box) {
	if mover.vy < 0 || !mover.pos.Overlaps(solid) {
		return
	}
	if mover.pos.Y+mover.pos.H/2 > solid.Y {
		return
	}
	mover.pos.Y = solid.Y - mover.pos.H
	mover.vy = 0
	mover.grounded = true
}

func (w *World) dispatchOverlaps() {
	if w.life == nil {
		return
	}
	for _, p := range w.overlaps {
		for _, a := range w.Bodies(p.a) {
			for _, b := range w.Bodies(p.b) {
				if !a.alive || !b.alive || !a.HitBox().Overlaps(b.HitBox()) {
					continue
				}
				w.life.OnCollision(a, b)
				if w.paused {
					return
				}
			}
		}
	}
}
