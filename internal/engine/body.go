package engine

import "github.com/vovakirdan/tui-runner/internal/core"

// Kind groups bodies for collision registration and rendering.
type Kind int

const (
	KindPlayer Kind = iota
	KindGround
	KindObstacle
)

// String returns the group name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindGround:
		return "ground"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Body is a visual entity with a collision box.
//
// Static bodies keep a separate collision box that only follows the visual
// position when Refresh is called, so moving a static body without
// refreshing it leaves its old collision geometry behind.
type Body struct {
	id       int
	kind     Kind
	static   bool
	pos      core.Box // visual position
	hit      core.Box // collision geometry (static bodies)
	vy       float64
	gravity  bool
	grounded bool
	alive    bool
	tint     core.Color
	anim     string
}

// ID returns the body's unique id within its world.
func (b *Body) ID() int { return b.id }

// Kind returns the body's group.
func (b *Body) Kind() Kind { return b.kind }

// Static reports whether the body is immovable.
func (b *Body) Static() bool { return b.static }

// Alive reports whether the body is still part of the world.
func (b *Body) Alive() bool { return b.alive }

// X returns the left edge.
func (b *Body) X() float64 { return b.pos.X }

// Y returns the top edge.
func (b *Body) Y() float64 { return b.pos.Y }

// Width returns the body width.
func (b *Body) Width() float64 { return b.pos.W }

// Height returns the body height.
func (b *Body) Height() float64 { return b.pos.H }

// Right returns the right edge.
func (b *Body) Right() float64 { return b.pos.Right() }

// Box returns the visual box.
func (b *Body) Box() core.Box { return b.pos }

// HitBox returns the box used for collisions.
func (b *Body) HitBox() core.Box {
	if b.static {
		return b.hit
	}
	return b.pos
}

// SetX moves the body horizontally.
func (b *Body) SetX(x float64) { b.pos.X = x }

// SetY moves the body vertically.
func (b *Body) SetY(y float64) { b.pos.Y = y }

// Refresh syncs the collision geometry with the visual position.
func (b *Body) Refresh() { b.hit = b.pos }

// SetVelocityY sets the vertical velocity in units per second (negative is up).
func (b *Body) SetVelocityY(v float64) { b.vy = v }

// VelocityY returns the vertical velocity.
func (b *Body) VelocityY() float64 { return b.vy }

// SetGravity enables or disables gravity for a dynamic body.
func (b *Body) SetGravity(on bool) { b.gravity = on }

// Grounded reports whether the body rested on a collider during the last
// physics step.
func (b *Body) Grounded() bool { return b.grounded }

// SetTint sets the draw color.
func (b *Body) SetTint(c core.Color) { b.tint = c }

// Tint returns the draw color.
func (b *Body) Tint() core.Color { return b.tint }

// SetAnim selects the named animation; an empty name stops animating.
func (b *Body) SetAnim(name string) { b.anim = name }

// Anim returns the current animation name.
func (b *Body) Anim() string { return b.anim }
