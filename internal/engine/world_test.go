package engine

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/core"
)

const dt = 1.0 / 60.0

type recorder struct {
	inits      int
	frames     int
	collisions [][2]*Body
	onHit      func(w *World)
	w          *World
}

func (r *recorder) OnInit()         { r.inits++ }
func (r *recorder) OnFrame(float64) { r.frames++ }
func (r *recorder) OnCollision(a, b *Body) {
	r.collisions = append(r.collisions, [2]*Body{a, b})
	if r.onHit != nil {
		r.onHit(r.w)
	}
}

func newTestWorld() *World {
	return NewWorld(Config{Width: 800, Height: 480, Gravity: 1000, Seed: 1})
}

func TestFrameOrderAndClock(t *testing.T) {
	w := newTestWorld()
	r := &recorder{}
	w.Register(r)

	if r.inits != 1 {
		t.Fatalf("OnInit called %d times, expected 1", r.inits)
	}

	for i := 0; i < 60; i++ {
		w.Frame(dt)
	}

	if r.frames != 60 {
		t.Errorf("OnFrame called %d times, expected 60", r.frames)
	}
	if got := w.Now(); got < 999.9 || got > 1000.1 {
		t.Errorf("Now() = %v after 60 frames, expected ~1000ms", got)
	}
	if w.Frames() != 60 {
		t.Errorf("Frames() = %d, expected 60", w.Frames())
	}
}

func TestRandomIntInclusive(t *testing.T) {
	w := newTestWorld()
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := w.RandomInt(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("RandomInt(3, 5) = %d, out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all of 3..5 to appear, saw %v", seen)
	}

	if v := w.RandomInt(7, 7); v != 7 {
		t.Errorf("RandomInt(7, 7) = %d, expected 7", v)
	}
	if v := w.RandomInt(9, 8); v < 8 || v > 9 {
		t.Errorf("RandomInt(9, 8) = %d, expected swapped range", v)
	}
}

func TestDynamicBodyLandsOnGround(t *testing.T) {
	w := newTestWorld()
	w.Register(&recorder{})

	ground := w.AddStatic(KindGround, core.NewBox(0, 440, 800, 40))
	player := w.AddDynamic(KindPlayer, core.NewBox(100, 267, 58, 73))
	w.Collider(KindPlayer, KindGround)

	for i := 0; i < 120 && !player.Grounded(); i++ {
		w.Frame(dt)
	}

	if !player.Grounded() {
		t.Fatal("player never landed")
	}
	if player.Y()+player.Height() != ground.Y() {
		t.Errorf("player bottom = %v, expected ground top %v", player.Y()+player.Height(), ground.Y())
	}

	// Stays grounded while resting
	w.Frame(dt)
	if !player.Grounded() {
		t.Error("resting player should stay grounded")
	}

	// Jump leaves the ground
	player.SetVelocityY(-500)
	w.Frame(dt)
	if player.Grounded() {
		t.Error("player should be airborne after an upward impulse")
	}
}

func TestStaleHitBoxUntilRefresh(t *testing.T) {
	w := newTestWorld()
	tile := w.AddStatic(KindGround, core.NewBox(0, 440, 54, 40))

	tile.SetX(540)
	if tile.HitBox().X != 0 {
		t.Errorf("hit box moved without Refresh: %+v", tile.HitBox())
	}

	tile.Refresh()
	if tile.HitBox().X != 540 {
		t.Errorf("hit box X = %v after Refresh, expected 540", tile.HitBox().X)
	}
}

func TestOverlapDispatchStopsWhenPaused(t *testing.T) {
	w := newTestWorld()
	r := &recorder{w: w, onHit: func(w *World) { w.Pause() }}
	w.Register(r)

	player := w.AddDynamic(KindPlayer, core.NewBox(100, 300, 58, 73))
	player.SetGravity(false)
	w.AddStatic(KindObstacle, core.NewBox(120, 300, 54, 72))
	w.AddStatic(KindObstacle, core.NewBox(130, 300, 54, 72))
	w.Overlap(KindPlayer, KindObstacle)

	w.Frame(dt)

	if len(r.collisions) != 1 {
		t.Fatalf("collisions = %d, expected 1 (dispatch stops on pause)", len(r.collisions))
	}
	if r.collisions[0][0] != player {
		t.Error("first collision argument should be the player")
	}
	if !w.Paused() {
		t.Error("world should be paused")
	}

	// Paused worlds run no physics and report nothing new
	y := player.Y()
	w.Frame(dt)
	if len(r.collisions) != 1 || player.Y() != y {
		t.Error("paused world should not integrate or dispatch")
	}
	if w.Frames() != 2 {
		t.Errorf("clock should still advance while paused, frames = %d", w.Frames())
	}

	w.Resume()
	player.SetY(0)
	player.SetGravity(true)
	w.Frame(dt)
	if w.Paused() || player.Y() <= 0 {
		t.Errorf("resumed world should integrate again, y = %v", player.Y())
	}
	if len(r.collisions) != 1 {
		t.Errorf("collisions = %d after moving clear, expected 1", len(r.collisions))
	}
}

func TestTouchingEdgesDoNotCollide(t *testing.T) {
	w := newTestWorld()
	r := &recorder{}
	w.Register(r)

	player := w.AddDynamic(KindPlayer, core.NewBox(100, 300, 58, 73))
	player.SetGravity(false)
	w.AddStatic(KindObstacle, core.NewBox(158, 300, 54, 72))
	w.Overlap(KindPlayer, KindObstacle)

	w.Frame(dt)
	if len(r.collisions) != 0 {
		t.Errorf("edge contact reported %d collisions", len(r.collisions))
	}
}

func TestDestroy(t *testing.T) {
	w := newTestWorld()
	a := w.AddStatic(KindObstacle, core.NewBox(0, 0, 10, 10))
	b := w.AddStatic(KindObstacle, core.NewBox(20, 0, 10, 10))

	w.Destroy(a)
	w.Destroy(a)
	w.Destroy(nil)

	if a.Alive() {
		t.Error("destroyed body reports alive")
	}
	got := w.Bodies(KindObstacle)
	if len(got) != 1 || got[0] != b {
		t.Errorf("Bodies() = %v, expected only the survivor", got)
	}
	if w.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", w.Count())
	}
}

func TestTextsAndSounds(t *testing.T) {
	w := newTestWorld()

	start := w.AddText("start", "Press SPACE", -1, core.ColorText)
	if again := w.AddText("start", "ignored", 0, core.ColorAccent); again != start {
		t.Error("AddText with an existing id should return the existing overlay")
	}
	start.SetVisible(false)
	start.SetText("Go")

	if got := w.Text("start"); got == nil || got.Visible || got.Content != "Go" {
		t.Errorf("Text(start) = %+v", got)
	}
	if w.Text("missing") != nil {
		t.Error("unknown text id should be nil")
	}

	if w.Sound("theme") != nil {
		t.Error("unloaded sound should be nil")
	}
	bank := audio.NewBank(nil)
	w.LoadSound("theme", bank.Load("theme", true))
	w.LoadSound("ignored", nil)
	if w.Sound("theme") == nil {
		t.Error("loaded sound missing")
	}
	if w.Sound("ignored") != nil {
		t.Error("nil sound should not be registered")
	}
}
