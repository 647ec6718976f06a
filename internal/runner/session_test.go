package runner

import (
	"sort"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/engine"
)

const dt = 1.0 / 60.0

// clockWorld is an engine world whose clock and dice the test controls.
type clockWorld struct {
	*engine.World
	now   float64
	rolls [][2]int
	roll  func(lo, hi int) int
}

func (c *clockWorld) Now() float64 { return c.now }

func (c *clockWorld) RandomInt(lo, hi int) int {
	c.rolls = append(c.rolls, [2]int{lo, hi})
	if c.roll != nil {
		return c.roll(lo, hi)
	}
	return c.World.RandomInt(lo, hi)
}

func classicParams() Params {
	return ParamsFrom(config.VariantConfig(config.VariantClassic))
}

func newClockSession(t *testing.T, p Params) (*Session, *clockWorld, *KeyboardInput) {
	t.Helper()
	cw := &clockWorld{World: engine.NewWorld(engine.Config{Width: 800, Height: 480, Gravity: 1000, Seed: 7})}
	in := &KeyboardInput{}
	s := NewSession(cw, in, p)
	cw.Register(s)
	return s, cw, in
}

// frame runs one engine frame with the stub clock advanced alongside.
func (c *clockWorld) frame() {
	c.Frame(dt)
	c.now += dt * 1000
}

func land(t *testing.T, s *Session, cw *clockWorld) {
	t.Helper()
	for i := 0; i < 120 && !s.Player().Grounded(); i++ {
		cw.frame()
	}
	if !s.Player().Grounded() {
		t.Fatal("player never landed on the ground ring")
	}
}

func start(t *testing.T, s *Session, cw *clockWorld, in *KeyboardInput) {
	t.Helper()
	land(t, s, cw)
	in.Latch(core.FrameOf(core.ActionJump))
	cw.frame()
	in.Latch(core.InputFrame{})
	if s.State() != StateRunning {
		t.Fatalf("state = %v after jump, expected running", s.State())
	}
}

func TestOnInitBuildsRing(t *testing.T) {
	s, cw, _ := newClockSession(t, classicParams())

	tiles := s.Tiles()
	if len(tiles) != 30 {
		t.Fatalf("tile count = %d, expected 30 for an 800 unit viewport", len(tiles))
	}
	for i, tile := range tiles {
		if tile.Index != i || tile.WorldX != float64(i)*54 {
			t.Errorf("tile %d = %+v", i, tile)
		}
	}
	if got := len(cw.Bodies(engine.KindGround)); got != 30 {
		t.Errorf("ground bodies = %d, expected 30", got)
	}
	if s.World().GroundY != 440 {
		t.Errorf("GroundY = %v, expected 480 - 40", s.World().GroundY)
	}
	if s.State() != StateWaiting {
		t.Errorf("initial state = %v", s.State())
	}
	if txt := cw.Text(TextStart); txt == nil || !txt.Visible {
		t.Error("start prompt should be visible")
	}
	if txt := cw.Text(TextGameOver); txt == nil || txt.Visible {
		t.Error("game over prompt should be hidden")
	}
}

func TestWaitingIsStatic(t *testing.T) {
	s, cw, in := newClockSession(t, classicParams())

	// Jump while still falling is ignored
	in.Latch(core.FrameOf(core.ActionJump))
	cw.frame()
	if s.State() != StateWaiting || s.Jumps() != 0 {
		t.Fatalf("airborne jump started the run: state=%v jumps=%d", s.State(), s.Jumps())
	}
	in.Latch(core.InputFrame{})

	land(t, s, cw)
	for i := 0; i < 30; i++ {
		cw.frame()
	}

	ws := s.World()
	if ws.ScrollX != 0 || ws.Score != 0 || ws.Started {
		t.Errorf("waiting world moved: %+v", ws)
	}
	if len(s.Obstacles()) != 0 {
		t.Error("obstacles spawned before start")
	}
}

func TestJumpStartsRunWithOneImpulse(t *testing.T) {
	p := classicParams()
	s, cw, in := newClockSession(t, p)
	land(t, s, cw)

	in.Latch(core.FrameOf(core.ActionJump))
	s.OnFrame(dt)

	if s.State() != StateRunning {
		t.Fatalf("state = %v, expected running", s.State())
	}
	if s.Jumps() != 1 {
		t.Errorf("jumps = %d, expected exactly one impulse", s.Jumps())
	}
	if s.Player().VelocityY() != p.JumpVelocity {
		t.Errorf("VelocityY = %v, expected %v", s.Player().VelocityY(), p.JumpVelocity)
	}
	if cw.Text(TextStart).Visible {
		t.Error("start prompt should hide once running")
	}
	if s.World().Score != 0 {
		t.Error("the starting frame does not score")
	}
	if !s.World().Started || s.World().Over {
		t.Errorf("flags = %+v", s.World())
	}
}

func TestTileCoverageWhileRunning(t *testing.T) {
	tests := []struct {
		name     string
		coverage float64
		tiles    int
	}{
		{"default", 2, 30},
		{"wide", 3, 45},
		{"below minimum", 1, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := classicParams()
			p.Coverage = tc.coverage
			p.FirstMinDelay, p.FirstMaxDelay = 1e9, 1e9
			s, cw, in := newClockSession(t, p)
			start(t, s, cw, in)

			if got := len(s.Tiles()); got != tc.tiles {
				t.Fatalf("ring has %d tiles, expected %d", got, tc.tiles)
			}

			for frame := 0; frame < 3000; frame++ {
				cw.frame()

				scrollX := cw.ScrollX()
				tiles := s.Tiles()
				sort.Slice(tiles, func(i, j int) bool { return tiles[i].WorldX < tiles[j].WorldX })

				if tiles[0].WorldX > scrollX {
					t.Fatalf("frame %d: gap at the left edge, first tile %v > scrollX %v", frame, tiles[0].WorldX, scrollX)
				}
				for i := 1; i < len(tiles); i++ {
					prevRight := tiles[i-1].WorldX + p.TileWidth
					if d := tiles[i].WorldX - prevRight; d >= 1 || d < 0 {
						t.Fatalf("frame %d: tiles %d/%d not contiguous (delta %v)", frame, tiles[i-1].Index, tiles[i].Index, d)
					}
				}
				if last := tiles[len(tiles)-1]; last.WorldX+p.TileWidth < scrollX+cw.Viewport() {
					t.Fatalf("frame %d: ring ends at %v before view edge %v", frame, last.WorldX+p.TileWidth, scrollX+cw.Viewport())
				}
				if bottom := s.Player().Y() + s.Player().Height(); bottom > s.World().GroundY+1 {
					t.Fatalf("frame %d: player fell through recycled ground (bottom %v)", frame, bottom)
				}
			}

			if cw.ScrollX() < 3*float64(len(s.Tiles()))*p.TileWidth {
				t.Fatalf("scrolled only %v, ring never wrapped", cw.ScrollX())
			}

			// Collision geometry follows the relocated tiles
			hit := map[float64]bool{}
			for _, b := range cw.Bodies(engine.KindGround) {
				if b.HitBox().X != b.X() {
					t.Errorf("tile body at %v has stale hit box at %v", b.X(), b.HitBox().X)
				}
				hit[b.X()] = true
			}
			for _, tile := range s.Tiles() {
				if !hit[tile.WorldX] {
					t.Errorf("tile %d at %v has no body", tile.Index, tile.WorldX)
				}
			}
		})
	}
}

func TestObstaclesBoundedAndScoreMonotonic(t *testing.T) {
	p := classicParams()
	p.MinDelay, p.MaxDelay = 100, 300
	s, cw, in := newClockSession(t, p)
	start(t, s, cw, in)

	// Drive the loop without physics so nothing collides
	prevRaw, prevShown := s.Score(), s.DisplayScore()
	for frame := 0; frame < 2000; frame++ {
		cw.now += dt * 1000
		s.OnFrame(dt)

		scrollX := cw.ScrollX()
		for _, o := range s.Obstacles() {
			if o.WorldX+o.Width < scrollX-p.DespawnBuffer {
				t.Fatalf("frame %d: obstacle at %v survived past the buffer (scrollX %v)", frame, o.WorldX, scrollX)
			}
		}
		if got := len(cw.Bodies(engine.KindObstacle)); got != len(s.Obstacles()) {
			t.Fatalf("frame %d: %d obstacle bodies for %d active obstacles", frame, got, len(s.Obstacles()))
		}

		if s.Score() != prevRaw+1 {
			t.Fatalf("frame %d: raw score %d, expected %d", frame, s.Score(), prevRaw+1)
		}
		if s.DisplayScore() != s.Score()/10 || s.DisplayScore() < prevShown {
			t.Fatalf("frame %d: displayed %d for raw %d", frame, s.DisplayScore(), s.Score())
		}
		prevRaw, prevShown = s.Score(), s.DisplayScore()
	}

	if len(s.SpawnTimes()) < 50 {
		t.Errorf("only %d spawns, expected a steady stream", len(s.SpawnTimes()))
	}
	if got := cw.Text(TextScore).Content; got != scoreLabel(s.DisplayScore()) {
		t.Errorf("score text = %q", got)
	}
}

func TestSpawnPacing(t *testing.T) {
	p := classicParams()
	s, cw, in := newClockSession(t, p)
	start(t, s, cw, in)
	cw.rolls = nil

	for frame := 0; frame < 60*120; frame++ {
		cw.now += dt * 1000
		s.OnFrame(dt)
	}

	spawns := s.SpawnTimes()
	if len(spawns) < 10 {
		t.Fatalf("only %d spawns in two minutes", len(spawns))
	}
	for _, r := range cw.rolls {
		if r != [2]int{p.MinDelay, p.MaxDelay} {
			t.Errorf("delay drawn from %v, expected [%d, %d]", r, p.MinDelay, p.MaxDelay)
		}
	}

	frameMs := dt * 1000
	for i := 1; i < len(spawns); i++ {
		d := spawns[i] - spawns[i-1]
		if d < float64(p.MinDelay) || d > float64(p.MaxDelay)+frameMs {
			t.Errorf("spawn %d came %vms after the previous one", i, d)
		}
	}
}

func TestSpawnExample(t *testing.T) {
	p := classicParams()
	s, cw, in := newClockSession(t, p)
	start(t, s, cw, in)
	before := len(s.Obstacles())

	cw.now = 10000
	s.schedule.NextSpawnTime = 9500
	s.OnFrame(dt)

	if len(s.Obstacles()) != before+1 {
		t.Fatalf("obstacles = %d, expected a spawn this frame", len(s.Obstacles()))
	}
	next := s.Schedule().NextSpawnTime
	if next < 11000 || next > 15300 {
		t.Errorf("NextSpawnTime = %v, expected within [11000, 15300]", next)
	}

	o := s.Obstacles()[len(s.Obstacles())-1]
	if want := SpawnX(cw.ScrollX(), 800, p.SpawnMargin); o.WorldX != want {
		t.Errorf("spawned at %v, expected %v", o.WorldX, want)
	}
	if o.SpawnedAt != 10000 {
		t.Errorf("SpawnedAt = %v", o.SpawnedAt)
	}
	bodies := cw.Bodies(engine.KindObstacle)
	if top := bodies[len(bodies)-1].Y(); top != s.World().GroundY-p.ObstacleHeight {
		t.Errorf("obstacle top = %v, expected resting on the ground", top)
	}
}

func TestFirstSpawn(t *testing.T) {
	t.Run("immediate", func(t *testing.T) {
		s, cw, in := newClockSession(t, classicParams())
		start(t, s, cw, in)
		s.OnFrame(dt)
		if len(s.Obstacles()) != 1 {
			t.Errorf("classic runs spawn on the first running frame, got %d", len(s.Obstacles()))
		}
	})

	t.Run("quick range", func(t *testing.T) {
		p := ParamsFrom(config.VariantConfig(config.VariantPlus))
		s, cw, in := newClockSession(t, p)
		land(t, s, cw)
		cw.rolls = nil

		in.Latch(core.FrameOf(core.ActionJump))
		startedAt := cw.now
		s.OnFrame(dt)

		if len(cw.rolls) != 1 || cw.rolls[0] != [2]int{p.FirstMinDelay, p.FirstMaxDelay} {
			t.Fatalf("first delay rolls = %v", cw.rolls)
		}
		next := s.Schedule().NextSpawnTime - startedAt
		if next < float64(p.FirstMinDelay) || next > float64(p.FirstMaxDelay) {
			t.Errorf("first spawn in %vms, expected [%d, %d]", next, p.FirstMinDelay, p.FirstMaxDelay)
		}
	})
}

func TestCollisionEndsRun(t *testing.T) {
	bank := audio.NewBank(nil)
	cw := &clockWorld{World: engine.NewWorld(engine.Config{Width: 800, Height: 480, Gravity: 1000, Seed: 7})}
	cw.LoadSound(SoundTheme, bank.Load(SoundTheme, true))
	cw.LoadSound(SoundCrash, bank.Load(SoundCrash, false))

	in := &KeyboardInput{}
	s := NewSession(cw, in, classicParams())
	cw.Register(s)

	if !bank.Get(SoundTheme).Playing() {
		t.Fatal("theme should loop from init")
	}

	start(t, s, cw, in)

	// Never jump again: the first block runs into the player
	for i := 0; i < 600 && s.State() == StateRunning; i++ {
		cw.frame()
	}

	if s.State() != StateGameOver {
		t.Fatalf("state = %v, expected game over", s.State())
	}
	if !cw.Paused() {
		t.Error("world should be frozen")
	}
	if s.Player().Tint() != core.ColorPlayerHit {
		t.Error("player should be tinted")
	}
	if bank.Get(SoundTheme).Playing() {
		t.Error("theme should stop on game over")
	}
	if !cw.Text(TextGameOver).Visible {
		t.Error("game over prompt should show")
	}

	// Frozen: no scrolling or scoring
	ws := s.World()
	for i := 0; i < 10; i++ {
		cw.frame()
	}
	if s.World() != ws {
		t.Errorf("world changed after game over: %+v -> %+v", ws, s.World())
	}

	// Jump does not restart, restart does
	in.Latch(core.FrameOf(core.ActionJump))
	cw.frame()
	if s.RestartRequested() {
		t.Error("jump should not restart a keyboard session")
	}
	in.Latch(core.FrameOf(core.ActionRestart))
	cw.frame()
	if !s.RestartRequested() {
		t.Fatal("restart not requested")
	}

	// Restart is a fresh world and session
	fresh, fw, _ := newClockSession(t, classicParams())
	if fresh.State() != StateWaiting || fresh.Score() != 0 || len(fresh.Obstacles()) != 0 {
		t.Errorf("fresh session = %v score=%d obstacles=%d", fresh.State(), fresh.Score(), len(fresh.Obstacles()))
	}
	if fw.ScrollX() != 0 || fresh.Schedule().NextSpawnTime != 0 {
		t.Error("fresh session should start at the origin with an unarmed schedule")
	}
}

func TestCollisionIgnoredOutsideRunning(t *testing.T) {
	s, cw, _ := newClockSession(t, classicParams())
	block := cw.AddStatic(engine.KindObstacle, core.NewBox(0, 0, 10, 10))

	s.OnCollision(s.Player(), block)
	if s.State() != StateWaiting || cw.Paused() {
		t.Error("collision before start should be ignored")
	}
}

func TestMissingSoundsAreSkipped(t *testing.T) {
	s, cw, in := newClockSession(t, classicParams())
	start(t, s, cw, in)

	block := cw.AddStatic(engine.KindObstacle, core.NewBox(0, 0, 10, 10))
	s.OnCollision(s.Player(), block)

	if s.State() != StateGameOver {
		t.Errorf("state = %v, expected game over without any sounds loaded", s.State())
	}
}

func TestTouchSession(t *testing.T) {
	p := ParamsFrom(config.VariantConfig(config.VariantTouch))
	cw := &clockWorld{World: engine.NewWorld(engine.Config{Width: 800, Height: 480, Gravity: 1000, Seed: 7})}
	in := &TouchInput{}
	s := NewSession(cw, in, p)
	cw.Register(s)
	land(t, s, cw)

	in.SetOverlay(true)
	in.Latch(core.FrameOf(core.ActionTap))
	cw.frame()
	if s.State() != StateWaiting {
		t.Fatal("tap under the orientation overlay should be ignored")
	}

	in.SetOverlay(false)
	cw.frame()
	if s.State() != StateRunning {
		t.Fatalf("tap should start the run, state = %v", s.State())
	}
	if cw.Text(TextStart).Content != "Tap to jump!" {
		t.Errorf("start text = %q", cw.Text(TextStart).Content)
	}
}
