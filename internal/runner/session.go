// Package runner implements the endless runner loop: a camera that scrolls
// at a fixed speed, a recycled ring of ground tiles, timed obstacle spawns,
// a frame-counting score and the waiting/running/game-over state machine.
//
// A Session is one play session. It is registered with an engine world and
// driven through the engine's Lifecycle callbacks; restarting means building
// a new world and a new Session.
package runner

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/engine"
)

// State is the session phase.
type State int

const (
	StateWaiting State = iota
	StateRunning
	StateGameOver
)

// String returns the phase name.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Lifecycle is the callback set a session exposes to the engine.
type Lifecycle = engine.Lifecycle

// World is the engine surface the session drives.
// *engine.World implements it.
type World interface {
	Now() float64
	RandomInt(lo, hi int) int
	Viewport() float64
	Height() float64
	ScrollX() float64
	SetScrollX(x float64)
	SetBackgroundOffset(x float64)
	Pause()
	AddStatic(kind engine.Kind, box core.Box) *engine.Body
	AddDynamic(kind engine.Kind, box core.Box) *engine.Body
	Destroy(b *engine.Body)
	Collider(a, b engine.Kind)
	Overlap(a, b engine.Kind)
	AddText(id, content string, row int, c core.Color) *engine.Text
	Sound(name string) audio.Sound
}

// Sound names looked up in the world.
const (
	SoundTheme = "theme"
	SoundJump  = "jump"
	SoundCrash = "crash"
)

// Overlay text ids.
const (
	TextStart    = "start"
	TextGameOver = "game_over"
	TextScore    = "score"
)

// Animation names set on the player body.
const (
	AnimWalk = "walk"
	AnimIdle = ""
)

// Params are the tunables of one session.
type Params struct {
	Speed    float64 // Camera units per frame
	Parallax float64 // Background scroll factor

	PlayerOffset float64
	PlayerWidth  float64
	PlayerHeight float64
	DropHeight   float64
	JumpVelocity float64

	TileWidth  float64
	TileHeight float64
	Coverage   float64

	ObstacleWidth  float64
	ObstacleHeight float64
	SpawnMargin    float64
	DespawnBuffer  float64
	MinDelay       int
	MaxDelay       int
	FirstMinDelay  int // 0 spawns on the first running frame
	FirstMaxDelay  int

	ScoreDivisor int

	StartText    string
	GameOverText string
}

// ParamsFrom builds session parameters from a runner config.
func ParamsFrom(cfg config.RunnerConfig) Params {
	p := Params{
		Speed:          cfg.Scroll.Speed,
		Parallax:       cfg.Scroll.Parallax,
		PlayerOffset:   cfg.Player.Offset,
		PlayerWidth:    cfg.Player.Width,
		PlayerHeight:   cfg.Player.Height,
		DropHeight:     cfg.Player.DropHeight,
		JumpVelocity:   cfg.Player.JumpVelocity,
		TileWidth:      cfg.Ground.TileWidth,
		TileHeight:     cfg.Ground.TileHeight,
		Coverage:       cfg.Ground.Coverage,
		ObstacleWidth:  cfg.Obstacles.Width,
		ObstacleHeight: cfg.Obstacles.Height,
		SpawnMargin:    cfg.Obstacles.SpawnMargin,
		DespawnBuffer:  cfg.Obstacles.DespawnBuffer,
		MinDelay:       cfg.Obstacles.MinDelay,
		MaxDelay:       cfg.Obstacles.MaxDelay,
		FirstMinDelay:  cfg.Obstacles.FirstMinDelay,
		FirstMaxDelay:  cfg.Obstacles.FirstMaxDelay,
		ScoreDivisor:   cfg.Score.Divisor,
		StartText:      "Press SPACE to jump!",
		GameOverText:   "Game Over!!\nPress R to Restart",
	}
	if cfg.Input.Mode == config.InputTouch {
		p.StartText = "Tap to jump!"
		p.GameOverText = "Game Over!!\nTap to Restart"
	}
	return p
}

// WorldState is the session's view of the run.
type WorldState struct {
	ScrollX float64
	GroundY float64
	Started bool
	Over    bool
	Score   int // Raw frames survived
}

// Session is one play session of the runner.
type Session struct {
	w      World
	in     InputSource
	p      Params
	state  State
	score  int
	ground float64

	player     *engine.Body
	tiles      []Tile
	tileBodies []*engine.Body
	obstacles  []Obstacle
	obsBodies  []*engine.Body
	schedule   SpawnSchedule
	spawns     []float64 // Frame times of every spawn this session

	startText *engine.Text
	overText  *engine.Text
	scoreText *engine.Text

	jumps   int
	restart bool
}

var _ Lifecycle = (*Session)(nil)

// NewSession creates a session. Nothing is built until OnInit.
func NewSession(w World, in InputSource, p Params) *Session {
	return &Session{
		w:     w,
		in:    in,
		p:     p,
		state: StateWaiting,
	}
}

// OnInit builds the ground ring, the player, overlays and collision rules.
func (s *Session) OnInit() {
	s.ground = s.w.Height() - s.p.TileHeight

	count := RingSize(s.w.Viewport(), s.p.TileWidth, s.p.Coverage)
	s.tiles = make([]Tile, count)
	s.tileBodies = make([]*engine.Body, count)
	for i := range s.tiles {
		x := float64(i) * s.p.TileWidth
		s.tiles[i] = Tile{Index: i, WorldX: x}
		s.tileBodies[i] = s.w.AddStatic(engine.KindGround, core.NewBox(x, s.ground, s.p.TileWidth, s.p.TileHeight))
	}

	s.player = s.w.AddDynamic(engine.KindPlayer, core.NewBox(
		s.w.ScrollX()+s.p.PlayerOffset,
		s.ground-s.p.DropHeight-s.p.PlayerHeight,
		s.p.PlayerWidth,
		s.p.PlayerHeight,
	))
	s.player.SetTint(core.ColorPlayer)

	s.w.Collider(engine.KindPlayer, engine.KindGround)
	s.w.Overlap(engine.KindPlayer, engine.KindObstacle)

	s.scoreText = s.w.AddText(TextScore, scoreLabel(0), 0, core.ColorText)
	s.startText = s.w.AddText(TextStart, s.p.StartText, -1, core.ColorAccent)
	s.overText = s.w.AddText(TextGameOver, s.p.GameOverText, -1, core.ColorText)
	s.overText.SetVisible(false)

	if theme := s.w.Sound(SoundTheme); theme != nil {
		theme.Play()
	}
}

// OnFrame advances the session by one frame.
func (s *Session) OnFrame(dt float64) {
	switch s.state {
	case StateGameOver:
		if s.in.RestartPressed() {
			s.restart = true
		}
		return
	case StateWaiting:
		if s.in.JumpPressed() && s.player.Grounded() {
			s.jump()
			s.state = StateRunning
			s.startText.SetVisible(false)
			s.armFirstSpawn()
		}
		return
	}

	scrollX := s.w.ScrollX() + s.p.Speed
	s.w.SetScrollX(scrollX)
	s.w.SetBackgroundOffset(scrollX * s.p.Parallax)
	s.player.SetX(scrollX + s.p.PlayerOffset)

	for _, i := range RecycleTiles(s.tiles, s.p.TileWidth, scrollX) {
		s.tileBodies[i].SetX(s.tiles[i].WorldX)
		s.tileBodies[i].Refresh()
	}
	s.expire(scrollX)

	if s.in.JumpPressed() && s.player.Grounded() {
		s.jump()
	}
	if s.player.Grounded() {
		s.player.SetAnim(AnimWalk)
	} else {
		s.player.SetAnim(AnimIdle)
	}

	s.score++
	s.scoreText.SetText(scoreLabel(s.DisplayScore()))

	now := s.w.Now()
	if ShouldSpawn(now, s.schedule) {
		s.spawn(now)
		s.schedule.NextSpawnTime = now + float64(s.w.RandomInt(s.p.MinDelay, s.p.MaxDelay))
	}
}

// OnCollision ends the run when the player touches an obstacle.
func (s *Session) OnCollision(a, b *engine.Body) {
	if s.state != StateRunning {
		return
	}
	if a.Kind() != engine.KindPlayer || b.Kind() != engine.KindObstacle {
		return
	}

	s.w.Pause()
	s.player.SetTint(core.ColorPlayerHit)
	s.player.SetAnim(AnimIdle)
	if theme := s.w.Sound(SoundTheme); theme != nil {
		theme.Stop()
	}
	if crash := s.w.Sound(SoundCrash); crash != nil {
		crash.Play()
	}
	s.overText.SetVisible(true)
	s.state = StateGameOver
}

func (s *Session) jump() {
	s.player.SetVelocityY(s.p.JumpVelocity)
	s.jumps++
	if snd := s.w.Sound(SoundJump); snd != nil {
		snd.Play()
	}
}

func (s *Session) armFirstSpawn() {
	if s.p.FirstMaxDelay <= 0 {
		s.schedule.NextSpawnTime = 0
		return
	}
	s.schedule.NextSpawnTime = s.w.Now() + float64(s.w.RandomInt(s.p.FirstMinDelay, s.p.FirstMaxDelay))
}

func (s *Session) spawn(now float64) {
	x := SpawnX(s.w.ScrollX(), s.w.Viewport(), s.p.SpawnMargin)
	body := s.w.AddStatic(engine.KindObstacle, core.NewBox(x, s.ground-s.p.ObstacleHeight, s.p.ObstacleWidth, s.p.ObstacleHeight))
	body.SetTint(core.ColorBlock)

	s.obstacles = append(s.obstacles, Obstacle{WorldX: x, Width: s.p.ObstacleWidth, SpawnedAt: now})
	s.obsBodies = append(s.obsBodies, body)
	s.spawns = append(s.spawns, now)
}

func (s *Session) expire(scrollX float64) {
	kept, removed := ExpireObstacles(s.obstacles, scrollX, s.p.DespawnBuffer)
	if len(removed) == 0 {
		return
	}

	bodies := make([]*engine.Body, 0, len(kept))
	next := 0
	for i, b := range s.obsBodies {
		if next < len(removed) && removed[next] == i {
			s.w.Destroy(b)
			next++
			continue
		}
		bodies = append(bodies, b)
	}
	s.obstacles = kept
	s.obsBodies = bodies
}

func scoreLabel(n int) string {
	return fmt.Sprintf("Score: %d", n)
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// World returns a snapshot of the run.
func (s *Session) World() WorldState {
	return WorldState{
		ScrollX: s.w.ScrollX(),
		GroundY: s.ground,
		Started: s.state != StateWaiting,
		Over:    s.state == StateGameOver,
		Score:   s.score,
	}
}

// Score returns the raw frame count.
func (s *Session) Score() int { return s.score }

// DisplayScore returns the shown score.
func (s *Session) DisplayScore() int { return DisplayScore(s.score, s.p.ScoreDivisor) }

// Tiles returns a copy of the ground ring.
func (s *Session) Tiles() []Tile {
	return append([]Tile(nil), s.tiles...)
}

// Obstacles returns a copy of the active obstacles.
func (s *Session) Obstacles() []Obstacle {
	return append([]Obstacle(nil), s.obstacles...)
}

// Schedule returns the spawn schedule.
func (s *Session) Schedule() SpawnSchedule { return s.schedule }

// SpawnTimes returns the frame time of every spawn so far.
func (s *Session) SpawnTimes() []float64 {
	return append([]float64(nil), s.spawns...)
}

// Jumps returns the number of jump impulses applied.
func (s *Session) Jumps() int { return s.jumps }

// RestartRequested reports that the player asked for a new session.
func (s *Session) RestartRequested() bool { return s.restart }

// Player returns the player body.
func (s *Session) Player() *engine.Body { return s.player }

// Params returns the session parameters.
func (s *Session) Params() Params { return s.p }
