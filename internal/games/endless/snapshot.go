package endless

// Snapshot is the state of a run published to spectators.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Game      string    `json:"game"`
	Run       int       `json:"run"`
	Tick      uint64    `json:"tick"`
	State     string    `json:"state"`
	Score     int       `json:"score"`
	RawScore  int       `json:"raw_score"`
	Best      int       `json:"best"`
	ScrollX   float64   `json:"scroll_x"`
	GroundY   float64   `json:"ground_y"`
	PlayerX   float64   `json:"player_x"`
	PlayerY   float64   `json:"player_y"`
	Grounded  bool      `json:"grounded"`
	Obstacles []float64 `json:"obstacles"` // Left edges in world units
}

// Snapshot returns the current run as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Game: g.ID()}
	}

	ws := g.session.World()
	p := g.session.Player()

	obstacles := make([]float64, 0, len(g.session.Obstacles()))
	for _, o := range g.session.Obstacles() {
		obstacles = append(obstacles, o.WorldX)
	}

	return Snapshot{
		Game:      g.ID(),
		Run:       g.runs,
		Tick:      g.tick,
		State:     g.session.State().String(),
		Score:     g.session.DisplayScore(),
		RawScore:  ws.Score,
		Best:      g.best,
		ScrollX:   ws.ScrollX,
		GroundY:   ws.GroundY,
		PlayerX:   p.X(),
		PlayerY:   p.Y(),
		Grounded:  p.Grounded(),
		Obstacles: obstacles,
	}
}

// SpectatorState is the payload published to the spectator feed.
func (g *Game) SpectatorState() any { return g.Snapshot() }
