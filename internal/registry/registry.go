// Package registry lets game variants register themselves from init() so
// the CLI, menu and SSH server can list and build them by id.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Game is the interface every playable runner variant implements.
// Games hold pure logic; the platform maps input, drives the clock and
// turns the screen buffer into terminal output.
type Game interface {
	// ID is the stable identifier used on the command line and in score storage.
	ID() string

	// Title is the name shown in menus.
	Title() string

	// Reset starts the game for a screen. The platform calls it once at
	// start, and on resize for games that are not Resizers; restarting a
	// finished run happens inside Step.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	// State returns the current score and phase.
	State() core.GameState
}

// Spectated is implemented by games that publish a serializable view of
// the current run.
type Spectated interface {
	SpectatorState() any
}

// Resizer is implemented by games that handle terminal resizes themselves.
// The platform calls Resize instead of Reset for every size change.
type Resizer interface {
	Resize(cfg core.RuntimeConfig)
}

// BestKeeper is implemented by games that show a persisted best score.
type BestKeeper interface {
	SetBest(score int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Factory creates a new instance of a game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a game factory under id.
// Panics if the id is taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	infos[id] = GameInfo{ID: id, Title: f().Title()}
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
