package runner

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// Tile is one entry of the recycled ground ring.
type Tile struct {
	Index  int     // Position in the ring, 0..N-1
	WorldX float64 // Left edge, moved forward on recycle
}

// Obstacle is an active block.
type Obstacle struct {
	WorldX    float64
	Width     float64
	SpawnedAt float64 // Frame time in ms
}

// SpawnSchedule holds the frame time after which the next obstacle spawns.
type SpawnSchedule struct {
	NextSpawnTime float64
}

// TileCount returns the ring size covering twice the viewport.
func TileCount(viewport, tileWidth float64) int {
	return RingSize(viewport, tileWidth, config.MinCoverage)
}

// RingSize returns the number of tiles needed to cover coverage viewports.
// Coverage below config.MinCoverage is raised to it.
func RingSize(viewport, tileWidth, coverage float64) int {
	if viewport <= 0 || tileWidth <= 0 {
		return 0
	}
	if coverage < config.MinCoverage {
		coverage = config.MinCoverage
	}
	return int(math.Ceil(viewport * coverage / tileWidth))
}

// RecycleTiles moves every tile whose right edge fell behind scrollX to the
// back of the ring and returns the indices of the moved tiles.
func RecycleTiles(tiles []Tile, tileWidth, scrollX float64) []int {
	ring := tileWidth * float64(len(tiles))
	if ring <= 0 {
		return nil
	}

	var moved []int
	for i := range tiles {
		if tiles[i].WorldX+tileWidth >= scrollX {
			continue
		}
		for tiles[i].WorldX+tileWidth < scrollX {
			tiles[i].WorldX += ring
		}
		moved = append(moved, i)
	}
	return moved
}

// Expired reports whether an obstacle's right edge is more than buffer units
// behind scrollX.
func Expired(o Obstacle, scrollX, buffer float64) bool {
	return o.WorldX+o.Width < scrollX-buffer
}

// ExpireObstacles returns the obstacles still in play and the indices of the
// removed ones. The input slice is not modified.
func ExpireObstacles(obstacles []Obstacle, scrollX, buffer float64) (kept []Obstacle, removed []int) {
	kept = make([]Obstacle, 0, len(obstacles))
	for i, o := range obstacles {
		if Expired(o, scrollX, buffer) {
			removed = append(removed, i)
			continue
		}
		kept = append(kept, o)
	}
	return kept, removed
}

// SpawnX places a new obstacle margin units inside the right edge of the view.
func SpawnX(scrollX, viewport, margin float64) float64 {
	return scrollX + viewport - margin
}

// ShouldSpawn reports whether the spawn deadline has passed.
func ShouldSpawn(now float64, s SpawnSchedule) bool {
	return now > s.NextSpawnTime
}

// DisplayScore converts a raw frame count into the shown score.
func DisplayScore(raw, divisor int) int {
	if divisor <= 0 || raw <= 0 {
		return 0
	}
	return raw / divisor
}
