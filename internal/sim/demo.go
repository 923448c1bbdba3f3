package sim

import (
	"math"

	"github.com/vovakirdan/trackrace/internal/track"
)

// DemoCenter is where DemoCourse places the demonstrated tile.
var DemoCenter = track.TC(1, 1)

// DemoCourse builds a small course showing how cars use a tile type: every
// entrance is fed by a Finish tile through a straight, and every exit leads
// onto a straight.
func DemoCourse(t track.TileType) track.Course {
	entries := []track.Entry{{Pos: DemoCenter, Tile: track.DefaultTile(t)}}
	for _, r := range track.Rotations {
		d := r.Apply(track.Up)
		if track.IsEntranceID(t, d) {
			entries = append(entries,
				track.Entry{Pos: DemoCenter.StepBack(d), Tile: track.Tile{Type: track.Straight, Transform: r}},
				track.Entry{Pos: DemoCenter.StepBack(d).StepBack(d), Tile: track.Tile{Type: track.Finish, Transform: r}},
			)
		}
		if track.IsExitID(t, d) {
			entries = append(entries, track.Entry{Pos: DemoCenter.Step(d), Tile: track.Tile{Type: track.Straight, Transform: r}})
		}
	}
	return track.CourseFromEntries(entries)
}

// NewDemo returns an endless simulation of DemoCourse(t) with cars arriving
// at random.
func NewDemo(t track.TileType, seed int64) *Simulator {
	return New(DemoCourse(t), math.MaxInt, WithSeed(seed), WithSpawnPolicy(Random(4)))
}
