package sim

import (
	"context"

	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/track"
)

// Result summarises a finished race.
type Result struct {
	Finishes     []int
	Crashes      []bool
	Solved       bool
	LoopDetected bool
	Solve        levels.SolveData
}

// Race runs a level's cars over a course and keeps a replay cursor into the
// recorded history. Rounds are simulated lazily as the cursor moves past the
// end of the history.
type Race struct {
	level   levels.Level
	sim     *Simulator
	tracker *Tracker
	cursor  int
	done    bool
}

// NewRace prepares a race of level on course.
func NewRace(level levels.Level, course track.Course, opts ...Option) *Race {
	return &Race{
		level:   level,
		sim:     New(course, level.Cars, opts...),
		tracker: NewTracker(level.Cars),
	}
}

// Level returns the level being raced.
func (r *Race) Level() levels.Level {
	return r.level
}

// Course returns the raced course.
func (r *Race) Course() track.Course {
	return r.sim.Course()
}

// Tracker returns the race history.
func (r *Race) Tracker() *Tracker {
	return r.tracker
}

// IsFinished reports whether no further rounds will be simulated.
func (r *Race) IsFinished() bool {
	return r.sim.IsFinished() || r.tracker.IsLoopDetected()
}

// SimRound simulates one more round. It returns false once the race is
// finished.
func (r *Race) SimRound() bool {
	if r.IsFinished() {
		r.finish()
		return false
	}
	r.sim.RunRound()
	// A random policy can repeat a state while cars still wait to enter, so
	// loops only count once every car is on the course.
	r.tracker.WatchLoops(r.sim.Policy().IsAlways() || !r.sim.Pending())
	for _, ev := range r.sim.Events() {
		r.tracker.ProcessEvent(ev)
	}
	if r.IsFinished() {
		r.finish()
	}
	return true
}

func (r *Race) finish() {
	if r.done {
		return
	}
	r.done = true
	r.tracker.ComputeFinalCrashes(r.level.Cars)
}

// Round returns the replay cursor. Round 0 is the empty track before any
// car spawned.
func (r *Race) Round() int {
	return r.cursor
}

// Last returns the index of the last recorded round.
func (r *Race) Last() int {
	return r.tracker.RoundsAvailable() - 1
}

// Forward moves the cursor one round ahead, simulating if needed. It returns
// false at the end of the race.
func (r *Race) Forward() bool {
	if r.cursor >= r.Last() {
		r.SimRound()
	}
	if r.cursor >= r.Last() {
		return false
	}
	r.cursor++
	return true
}

// StepBack moves the cursor one round back.
func (r *Race) StepBack() bool {
	if r.cursor == 0 {
		return false
	}
	r.cursor--
	return true
}

// Seek moves the cursor to round n, clamped to the race length.
func (r *Race) Seek(n int) {
	if n < 0 {
		n = 0
	}
	for n > r.Last() && r.SimRound() {
	}
	r.cursor = min(n, r.Last())
}

// End simulates the rest of the race and moves the cursor to its last round.
func (r *Race) End() {
	for r.SimRound() {
	}
	r.cursor = r.Last()
}

// Cars returns the cars at the cursor.
func (r *Race) Cars() []CarData {
	return r.CarsAt(r.cursor)
}

// CarsAt returns the recorded cars of a round, or nil if it was not
// simulated yet.
func (r *Race) CarsAt(round int) []CarData {
	history := r.tracker.Cars()
	if round < 0 || round >= len(history) {
		return nil
	}
	return history[round]
}

// Run simulates the race to completion, checking ctx before every round.
func (r *Race) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.SimRound() {
			return nil
		}
	}
}

// Result judges the race so far. Cars count as crashed only after the race
// is finished.
func (r *Race) Result() Result {
	return Result{
		Finishes:     append([]int(nil), r.tracker.Finishes()...),
		Crashes:      append([]bool(nil), r.tracker.Crashes()...),
		Solved:       r.IsFinished() && r.tracker.IsSolved(r.level.Finish),
		LoopDetected: r.tracker.IsLoopDetected(),
		Solve: levels.SolveData{
			Tiles: r.sim.Course().Len(),
			Turns: r.tracker.RoundsAvailable() - 1,
		},
	}
}

// Markers labels cars for track.RenderASCII with the last digit of their id.
func Markers(cars []CarData) []track.Marker {
	out := make([]track.Marker, len(cars))
	for i, c := range cars {
		out[i] = track.Marker{Pos: c.Pos, Label: rune('0' + c.ID%10)}
	}
	return out
}
