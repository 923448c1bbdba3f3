// Package sim runs races on a finished course: a round-based traffic
// simulator, a tracker that records history and detects loops, race sessions
// that judge a level and tile demonstrations.
// This package is UI-agnostic and deterministic for a given seed.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/trackrace/internal/track"
)

// MaxRounds caps the length of every race.
const MaxRounds = 1000

// CarData is a car sitting on a tile edge, about to drive onto the tile
// ahead of it.
type CarData struct {
	ID  int
	Pos track.CarCoord
	Dir track.Direction
}

// tilePos returns the centre of the tile the car is about to enter.
func (c CarData) tilePos() track.CarCoord {
	return c.Pos.Add(c.Dir)
}

// EventKind identifies a simulator event.
type EventKind int

const (
	EventRound    EventKind = iota // Cars holds every car after the round
	EventFinished                  // ID reached a Finish tile
	EventCrashed                   // ID drove off the road
)

func (k EventKind) String() string {
	switch k {
	case EventRound:
		return "round"
	case EventFinished:
		return "finished"
	case EventCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Event is one entry of the simulator's output stream.
type Event struct {
	Kind EventKind
	Cars []CarData // EventRound only
	ID   int       // EventFinished and EventCrashed only
}

// RoundEvent builds an EventRound.
func RoundEvent(cars []CarData) Event {
	return Event{Kind: EventRound, Cars: cars}
}

// FinishedEvent builds an EventFinished.
func FinishedEvent(id int) Event {
	return Event{Kind: EventFinished, ID: id}
}

// CrashedEvent builds an EventCrashed.
func CrashedEvent(id int) Event {
	return Event{Kind: EventCrashed, ID: id}
}

// SpawnPolicy decides whether a car enters at a spawn point in a round.
type SpawnPolicy struct {
	// Chance is the number of eighths of rounds in which a free spawn
	// point admits a car. 8 or more means always.
	Chance uint8
}

// Always admits a car whenever the spawn point is free.
var Always = SpawnPolicy{Chance: 8}

// Random admits a car with probability n/8.
func Random(n uint8) SpawnPolicy {
	return SpawnPolicy{Chance: n}
}

// IsAlways reports whether the policy never rejects a car.
func (p SpawnPolicy) IsAlways() bool {
	return p.Chance >= 8
}

func (p SpawnPolicy) String() string {
	if p.IsAlways() {
		return "always"
	}
	return fmt.Sprintf("random(%d/8)", p.Chance)
}

type spawn struct {
	pos track.CarCoord
	dir track.Direction
}

// Simulator advances cars over a course one round at a time.
type Simulator struct {
	course  track.Course
	starts  []spawn
	round   int
	cars    []CarData
	policy  SpawnPolicy
	rng     *rand.Rand
	nextCar int
	maxCars int
	stream  []Event
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed seeds the generator used by random spawn policies.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSpawnPolicy sets the initial spawn policy.
func WithSpawnPolicy(p SpawnPolicy) Option {
	return func(s *Simulator) {
		s.policy = p
	}
}

// New creates a simulator that will release up to maxCars cars from the
// Finish tiles of course.
func New(course track.Course, maxCars int, opts ...Option) *Simulator {
	s := &Simulator{
		course:  course,
		policy:  Always,
		maxCars: maxCars,
	}
	// Spawn points follow the row-major order of their Finish tiles.
	for _, pos := range course.FinishPositions() {
		tile, _ := course.Get(pos)
		dir := tile.Transform.Apply(track.Up)
		s.starts = append(s.starts, spawn{pos: pos.Car().Add(dir), dir: dir})
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	return s
}

// SetSpawnPolicy changes the spawn policy for later rounds.
func (s *Simulator) SetSpawnPolicy(p SpawnPolicy) {
	s.policy = p
}

// Policy returns the current spawn policy.
func (s *Simulator) Policy() SpawnPolicy {
	return s.policy
}

// Pending reports whether some cars have not entered the course yet.
func (s *Simulator) Pending() bool {
	return s.nextCar < s.maxCars
}

// Events drains the pending events.
func (s *Simulator) Events() []Event {
	ev := s.stream
	s.stream = nil
	return ev
}

// Course returns the simulated course.
func (s *Simulator) Course() track.Course {
	return s.course
}

// Cars returns the cars still racing.
func (s *Simulator) Cars() []CarData {
	return s.cars
}

// Round returns the number of completed rounds.
func (s *Simulator) Round() int {
	return s.round
}

// IsFinished reports whether the race is over: the round cap is hit, or all
// cars have been released and none are left.
func (s *Simulator) IsFinished() bool {
	return s.round >= MaxRounds || (len(s.cars) == 0 && s.nextCar >= s.maxCars)
}

func (s *Simulator) tileAt(pos track.CarCoord) (track.Tile, bool) {
	return s.course.Get(pos.Tile())
}

// outDir returns the direction a car leaves tile in when it entered while
// moving in inDir.
func (s *Simulator) outDir(tile track.Tile, inDir track.Direction) track.Direction {
	phase := (uint8(s.round)^tile.Offset)&1 != 0
	switch tile.Type {
	case track.Straight, track.LightIntersection, track.YieldIntersection:
		return inDir
	case track.Turn:
		return tile.Transform.Apply(track.Left)
	case track.LightTurns:
		if phase {
			return tile.Transform.Apply(track.Right)
		}
		return tile.Transform.Apply(track.Left)
	case track.LightForwardTurn:
		if phase {
			return tile.Transform.Apply(track.Up)
		}
		return tile.Transform.Apply(track.Left)
	case track.Merge:
		return tile.Transform.Apply(track.Up)
	default:
		panic(fmt.Sprintf("sim: no way out of %v tile", tile.Type))
	}
}

func (s *Simulator) outPos(tilePos track.CarCoord, inDir track.Direction) track.CarCoord {
	tile, ok := s.tileAt(tilePos)
	if !ok {
		panic(fmt.Sprintf("sim: no tile at %v", tilePos))
	}
	return tilePos.Add(s.outDir(tile, inDir))
}

func (s *Simulator) advance(car CarData) CarData {
	tp := car.tilePos()
	tile, _ := s.tileAt(tp)
	dir := s.outDir(tile, car.Dir)
	return CarData{ID: car.ID, Pos: tp.Add(dir), Dir: dir}
}

type carStatus int

const (
	statusRacing carStatus = iota
	statusFinished
	statusCrashed
)

// classify looks at the tile ahead of a car after it moved.
func (s *Simulator) classify(car CarData) carStatus {
	tile, ok := s.tileAt(car.tilePos())
	if !ok || !tile.IsEntrance(car.Dir) {
		return statusCrashed
	}
	if tile.Type == track.Finish {
		return statusFinished
	}
	return statusRacing
}

func (s *Simulator) admit() bool {
	if s.policy.IsAlways() {
		return true
	}
	return s.rng.Intn(8) < int(s.policy.Chance)
}

// RunRound advances every car by one tile, spawns new cars and queues the
// resulting events.
func (s *Simulator) RunRound() {
	r := newRoundRunner(s)
	r.moveCars()
	r.addCars()
	s.stream = append(s.stream, RoundEvent(append([]CarData(nil), r.next...)))
	s.cars = s.cars[:0:0]
	for _, car := range r.next {
		switch s.classify(car) {
		case statusRacing:
			s.cars = append(s.cars, car)
		case statusFinished:
			s.stream = append(s.stream, FinishedEvent(car.ID))
		case statusCrashed:
			s.stream = append(s.stream, CrashedEvent(car.ID))
		}
	}
	s.round++
}

// Run advances rounds until the race finishes or stop returns true, and
// returns every event produced.
func (s *Simulator) Run(stop func() bool) []Event {
	var out []Event
	for !s.IsFinished() && (stop == nil || !stop()) {
		s.RunRound()
		out = append(out, s.Events()...)
	}
	return out
}
