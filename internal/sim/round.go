package sim

import "github.com/vovakirdan/trackrace/internal/track"

type moveStatus uint8

const (
	moveUnknown moveStatus = iota
	moveMoving
	moveStopped
)

// roundRunner holds the scratch state of a single round.
type roundRunner struct {
	sim    *Simulator
	status []moveStatus
	grid   map[track.CarCoord]int
	next   []CarData
}

func newRoundRunner(s *Simulator) *roundRunner {
	grid := make(map[track.CarCoord]int, len(s.cars))
	for i, c := range s.cars {
		grid[c.Pos] = i
	}
	return &roundRunner{
		sim:    s,
		status: make([]moveStatus, len(s.cars)),
		grid:   grid,
		next:   make([]CarData, 0, len(s.cars)+len(s.starts)),
	}
}

func (r *roundRunner) carAt(pos track.CarCoord) (CarData, bool) {
	i, ok := r.grid[pos]
	if !ok {
		return CarData{}, false
	}
	return r.sim.cars[i], true
}

// isEnteringTile reports whether a car is about to drive onto the tile at
// tilePos while moving in fromDir.
func (r *roundRunner) isEnteringTile(tilePos track.CarCoord, fromDir track.Direction) bool {
	c, ok := r.carAt(tilePos.Sub(fromDir))
	return ok && c.Dir == fromDir
}

// isBlockedIncoming applies the right-of-way rule of the tile at tilePos to
// a car arriving while moving in dir.
func (r *roundRunner) isBlockedIncoming(tilePos track.CarCoord, dir track.Direction) bool {
	tile, ok := r.sim.tileAt(tilePos)
	if !ok {
		return false
	}
	norm := tile.Transform.ApplyInverse(dir)
	switch tile.Type {
	case track.LightIntersection:
		return (int(norm)^r.sim.round^int(tile.Offset)^1)&1 != 0
	case track.YieldIntersection:
		return norm == track.Up && r.isEnteringTile(tilePos, tile.Transform.Apply(track.Left))
	case track.Merge:
		return norm == track.Left && r.isEnteringTile(tilePos, tile.Transform.Apply(track.Up))
	default:
		return false
	}
}

// frame is a pending decision for car, waiting on dep when dep >= 0.
type frame struct {
	car int
	dep int
}

// tryMove decides whether car i moves this round. A car is marked moving
// before its blocker is examined, so a closed ring of cars moves together.
// The blocker chain is walked with an explicit stack.
func (r *roundRunner) tryMove(i int) bool {
	switch r.status[i] {
	case moveMoving:
		return true
	case moveStopped:
		return false
	}
	r.status[i] = moveMoving
	stack := []frame{{car: i, dep: -1}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.dep >= 0 {
			r.settle(top.car, r.status[top.dep] == moveMoving)
			stack = stack[:len(stack)-1]
			continue
		}

		car := r.sim.cars[top.car]
		tp := car.tilePos()
		if r.isBlockedIncoming(tp, car.Dir) {
			r.settle(top.car, false)
			stack = stack[:len(stack)-1]
			continue
		}
		n, occupied := r.grid[r.sim.outPos(tp, car.Dir)]
		if !occupied {
			r.settle(top.car, true)
			stack = stack[:len(stack)-1]
			continue
		}
		switch r.status[n] {
		case moveMoving:
			r.settle(top.car, true)
			stack = stack[:len(stack)-1]
		case moveStopped:
			r.settle(top.car, false)
			stack = stack[:len(stack)-1]
		default:
			top.dep = n
			r.status[n] = moveMoving
			stack = append(stack, frame{car: n, dep: -1})
		}
	}
	return r.status[i] == moveMoving
}

// settle records the outcome for car i and emits its new state.
func (r *roundRunner) settle(i int, moving bool) {
	car := r.sim.cars[i]
	if moving {
		r.next = append(r.next, r.sim.advance(car))
		return
	}
	r.status[i] = moveStopped
	r.next = append(r.next, car)
}

func (r *roundRunner) moveCars() {
	for i := range r.sim.cars {
		r.tryMove(i)
	}
}

// isSpotFree reports whether a car can spawn at pos: it is empty or its car
// is leaving this round.
func (r *roundRunner) isSpotFree(pos track.CarCoord) bool {
	i, ok := r.grid[pos]
	return !ok || r.status[i] == moveMoving
}

func (r *roundRunner) addCars() {
	s := r.sim
	for _, st := range s.starts {
		if s.nextCar < s.maxCars && r.isSpotFree(st.pos) && s.admit() {
			r.next = append(r.next, CarData{ID: s.nextCar, Pos: st.pos, Dir: st.dir})
			s.nextCar++
		}
	}
}
