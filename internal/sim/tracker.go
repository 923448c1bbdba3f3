package sim

import (
	"fmt"
	"hash/fnv"
)

// history stores per-round car snapshots indexed by content hash. Two
// snapshots only match when they are at the same round parity, since light
// phases follow the parity.
type history struct {
	data  [][]CarData
	index map[uint64][]int
}

func snapshotHash(odd bool, cars []CarData) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "P:%v;", odd)
	for _, c := range cars {
		fmt.Fprintf(h, "%d:%d:%d:%d,", c.ID, c.Pos.X, c.Pos.Y, c.Dir)
	}
	return h.Sum64()
}

func sameCars(a, b []CarData) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// add appends a snapshot and reports whether an equal one was seen before.
// Unindexed snapshots are kept for replay but never matched.
func (h *history) add(cars []CarData, index bool) bool {
	n := len(h.data)
	h.data = append(h.data, cars)
	if !index {
		return false
	}
	key := snapshotHash(n&1 != 0, cars)
	found := false
	for _, j := range h.index[key] {
		if j&1 == n&1 && sameCars(h.data[j], cars) {
			found = true
			break
		}
	}
	if h.index == nil {
		h.index = make(map[uint64][]int)
	}
	h.index[key] = append(h.index[key], n)
	return found
}

// Tracker consumes simulator events and keeps everything needed to replay
// and judge a race.
type Tracker struct {
	rounds   history
	finished []int
	crashed  []bool
	loop     bool
	paused   bool
}

// NewTracker creates a tracker for a race with numCars cars. The history
// starts with an empty snapshot for the state before the first round.
func NewTracker(numCars int) *Tracker {
	t := &Tracker{crashed: make([]bool, numCars)}
	t.rounds.add(nil, true)
	return t
}

// ProcessEvent records one simulator event.
func (t *Tracker) ProcessEvent(ev Event) {
	switch ev.Kind {
	case EventRound:
		t.AddRound(ev.Cars)
	case EventFinished:
		t.finished = append(t.finished, ev.ID)
	case EventCrashed:
		t.markCrashed(ev.ID)
	}
}

func (t *Tracker) markCrashed(id int) {
	for id >= len(t.crashed) {
		t.crashed = append(t.crashed, false)
	}
	t.crashed[id] = true
}

// WatchLoops turns loop detection on or off for the following rounds.
// Rounds added while it is off never take part in a loop.
func (t *Tracker) WatchLoops(on bool) {
	t.paused = !on
}

// AddRound appends a round snapshot and updates loop detection.
func (t *Tracker) AddRound(cars []CarData) {
	if t.rounds.add(cars, !t.paused) {
		t.loop = true
	}
}

// Cars returns the snapshot history, one entry per round plus the initial
// empty one.
func (t *Tracker) Cars() [][]CarData {
	return t.rounds.data
}

// Finishes returns car ids in the order they finished.
func (t *Tracker) Finishes() []int {
	return t.finished
}

// Crashes returns the per-car crash flags.
func (t *Tracker) Crashes() []bool {
	return t.crashed
}

// ComputeFinalCrashes marks every car that never finished as crashed.
func (t *Tracker) ComputeFinalCrashes(numCars int) {
	crashed := make([]bool, numCars)
	for i := range crashed {
		crashed[i] = true
	}
	for _, id := range t.finished {
		if id >= 0 && id < numCars {
			crashed[id] = false
		}
	}
	t.crashed = crashed
}

// RoundsAvailable returns the number of recorded snapshots.
func (t *Tracker) RoundsAvailable() int {
	return len(t.rounds.data)
}

// IsLoopDetected reports whether a full snapshot has repeated.
func (t *Tracker) IsLoopDetected() bool {
	return t.loop
}

// IsSolved reports whether the finish order matches target exactly.
func (t *Tracker) IsSolved(target []int) bool {
	if len(t.finished) != len(target) {
		return false
	}
	for i := range target {
		if t.finished[i] != target[i] {
			return false
		}
	}
	return true
}
