package sim

import (
	"testing"

	"github.com/vovakirdan/trackrace/internal/track"
)

func car(id, x, y int, d track.Direction) CarData {
	return CarData{ID: id, Pos: track.CarCoord{X: x, Y: y}, Dir: d}
}

func TestTrackerStartsEmpty(t *testing.T) {
	tr := NewTracker(2)
	if tr.RoundsAvailable() != 1 {
		t.Errorf("RoundsAvailable() = %d, expected 1", tr.RoundsAvailable())
	}
	if len(tr.Cars()[0]) != 0 {
		t.Errorf("initial snapshot = %v, expected empty", tr.Cars()[0])
	}
	if len(tr.Crashes()) != 2 {
		t.Errorf("Crashes() = %v, expected two flags", tr.Crashes())
	}
}

func TestTrackerLoopNeedsSameParity(t *testing.T) {
	a := []CarData{car(0, 1, 0, track.Right)}
	b := []CarData{car(0, 3, 0, track.Right)}

	tests := []struct {
		name     string
		rounds   [][]CarData
		expected bool
	}{
		{"no repeat", [][]CarData{a, b}, false},
		{"odd gap", [][]CarData{a, a}, false},
		{"even gap", [][]CarData{a, b, a}, true},
		{"empty rounds", [][]CarData{nil, nil}, true},
		{"different id", [][]CarData{a, b, {car(1, 1, 0, track.Right)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(1)
			for _, r := range tt.rounds {
				tr.ProcessEvent(RoundEvent(r))
			}
			if got := tr.IsLoopDetected(); got != tt.expected {
				t.Errorf("IsLoopDetected() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTrackerWatchLoops(t *testing.T) {
	a := []CarData{car(0, 1, 0, track.Right)}
	b := []CarData{car(0, 3, 0, track.Right)}

	tr := NewTracker(1)
	tr.WatchLoops(false)
	tr.AddRound(nil)
	tr.AddRound(a)
	if tr.IsLoopDetected() {
		t.Fatal("unwatched rounds should not form a loop")
	}

	tr.WatchLoops(true)
	tr.AddRound(b)
	tr.AddRound(a) // matches the unwatched round 2
	if tr.IsLoopDetected() {
		t.Fatal("a match against an unwatched round is not a loop")
	}
	tr.AddRound(b)
	if !tr.IsLoopDetected() {
		t.Error("IsLoopDetected() = false after a watched repeat")
	}
	if tr.RoundsAvailable() != 6 {
		t.Errorf("RoundsAvailable() = %d, expected 6", tr.RoundsAvailable())
	}
}

func TestTrackerFinishesAndCrashes(t *testing.T) {
	tr := NewTracker(2)
	tr.ProcessEvent(FinishedEvent(1))
	tr.ProcessEvent(CrashedEvent(3))
	tr.ProcessEvent(FinishedEvent(0))

	if !tr.IsSolved([]int{1, 0}) {
		t.Errorf("IsSolved([1 0]) = false, finishes %v", tr.Finishes())
	}
	if tr.IsSolved([]int{0, 1}) || tr.IsSolved([]int{1}) {
		t.Error("IsSolved should need the exact order")
	}
	if len(tr.Crashes()) != 4 || !tr.Crashes()[3] {
		t.Errorf("Crashes() = %v, expected car 3 flagged", tr.Crashes())
	}
}

func TestComputeFinalCrashes(t *testing.T) {
	tr := NewTracker(4)
	tr.ProcessEvent(FinishedEvent(2))
	tr.ProcessEvent(FinishedEvent(0))
	tr.ComputeFinalCrashes(4)

	expected := []bool{false, true, false, true}
	got := tr.Crashes()
	if len(got) != len(expected) {
		t.Fatalf("Crashes() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Crashes()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
}
