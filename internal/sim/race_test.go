package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/track"
)

func TestGoldenSolutions(t *testing.T) {
	lvls, err := levels.Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	sols, err := levels.Solutions()
	if err != nil {
		t.Fatalf("Solutions failed: %v", err)
	}

	expected := map[string]levels.SolveData{
		"01_first_lap": {Tiles: 6, Turns: 6},
		"02_overtake":  {Tiles: 8, Turns: 8},
	}

	for id, c := range sols {
		t.Run(id, func(t *testing.T) {
			lvl, err := levels.Find(lvls, id)
			if err != nil {
				t.Fatal(err)
			}
			race := NewRace(lvl, c)
			race.End()
			res := race.Result()
			if !res.Solved {
				t.Errorf("solution not accepted: finishes %v, expected %v", res.Finishes, lvl.Finish)
			}
			if res.LoopDetected {
				t.Error("unexpected loop")
			}
			if want, ok := expected[id]; ok && res.Solve != want {
				t.Errorf("Solve = %+v, expected %+v", res.Solve, want)
			}
		})
	}
}

func TestRaceLoop(t *testing.T) {
	race := NewRace(levels.Custom(1, []int{0}), loopCourse())
	if err := race.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	res := race.Result()
	if !res.LoopDetected {
		t.Fatal("expected loop detection")
	}
	if res.Solved || len(res.Finishes) != 0 {
		t.Errorf("loop race result = %+v", res)
	}
	if len(res.Crashes) != 1 || !res.Crashes[0] {
		t.Errorf("car stuck in a loop should count as crashed: %v", res.Crashes)
	}
	if race.Last() >= MaxRounds {
		t.Errorf("Last() = %d, loop should end the race early", race.Last())
	}
}

func TestRaceReplay(t *testing.T) {
	sols, err := levels.Solutions()
	if err != nil {
		t.Fatalf("Solutions failed: %v", err)
	}
	race := NewRace(levels.Custom(1, []int{0}), sols["01_first_lap"])

	if race.Round() != 0 || len(race.Cars()) != 0 {
		t.Fatalf("replay should start on the empty track")
	}
	if race.StepBack() {
		t.Error("StepBack() at round 0 should fail")
	}
	if !race.Forward() || race.Round() != 1 {
		t.Fatalf("Forward() did not reach round 1")
	}
	if !hasCar(race.Cars(), 0, -1, track.Up) {
		t.Errorf("round 1 cars = %v", race.Cars())
	}

	race.Seek(4)
	if race.Round() != 4 || !hasCar(race.Cars(), -2, 1, track.Down) {
		t.Errorf("Seek(4): round %d cars %v", race.Round(), race.Cars())
	}
	if race.Result().Solved {
		t.Error("race should not be solved before it finished")
	}

	race.Seek(100)
	if race.Round() != 6 {
		t.Errorf("Seek(100) clamped to %d, expected 6", race.Round())
	}
	if race.Forward() {
		t.Error("Forward() past the end should fail")
	}
	if !race.StepBack() || race.Round() != 5 {
		t.Errorf("StepBack() = round %d, expected 5", race.Round())
	}
	if race.CarsAt(7) != nil {
		t.Error("CarsAt past the end should be nil")
	}
	if !race.Result().Solved {
		t.Error("race should be solved")
	}
}

func TestRaceWrongOrder(t *testing.T) {
	sols, err := levels.Solutions()
	if err != nil {
		t.Fatalf("Solutions failed: %v", err)
	}
	race := NewRace(levels.Custom(2, []int{0, 1}), sols["02_overtake"])
	race.End()
	res := race.Result()
	if res.Solved {
		t.Error("finish order 1,0 should not solve 0,1")
	}
	if len(res.Finishes) != 2 || res.Finishes[0] != 1 || res.Finishes[1] != 0 {
		t.Errorf("Finishes = %v, expected [1 0]", res.Finishes)
	}
}

func TestRaceRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	race := NewRace(levels.Custom(1, []int{0}), loopCourse())
	err := race.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
	if race.IsFinished() {
		t.Error("cancelled race should not be finished")
	}
	if race.Last() != 0 {
		t.Errorf("Last() = %d, expected no simulated rounds", race.Last())
	}
}

func TestRandomSpawnRaceNoFalseLoop(t *testing.T) {
	sols, err := levels.Solutions()
	if err != nil {
		t.Fatalf("Solutions failed: %v", err)
	}
	for seed := int64(1); seed <= 200; seed++ {
		race := NewRace(levels.Custom(1, []int{0}), sols["01_first_lap"], WithSeed(seed), WithSpawnPolicy(Random(4)))
		race.End()
		res := race.Result()
		if res.LoopDetected || !res.Solved {
			t.Fatalf("seed %d: loop=%v finishes=%v rounds=%d", seed, res.LoopDetected, res.Finishes, race.Last())
		}
	}
}

func TestRandomSpawnRaceStillDetectsLoops(t *testing.T) {
	race := NewRace(levels.Custom(1, []int{0}), loopCourse(), WithSeed(3), WithSpawnPolicy(Random(4)))
	race.End()
	res := race.Result()
	if !res.LoopDetected {
		t.Error("LoopDetected = false for a car circling forever")
	}
	if race.Last() >= MaxRounds {
		t.Errorf("Last() = %d, expected the loop to end the race early", race.Last())
	}
}
