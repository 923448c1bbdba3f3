package tui

import (
	"github.com/vovakirdan/trackrace/internal/sim"
	"github.com/vovakirdan/trackrace/internal/track"
)

// Player is a recorded or live simulation the viewer can step through.
// *sim.Race implements it.
type Player interface {
	Course() track.Course
	Cars() []sim.CarData
	Round() int
	Forward() bool
	StepBack() bool
	Seek(n int)
	End()
}

// judged is implemented by players that can be won or lost.
type judged interface {
	IsFinished() bool
	Result() sim.Result
}

// demoHistory bounds how many rounds of a demo can be stepped back through.
const demoHistory = 256

// DemoPlayer replays an endless tile demonstration, restarting the
// simulator when it hits the round cap.
type DemoPlayer struct {
	tileType track.TileType
	seed     int64
	sim      *sim.Simulator
	history  [][]sim.CarData
	first    int // round number of history[0]
	cursor   int
}

// NewDemoPlayer creates a demo of t.
func NewDemoPlayer(t track.TileType, seed int64) *DemoPlayer {
	return &DemoPlayer{
		tileType: t,
		seed:     seed,
		sim:      sim.NewDemo(t, seed),
		history:  [][]sim.CarData{nil},
	}
}

// Course returns the demonstration course.
func (p *DemoPlayer) Course() track.Course {
	return p.sim.Course()
}

// Cars returns the cars at the cursor.
func (p *DemoPlayer) Cars() []sim.CarData {
	return p.history[p.cursor-p.first]
}

// Round returns the cursor.
func (p *DemoPlayer) Round() int {
	return p.cursor
}

// Forward advances one round. A demo never ends.
func (p *DemoPlayer) Forward() bool {
	if p.cursor-p.first == len(p.history)-1 {
		if p.sim.IsFinished() {
			p.sim = sim.NewDemo(p.tileType, p.seed+int64(p.cursor))
		}
		p.sim.RunRound()
		var cars []sim.CarData
		for _, ev := range p.sim.Events() {
			if ev.Kind == sim.EventRound {
				cars = ev.Cars
			}
		}
		p.history = append(p.history, cars)
		if len(p.history) > demoHistory {
			p.history = p.history[1:]
			p.first++
		}
	}
	p.cursor++
	return true
}

// StepBack moves back one round while it is still remembered.
func (p *DemoPlayer) StepBack() bool {
	if p.cursor == p.first {
		return false
	}
	p.cursor--
	return true
}

// Seek moves to round n, clamped to the remembered rounds.
func (p *DemoPlayer) Seek(n int) {
	for p.cursor < n {
		p.Forward()
	}
	for p.cursor > n && p.StepBack() {
	}
}

// End jumps to the newest round.
func (p *DemoPlayer) End() {
	p.cursor = p.first + len(p.history) - 1
}
