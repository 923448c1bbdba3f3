// Package levels provides level definitions for trackrace: the bundled set,
// user level directories, known solutions and best-solve bookkeeping.
// This package depends on track but track does not depend on levels.
package levels

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"

	"github.com/vovakirdan/trackrace/internal/track"
)

// Level is a puzzle: release Cars cars and have them finish in the order
// given by Finish.
type Level struct {
	ID       string
	Name     string
	Cars     int
	Finish   []int
	Tutorial *int
	Banned   track.TileSet
	FilePath string
}

// Hash identifies a level by its goal. Levels with the same car count and
// finish order share saved courses and solves.
func (l *Level) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "C:%d;F:", l.Cars)
	for _, id := range l.Finish {
		fmt.Fprintf(h, "%d,", id)
	}
	return h.Sum64()
}

// Key returns the storage key for the level.
func (l *Level) Key() string {
	return fmt.Sprintf("%016x", l.Hash())
}

// IsBanned reports whether t may not be used on this level.
func (l *Level) IsBanned(t track.TileType) bool {
	return l.Banned.Has(t)
}

// Custom builds an ad-hoc level from a car count and finish order.
func Custom(cars int, finish []int) Level {
	return Level{ID: "custom", Name: "Custom", Cars: cars, Finish: finish}
}

// SolveData measures a solution. Smaller is better for both fields.
type SolveData struct {
	Tiles int `json:"tiles" yaml:"tiles"`
	Turns int `json:"turns" yaml:"turns"`
}

// Combine keeps the best value of each field.
func (s SolveData) Combine(o SolveData) SolveData {
	return SolveData{Tiles: min(s.Tiles, o.Tiles), Turns: min(s.Turns, o.Turns)}
}

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that the finish order is a permutation of a subset of the
// car ids.
func (l *Level) Validate() error {
	if l.Cars <= 0 {
		return ValidationError{
			Code:    "INVALID_CARS",
			Message: fmt.Sprintf("level %q has %d cars", l.ID, l.Cars),
		}
	}
	seen := make([]bool, l.Cars)
	for _, id := range l.Finish {
		if id < 0 || id >= l.Cars {
			return ValidationError{
				Code:    "FINISH_OUT_OF_RANGE",
				Message: fmt.Sprintf("level %q: car %d does not exist", l.ID, id),
			}
		}
		if seen[id] {
			return ValidationError{
				Code:    "FINISH_DUPLICATE",
				Message: fmt.Sprintf("level %q: car %d finishes twice", l.ID, id),
			}
		}
		seen[id] = true
	}
	return nil
}

// ValidateCourse checks that a course only uses tiles allowed on the level.
func (l *Level) ValidateCourse(c track.Course) error {
	for _, e := range c.Entries() {
		if l.IsBanned(e.Tile.Type) {
			return ValidationError{
				Code:    "BANNED_TILE",
				Message: fmt.Sprintf("%s at %v is banned on level %q", e.Tile.Type.Label(), e.Pos, l.ID),
			}
		}
	}
	return nil
}

var digitRe = regexp.MustCompile(`[0-9]+`)

// ParseFinishOrder reads a finish order such as "2, 0 1" for a race with
// cars cars. Every id must exist and appear at most once.
func ParseFinishOrder(cars int, s string) ([]int, error) {
	seen := make([]bool, cars)
	var out []int
	for _, m := range digitRe.FindAllString(s, -1) {
		n, err := strconv.Atoi(m)
		if err != nil || n >= cars {
			return nil, ValidationError{
				Code:    "FINISH_OUT_OF_RANGE",
				Message: fmt.Sprintf("car %s does not exist", m),
			}
		}
		if seen[n] {
			return nil, ValidationError{
				Code:    "FINISH_DUPLICATE",
				Message: fmt.Sprintf("car %d finishes twice", n),
			}
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}
