package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/trackrace/internal/sim"
	"github.com/vovakirdan/trackrace/internal/track"
)

type glyphClass int

const (
	glyphRoad glyphClass = iota
	glyphLights
	glyphJunction
	glyphFinish
	glyphEdge
	glyphConflict
	glyphEmpty
	glyphCar
)

// classify sorts one glyph of track.RenderASCII output.
func classify(ch rune) glyphClass {
	switch {
	case ch >= '0' && ch <= '9':
		return glyphCar
	case ch == '*':
		return glyphConflict
	case ch == '.':
		return glyphEmpty
	}
	switch ch {
	case '^', '>', 'v', '<':
		return glyphEdge
	case track.Finish.Char():
		return glyphFinish
	case track.LightIntersection.Char(), track.LightTurns.Char(), track.LightForwardTurn.Char():
		return glyphLights
	case track.YieldIntersection.Char(), track.Merge.Char():
		return glyphJunction
	default:
		return glyphRoad
	}
}

func (t Theme) style(c glyphClass) lipgloss.Style {
	switch c {
	case glyphLights:
		return t.Lights
	case glyphJunction:
		return t.Junction
	case glyphFinish:
		return t.Finish
	case glyphEdge:
		return t.Edge
	case glyphConflict:
		return t.Conflict
	case glyphEmpty:
		return t.Empty
	case glyphCar:
		return t.Car
	default:
		return t.Road
	}
}

// RenderCourse draws a course with its cars as a styled string.
// Groups adjacent glyphs of the same class to minimize ANSI escape sequences.
func RenderCourse(c track.Course, cars []sim.CarData, theme Theme) string {
	plain := track.RenderASCII(c, sim.Markers(cars))
	lines := strings.Split(strings.TrimSuffix(plain, "\n"), "\n")

	var sb strings.Builder
	sb.Grow(len(plain) * 2)
	for y, line := range lines {
		if y > 0 {
			sb.WriteRune('\n')
		}

		runes := []rune(line)
		x := 0
		for x < len(runes) {
			class := classify(runes[x])
			start := x
			for x < len(runes) && classify(runes[x]) == class {
				x++
			}
			sb.WriteString(theme.style(class).Render(string(runes[start:x])))
		}
	}
	return sb.String()
}
