package track

import (
	"strings"
)

// Char returns the single letter used for a tile type in ASCII output.
func (t TileType) Char() rune {
	switch t {
	case Straight:
		return 'S'
	case Turn:
		return 'T'
	case Finish:
		return 'F'
	case LightIntersection:
		return 'L'
	case YieldIntersection:
		return 'Y'
	case LightTurns:
		return 'W'
	case Merge:
		return 'M'
	case LightForwardTurn:
		return 'K'
	default:
		return '?'
	}
}

// Arrow returns the arrow glyph pointing in d.
func (d Direction) Arrow() rune {
	switch d {
	case Up:
		return '^'
	case Right:
		return '>'
	case Down:
		return 'v'
	case Left:
		return '<'
	default:
		return '?'
	}
}

// Marker is a labelled point drawn over a rendered course, usually a car.
type Marker struct {
	Pos   CarCoord
	Label rune
}

// RenderASCII draws the course on the car lattice. This is used for
// debugging, golden tests and the CLI.
//
// Format:
//   - Tile centres: one letter per tile type (see TileType.Char)
//   - Tile edges: an arrow in the direction traffic crosses it, '*' when
//     traffic crosses both ways
//   - Markers replace whatever is under them
//   - Empty lattice points: '.' at tile centres, ' ' elsewhere
func RenderASCII(c Course, markers []Marker) string {
	r, ok := c.BoundingRect()
	for _, m := range markers {
		if ok && inFrame(r, m.Pos) {
			continue
		}
		t := TileCoord{X: floorDiv(m.Pos.X+1, 2), Y: floorDiv(m.Pos.Y+1, 2)}
		if !ok {
			r, ok = Rect{Min: t, Max: t}, true
		}
		r = r.Extend(t)
	}
	if !ok {
		return ""
	}

	w := 2*r.W() + 1
	h := 2*r.H() + 1
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w))
	}
	origin := CarCoord{X: 2*r.Min.X - 1, Y: 2*r.Min.Y - 1}
	put := func(p CarCoord, ch rune) {
		x, y := p.X-origin.X, p.Y-origin.Y
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		cur := grid[y][x]
		if cur != ' ' && cur != ch && isArrow(cur) && isArrow(ch) {
			ch = '*'
		}
		grid[y][x] = ch
	}

	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			put(TileCoord{X: x, Y: y}.Car(), '.')
		}
	}
	for _, e := range c.Entries() {
		center := e.Pos.Car()
		put(center, e.Tile.Type.Char())
		for _, d := range Directions {
			if e.Tile.IsExit(d) {
				put(center.Add(d), d.Arrow())
			}
			if e.Tile.IsEntrance(d) {
				put(center.Sub(d), d.Arrow())
			}
		}
	}
	for _, m := range markers {
		x, y := m.Pos.X-origin.X, m.Pos.Y-origin.Y
		if x >= 0 && y >= 0 && x < w && y < h {
			grid[y][x] = m.Label
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func isArrow(ch rune) bool {
	switch ch {
	case '^', '>', 'v', '<':
		return true
	default:
		return false
	}
}

// inFrame reports whether p falls inside the lattice drawn for r, edges
// included.
func inFrame(r Rect, p CarCoord) bool {
	return p.X >= 2*r.Min.X-1 && p.X <= 2*r.Max.X+1 &&
		p.Y >= 2*r.Min.Y-1 && p.Y <= 2*r.Max.Y+1
}
