// Package track provides the tile model for the race game: directions and
// the dihedral symmetry group acting on them, grid coordinates, tile types,
// the persistent course map, course editing, tile combination and the
// freehand path tool.
// This package is UI-agnostic and deterministic.
package track

import (
	"fmt"
	"strings"
)

// Direction is one of the four axis directions a car can travel.
// Up decreases Y, Down increases Y (screen coordinates).
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists all directions in index order.
var Directions = [4]Direction{Up, Right, Down, Left}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// DX returns the x component of the unit vector for d.
func (d Direction) DX() int {
	switch d {
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

// DY returns the y component of the unit vector for d.
func (d Direction) DY() int {
	switch d {
	case Up:
		return -1
	case Down:
		return 1
	default:
		return 0
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	return d ^ 2
}

// ParseDirection converts a name such as "up" or "Left" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if strings.EqualFold(s, d.String()) {
			return d, true
		}
	}
	return Up, false
}

// DihedralElement is an element of the symmetry group of the square.
// Indices 0-3 are rotations by multiples of 90 degrees clockwise, 4-7 are
// reflections. The low two bits are the shift applied to a direction index.
type DihedralElement uint8

const (
	Id DihedralElement = iota
	Rot90
	Rot180
	Rot270
	Flip0
	Flip45
	Flip90
	Flip135
)

// Elements lists all eight group elements in index order.
var Elements = [8]DihedralElement{Id, Rot90, Rot180, Rot270, Flip0, Flip45, Flip90, Flip135}

// Rotations lists the four rotations.
var Rotations = [4]DihedralElement{Id, Rot90, Rot180, Rot270}

var elementNames = [8]string{"id", "rot90", "rot180", "rot270", "flip0", "flip45", "flip90", "flip135"}

// String returns the machine name of the element ("rot90", "flip45", ...).
func (e DihedralElement) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return fmt.Sprintf("DihedralElement(%d)", uint8(e))
}

// ParseDihedral converts a machine name back to an element.
func ParseDihedral(s string) (DihedralElement, bool) {
	for i, name := range elementNames {
		if strings.EqualFold(s, name) {
			return DihedralElement(i), true
		}
	}
	return Id, false
}

// Sign is +1 for rotations and -1 for reflections.
func (e DihedralElement) Sign() int {
	if e&4 != 0 {
		return -1
	}
	return 1
}

func (e DihedralElement) shift() int {
	return int(e & 3)
}

// Apply maps a direction through e.
func (e DihedralElement) Apply(d Direction) Direction {
	return Direction((e.Sign()*int(d) + e.shift()) & 3)
}

// ApplyInverse maps a direction through the inverse of e.
func (e DihedralElement) ApplyInverse(d Direction) Direction {
	return Direction((e.Sign() * (int(d) - e.shift())) & 3)
}

// Inverse returns the group inverse. Only the quarter turns differ from
// their inverse.
func (e DihedralElement) Inverse() DihedralElement {
	switch e {
	case Rot90:
		return Rot270
	case Rot270:
		return Rot90
	default:
		return e
	}
}

// Mul returns the composition e*f, which applies f first and then e.
func (e DihedralElement) Mul(f DihedralElement) DihedralElement {
	s := (e ^ f) & 4
	i := (e.shift() + e.Sign()*f.shift()) & 3
	return s | DihedralElement(i)
}

// ApplyCoord maps a grid vector through e using the images of Right and Down.
func (e DihedralElement) ApplyCoord(c TileCoord) TileCoord {
	r := e.Apply(Right)
	d := e.Apply(Down)
	return TileCoord{
		X: r.DX()*c.X + d.DX()*c.Y,
		Y: r.DY()*c.X + d.DY()*c.Y,
	}
}

// RotationFor returns the unique rotation taking from to to.
func RotationFor(from, to Direction) DihedralElement {
	return DihedralElement((int(to) - int(from)) & 3)
}

// ReflectionAlong returns the reflection that fixes d (and d.Opposite()).
func ReflectionAlong(d Direction) DihedralElement {
	return Flip0 | DihedralElement((2*int(d))&3)
}

// TransForDirs returns the unique element mapping the orthogonal pair
// (from1, from2) onto the orthogonal pair (to1, to2).
func TransForDirs(from1, from2, to1, to2 Direction) DihedralElement {
	r := RotationFor(from1, to1)
	if r.Apply(from2) == to2 {
		return r
	}
	return r.Mul(ReflectionAlong(from1))
}

// Isometry is a rigid transform of the grid: a dihedral element followed by
// a translation.
type Isometry struct {
	Dihedral DihedralElement
	Offset   TileCoord
}

// Apply maps a grid position through the isometry.
func (m Isometry) Apply(pos TileCoord) TileCoord {
	return m.Offset.Add(m.Dihedral.ApplyCoord(pos))
}

// ApplyInverse maps a grid position through the inverse isometry.
func (m Isometry) ApplyInverse(pos TileCoord) TileCoord {
	return m.Dihedral.Inverse().ApplyCoord(pos.Sub(m.Offset))
}

// Inverse returns the inverse isometry.
func (m Isometry) Inverse() Isometry {
	inv := m.Dihedral.Inverse()
	return Isometry{
		Dihedral: inv,
		Offset:   inv.ApplyCoord(m.Offset).Neg(),
	}
}

// IsometryFromAnchors builds the isometry with dihedral part e that maps
// from onto to.
func IsometryFromAnchors(from, to TileCoord, e DihedralElement) Isometry {
	return Isometry{
		Dihedral: e,
		Offset:   to.Sub(e.ApplyCoord(from)),
	}
}
