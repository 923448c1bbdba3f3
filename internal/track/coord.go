package track

import "fmt"

// TileCoord is a grid cell position.
type TileCoord struct {
	X, Y int
}

// TC is shorthand for TileCoord{X: x, Y: y}.
func TC(x, y int) TileCoord {
	return TileCoord{X: x, Y: y}
}

// FromDirection returns the unit vector of d as a TileCoord.
func FromDirection(d Direction) TileCoord {
	return TileCoord{X: d.DX(), Y: d.DY()}
}

// Add returns c + o.
func (c TileCoord) Add(o TileCoord) TileCoord {
	return TileCoord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c - o.
func (c TileCoord) Sub(o TileCoord) TileCoord {
	return TileCoord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Neg returns -c.
func (c TileCoord) Neg() TileCoord {
	return TileCoord{X: -c.X, Y: -c.Y}
}

// Step returns the neighbouring cell in direction d.
func (c TileCoord) Step(d Direction) TileCoord {
	return TileCoord{X: c.X + d.DX(), Y: c.Y + d.DY()}
}

// StepBack returns the neighbouring cell opposite to d.
func (c TileCoord) StepBack(d Direction) TileCoord {
	return TileCoord{X: c.X - d.DX(), Y: c.Y - d.DY()}
}

// Car returns the car coordinate of the cell centre.
func (c TileCoord) Car() CarCoord {
	return CarCoord{X: 2 * c.X, Y: 2 * c.Y}
}

// Less orders coordinates by row, then column.
func (c TileCoord) Less(o TileCoord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

func (c TileCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CarCoord is a position on the half-tile lattice. Tile centres sit at even
// coordinates, tile edges have exactly one odd component.
type CarCoord struct {
	X, Y int
}

// Add moves one half-tile step in direction d.
func (c CarCoord) Add(d Direction) CarCoord {
	return CarCoord{X: c.X + d.DX(), Y: c.Y + d.DY()}
}

// Sub moves one half-tile step against direction d.
func (c CarCoord) Sub(d Direction) CarCoord {
	return CarCoord{X: c.X - d.DX(), Y: c.Y - d.DY()}
}

// AddMultiple moves n half-tile steps in direction d.
func (c CarCoord) AddMultiple(d Direction, n int) CarCoord {
	return CarCoord{X: c.X + n*d.DX(), Y: c.Y + n*d.DY()}
}

// DistanceSquared returns the squared euclidean distance to o.
func (c CarCoord) DistanceSquared(o CarCoord) int {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return dx*dx + dy*dy
}

// IsTileCenter reports whether both components are even.
func (c CarCoord) IsTileCenter() bool {
	return c.X&1 == 0 && c.Y&1 == 0
}

// Tile converts a tile centre back to its grid cell. It panics when c is not
// a tile centre.
func (c CarCoord) Tile() TileCoord {
	if !c.IsTileCenter() {
		panic(fmt.Sprintf("track: car coordinate %v is not a tile centre", c))
	}
	return TileCoord{X: c.X / 2, Y: c.Y / 2}
}

func (c CarCoord) String() string {
	return fmt.Sprintf("<%d,%d>", c.X, c.Y)
}

// Rect is an inclusive bounding box of grid cells.
type Rect struct {
	Min, Max TileCoord
}

// W returns the number of columns covered.
func (r Rect) W() int {
	return r.Max.X - r.Min.X + 1
}

// H returns the number of rows covered.
func (r Rect) H() int {
	return r.Max.Y - r.Min.Y + 1
}

// Contains returns true if c lies inside the rectangle.
func (r Rect) Contains(c TileCoord) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// RectFromCorners returns the smallest rectangle containing both corners.
func RectFromCorners(a, b TileCoord) Rect {
	return Rect{
		Min: TileCoord{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: TileCoord{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// Extend grows the rectangle to include c.
func (r Rect) Extend(c TileCoord) Rect {
	return Rect{
		Min: TileCoord{X: min(r.Min.X, c.X), Y: min(r.Min.Y, c.Y)},
		Max: TileCoord{X: max(r.Max.X, c.X), Y: max(r.Max.Y, c.Y)},
	}
}
