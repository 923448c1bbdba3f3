package track

import (
	"sort"

	"github.com/benbjohnson/immutable"
)

// coordHasher hashes grid cells for the persistent course map.
type coordHasher struct{}

func (coordHasher) Hash(c TileCoord) uint32 {
	h := uint32(2166136261)
	for _, v := range [2]int{c.X, c.Y} {
		u := uint64(v)
		for i := 0; i < 8; i++ {
			h ^= uint32(u & 0xff)
			h *= 16777619
			u >>= 8
		}
	}
	return h
}

func (coordHasher) Equal(a, b TileCoord) bool {
	return a == b
}

// Entry is a single placed tile.
type Entry struct {
	Pos  TileCoord
	Tile Tile
}

// Course is a persistent map from grid cells to tiles. Copying a Course is
// O(1) and every mutation returns a new version that shares structure with
// the old one. The zero value is an empty course.
type Course struct {
	m *immutable.Map[TileCoord, Tile]
}

// NewCourse returns an empty course.
func NewCourse() Course {
	return Course{m: immutable.NewMap[TileCoord, Tile](coordHasher{})}
}

// CourseFromEntries builds a course from placements. Later entries for the
// same cell replace earlier ones.
func CourseFromEntries(entries []Entry) Course {
	b := immutable.NewMapBuilder[TileCoord, Tile](coordHasher{})
	for _, e := range entries {
		b.Set(e.Pos, e.Tile)
	}
	return Course{m: b.Map()}
}

func (c Course) inner() *immutable.Map[TileCoord, Tile] {
	if c.m == nil {
		return immutable.NewMap[TileCoord, Tile](coordHasher{})
	}
	return c.m
}

// Get returns the tile at pos.
func (c Course) Get(pos TileCoord) (Tile, bool) {
	if c.m == nil {
		return Tile{}, false
	}
	return c.m.Get(pos)
}

// Contains reports whether pos holds a tile.
func (c Course) Contains(pos TileCoord) bool {
	_, ok := c.Get(pos)
	return ok
}

// Set returns a course with tile placed at pos.
func (c Course) Set(pos TileCoord, tile Tile) Course {
	return Course{m: c.inner().Set(pos, tile)}
}

// Delete returns a course without a tile at pos.
func (c Course) Delete(pos TileCoord) Course {
	if c.m == nil {
		return c
	}
	return Course{m: c.m.Delete(pos)}
}

// Len returns the number of placed tiles.
func (c Course) Len() int {
	if c.m == nil {
		return 0
	}
	return c.m.Len()
}

// Entries returns all placements sorted by row, then column.
func (c Course) Entries() []Entry {
	if c.m == nil {
		return nil
	}
	entries := make([]Entry, 0, c.m.Len())
	itr := c.m.Iterator()
	for !itr.Done() {
		pos, tile, _ := itr.Next()
		entries = append(entries, Entry{Pos: pos, Tile: tile})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Pos.Less(entries[j].Pos)
	})
	return entries
}

// Each calls fn for every placement in row-major order.
func (c Course) Each(fn func(pos TileCoord, tile Tile)) {
	for _, e := range c.Entries() {
		fn(e.Pos, e.Tile)
	}
}

// Equal reports whether both courses hold the same placements.
func (c Course) Equal(o Course) bool {
	if c.Len() != o.Len() {
		return false
	}
	for _, e := range c.Entries() {
		t, ok := o.Get(e.Pos)
		if !ok || t != e.Tile {
			return false
		}
	}
	return true
}

// BoundingRect returns the smallest rectangle containing every tile. The
// second result is false for an empty course.
func (c Course) BoundingRect() (Rect, bool) {
	return BoundingRect(c.Positions())
}

// Positions returns the occupied cells in row-major order.
func (c Course) Positions() []TileCoord {
	entries := c.Entries()
	out := make([]TileCoord, len(entries))
	for i, e := range entries {
		out[i] = e.Pos
	}
	return out
}

// BoundingRect returns the smallest rectangle containing every coordinate.
func BoundingRect(coords []TileCoord) (Rect, bool) {
	if len(coords) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: coords[0], Max: coords[0]}
	for _, p := range coords[1:] {
		r = r.Extend(p)
	}
	return r, true
}

// Center returns the mean position of all tiles, or (0, 0) when empty.
func (c Course) Center() (x, y float64) {
	n := c.Len()
	if n == 0 {
		return 0, 0
	}
	for _, e := range c.Entries() {
		x += float64(e.Pos.X)
		y += float64(e.Pos.Y)
	}
	return x / float64(n), y / float64(n)
}

// CenterCell returns Center rounded to the nearest cell.
func (c Course) CenterCell() TileCoord {
	x, y := c.Center()
	return TileCoord{X: roundHalfAway(x), Y: roundHalfAway(y)}
}

func roundHalfAway(v float64) int {
	if v < 0 {
		return -int(-v + 0.5)
	}
	return int(v + 0.5)
}

// FinishPositions returns the cells holding a Finish tile in row-major order.
func (c Course) FinishPositions() []TileCoord {
	var out []TileCoord
	for _, e := range c.Entries() {
		if e.Tile.Type == Finish {
			out = append(out, e.Pos)
		}
	}
	return out
}

// CountTypes returns how many tiles of each type the course holds.
func (c Course) CountTypes() map[TileType]int {
	counts := make(map[TileType]int)
	for _, e := range c.Entries() {
		counts[e.Tile.Type]++
	}
	return counts
}

func sortCoords(cs []TileCoord) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Less(cs[j]) })
}
