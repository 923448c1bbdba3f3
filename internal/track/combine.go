package track

import "fmt"

// TileSet is a set of tile types.
type TileSet uint16

// NewTileSet returns a set holding types.
func NewTileSet(types ...TileType) TileSet {
	var s TileSet
	for _, t := range types {
		s = s.With(t)
	}
	return s
}

// Has reports whether t is in the set.
func (s TileSet) Has(t TileType) bool {
	return s&(1<<t) != 0
}

// With returns the set with t added.
func (s TileSet) With(t TileType) TileSet {
	return s | 1<<t
}

// Types returns the members in index order.
func (s TileSet) Types() []TileType {
	var out []TileType
	for _, t := range TileTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

type sideStatus uint8

const (
	sideNeither sideStatus = iota
	sideEntrance
	sideExit
)

// sideOf classifies the side d of an untransformed tile: cars arrive
// through it, leave through it, or neither.
func sideOf(t TileType, d Direction) sideStatus {
	switch {
	case IsEntranceID(t, d.Opposite()):
		return sideEntrance
	case IsExitID(t, d):
		return sideExit
	default:
		return sideNeither
	}
}

func intersections(noYield, yield Direction) []Tile {
	transform := TransForDirs(Left, Up, noYield, yield)
	return []Tile{
		{Type: YieldIntersection, Transform: transform},
		{Type: LightIntersection, Transform: transform},
	}
}

func mergeTile(straight, merging Direction) []Tile {
	return []Tile{{Type: Merge, Transform: TransForDirs(Up, Left, straight, merging)}}
}

func lightForwardTurn(straight, turn Direction) []Tile {
	return []Tile{{Type: LightForwardTurn, Transform: TransForDirs(Up, Right, straight, turn)}}
}

// Combine returns the tile that should replace orig when add is drawn over
// it: the first allowed junction that carries both roads, or add itself
// when no junction fits.
func Combine(orig, add Tile, banned TileSet) Tile {
	for _, opt := range CombineOptions(orig, add) {
		if !banned.Has(opt.Type) {
			return opt
		}
	}
	return add
}

// CombineOptions lists candidate replacements for orig when add is drawn over
// it, most specific first. It returns []Tile{orig} when orig already carries
// the road of add and nil when only add itself fits. Only Straight and Turn
// tiles are combined.
func CombineOptions(orig, add Tile) []Tile {
	trans := orig.Transform.Inverse().Mul(add.Transform)
	up := add.Transform.Apply(Up)
	left := add.Transform.Apply(Left)
	right := add.Transform.Apply(Right)

	switch add.Type {
	case Straight:
		if IsEntranceID(orig.Type, trans.Apply(StraightEntrance)) &&
			IsExitID(orig.Type, trans.Apply(StraightExit)) {
			return []Tile{orig}
		}
		l := sideOf(orig.Type, trans.Apply(Left))
		r := sideOf(orig.Type, trans.Apply(Right))
		switch {
		case l == sideEntrance && r == sideExit:
			return intersections(up, right)
		case l == sideExit && r == sideEntrance:
			return intersections(up, left)
		case l == sideEntrance && r == sideNeither:
			return mergeTile(up, right)
		case l == sideNeither && r == sideEntrance:
			return mergeTile(up, left)
		case l == sideExit && r == sideNeither:
			return lightForwardTurn(up, right)
		case l == sideNeither && r == sideExit:
			return lightForwardTurn(up, left)
		case l == sideEntrance && r == sideEntrance:
			panic(fmt.Sprintf("track: %v has entrances on both sides of %v", orig, add))
		default:
			return nil
		}

	case Turn:
		if IsEntranceID(orig.Type, trans.Apply(TurnEntrance)) &&
			IsExitID(orig.Type, trans.Apply(TurnExit)) {
			return []Tile{orig}
		}
		u := sideOf(orig.Type, trans.Apply(Up))
		r := sideOf(orig.Type, trans.Apply(Right))
		switch {
		case u == sideExit && r == sideEntrance:
			return intersections(up, left)
		case u == sideExit && r == sideNeither:
			return lightForwardTurn(up, right)
		case u == sideNeither && r == sideEntrance:
			return mergeTile(left, up)
		case u == sideNeither && r == sideExit:
			return []Tile{{Type: LightTurns, Transform: add.Transform}}
		default:
			return nil
		}
	}
	return nil
}
