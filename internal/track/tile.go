package track

import (
	"fmt"
	"strings"
)

// TileType identifies the kind of road piece placed on a cell.
type TileType uint8

const (
	Straight TileType = iota
	Turn
	Finish
	LightIntersection
	YieldIntersection
	LightTurns
	Merge
	LightForwardTurn
)

// TileTypes lists all tile types in index order.
var TileTypes = [...]TileType{
	Straight, Turn, Finish, LightIntersection,
	YieldIntersection, LightTurns, Merge, LightForwardTurn,
}

var tileLabels = [...]string{
	"Straight",
	"Turn",
	"Start/Finish",
	"Intersection with lights",
	"Intersection with yield sign",
	"Left/right turn with lights",
	"Merge with yield sign",
	"Straight/turn with lights",
}

var tileNames = [...]string{
	"straight",
	"turn",
	"finish",
	"light_intersection",
	"yield_intersection",
	"light_turns",
	"merge",
	"light_forward_turn",
}

// Label returns the human readable label.
func (t TileType) Label() string {
	if int(t) < len(tileLabels) {
		return tileLabels[t]
	}
	return "Unknown"
}

// String returns the machine name used in level and course files.
func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return fmt.Sprintf("TileType(%d)", uint8(t))
}

// ParseTileType converts a machine name to a TileType.
func ParseTileType(s string) (TileType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range tileNames {
		if s == name {
			return TileType(i), nil
		}
	}
	return Straight, fmt.Errorf("unknown tile type %q", s)
}

// HasLights reports whether the tile alternates between two phases.
func (t TileType) HasLights() bool {
	switch t {
	case LightIntersection, LightTurns, LightForwardTurn:
		return true
	default:
		return false
	}
}

// Canonical entrance and exit directions of the simple tiles. An entrance
// is the direction a car is moving when it drives onto the tile.
const (
	StraightEntrance = Up
	StraightExit     = Up
	TurnEntrance     = Up
	TurnExit         = Left
)

// IsEntranceID reports whether a car moving in direction d can drive onto an
// untransformed tile of type t.
func IsEntranceID(t TileType, d Direction) bool {
	switch t {
	case Straight, Turn, Finish, LightForwardTurn, LightTurns:
		return d == Up
	case Merge, YieldIntersection, LightIntersection:
		return d == Up || d == Left
	default:
		return false
	}
}

// IsExitID reports whether a car can leave an untransformed tile of type t
// moving in direction d.
func IsExitID(t TileType, d Direction) bool {
	switch t {
	case Straight, Finish, Merge:
		return d == Up
	case Turn:
		return d == Left
	case LightTurns:
		return d == Left || d == Right
	case LightForwardTurn, LightIntersection, YieldIntersection:
		return d == Up || d == Left
	default:
		return false
	}
}

// Tile is a placed road piece.
type Tile struct {
	Type      TileType
	Transform DihedralElement
	// Offset selects the light phase. It is always 0 or 1.
	Offset uint8
}

// DefaultTile returns an untransformed tile of type t.
func DefaultTile(t TileType) Tile {
	return Tile{Type: t, Transform: Id}
}

// IsEntrance reports whether a car moving in direction d can drive onto the
// tile.
func (t Tile) IsEntrance(d Direction) bool {
	return IsEntranceID(t.Type, t.Transform.ApplyInverse(d))
}

// IsExit reports whether a car can leave the tile moving in direction d.
func (t Tile) IsExit(d Direction) bool {
	return IsExitID(t.Type, t.Transform.ApplyInverse(d))
}

// ApplyTransform returns the tile with e composed after its transform and
// its offset bit XORed with offset.
func (t Tile) ApplyTransform(e DihedralElement, offset uint8) Tile {
	t.Transform = e.Mul(t.Transform)
	t.Offset ^= offset & 1
	return t
}

// ToggleLights flips the light phase of tiles that have lights.
func (t Tile) ToggleLights() Tile {
	if t.Type.HasLights() {
		t.Offset ^= 1
	}
	return t
}

// Reverse swaps the driving direction of straights, finishes and turns.
// Junction tiles are returned unchanged.
func (t Tile) Reverse() Tile {
	switch t.Type {
	case Straight, Finish:
		t.Transform = t.Transform.Mul(Rot180)
	case Turn:
		t.Transform = t.Transform.Mul(Flip45)
	}
	return t
}

func (t Tile) String() string {
	if t.Type.HasLights() {
		return fmt.Sprintf("%s/%s/%d", t.Type, t.Transform, t.Offset)
	}
	return fmt.Sprintf("%s/%s", t.Type, t.Transform)
}
