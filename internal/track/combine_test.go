package track

import "testing"

func TestEntranceExitDisjoint(t *testing.T) {
	for _, tt := range TileTypes {
		for _, d := range Directions {
			if IsEntranceID(tt, d.Opposite()) && IsExitID(tt, d) {
				t.Errorf("%v: side %v is both entrance and exit", tt, d)
			}
		}
	}
}

func TestCanonicalTables(t *testing.T) {
	tests := []struct {
		tile      TileType
		entrances []Direction
		exits     []Direction
	}{
		{Straight, []Direction{Up}, []Direction{Up}},
		{Turn, []Direction{Up}, []Direction{Left}},
		{Finish, []Direction{Up}, []Direction{Up}},
		{LightIntersection, []Direction{Up, Left}, []Direction{Up, Left}},
		{YieldIntersection, []Direction{Up, Left}, []Direction{Up, Left}},
		{LightTurns, []Direction{Up}, []Direction{Right, Left}},
		{Merge, []Direction{Up, Left}, []Direction{Up}},
		{LightForwardTurn, []Direction{Up}, []Direction{Up, Left}},
	}
	for _, tc := range tests {
		t.Run(tc.tile.String(), func(t *testing.T) {
			for _, d := range Directions {
				if got, want := IsEntranceID(tc.tile, d), containsDir(tc.entrances, d); got != want {
					t.Errorf("IsEntranceID(%v) = %v, expected %v", d, got, want)
				}
				if got, want := IsExitID(tc.tile, d), containsDir(tc.exits, d); got != want {
					t.Errorf("IsExitID(%v) = %v, expected %v", d, got, want)
				}
			}
		})
	}
}

func containsDir(ds []Direction, d Direction) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}

func TestCombineConsistency(t *testing.T) {
	count := 0
	for _, addType := range []TileType{Straight, Turn} {
		for _, origType := range TileTypes {
			for _, tr1 := range Elements {
				for _, tr2 := range Elements {
					orig := Tile{Type: origType, Transform: tr2}
					add := Tile{Type: addType, Transform: tr1}
					for _, combined := range CombineOptions(orig, add) {
						count++
						for _, d := range Directions {
							wantEnt := (orig.IsEntrance(d) && !add.IsExit(d.Opposite())) || add.IsEntrance(d)
							if combined.IsEntrance(d) != wantEnt {
								t.Errorf("%v over %v -> %v: entrance %v = %v, expected %v",
									add, orig, combined, d, combined.IsEntrance(d), wantEnt)
							}
							wantExit := (orig.IsExit(d) && !add.IsEntrance(d.Opposite())) || add.IsExit(d)
							if combined.IsExit(d) != wantExit {
								t.Errorf("%v over %v -> %v: exit %v = %v, expected %v",
									add, orig, combined, d, combined.IsExit(d), wantExit)
							}
						}
					}
				}
			}
		}
	}
	if count == 0 {
		t.Fatal("no combinations produced")
	}
}

func TestCombineDetails(t *testing.T) {
	up := Tile{Type: Straight, Transform: Id}
	right := Tile{Type: Straight, Transform: Rot90}
	left := Tile{Type: Straight, Transform: Rot270}

	tests := []struct {
		name     string
		orig     Tile
		add      Tile
		banned   TileSet
		expected Tile
	}{
		{
			name:     "same straight is a no-op",
			orig:     up,
			add:      up,
			expected: up,
		},
		{
			name:     "crossing straights make a yield intersection",
			orig:     right,
			add:      up,
			expected: Tile{Type: YieldIntersection, Transform: Rot90},
		},
		{
			name:     "banned yield falls back to lights",
			orig:     right,
			add:      up,
			banned:   NewTileSet(YieldIntersection),
			expected: Tile{Type: LightIntersection, Transform: Rot90},
		},
		{
			name:     "everything banned places the new tile",
			orig:     right,
			add:      up,
			banned:   NewTileSet(YieldIntersection, LightIntersection),
			expected: up,
		},
		{
			name:     "opposite straight has no junction",
			orig:     up,
			add:      Tile{Type: Straight, Transform: Rot180},
			expected: Tile{Type: Straight, Transform: Rot180},
		},
		{
			name:     "turn leaving a straight becomes a forward turn",
			orig:     up,
			add:      Tile{Type: Turn, Transform: Id},
			expected: Tile{Type: LightForwardTurn, Transform: Id},
		},
		{
			name:     "turn joining a straight becomes a merge",
			orig:     up,
			add:      Tile{Type: Turn, Transform: Rot90},
			expected: Tile{Type: Merge, Transform: Flip0},
		},
		{
			name:     "junction tiles are not combined",
			orig:     left,
			add:      Tile{Type: Merge, Transform: Id},
			expected: Tile{Type: Merge, Transform: Id},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Combine(tc.orig, tc.add, tc.banned)
			if got != tc.expected {
				t.Errorf("Combine(%v, %v) = %v, expected %v", tc.orig, tc.add, got, tc.expected)
			}
		})
	}
}

func TestTileReverse(t *testing.T) {
	for _, e := range Elements {
		s := Tile{Type: Straight, Transform: e}.Reverse()
		if !s.IsEntrance(e.Apply(Down)) || !s.IsExit(e.Apply(Down)) {
			t.Errorf("reversed straight %v should run %v", s, e.Apply(Down))
		}
		tu := Tile{Type: Turn, Transform: e}
		r := tu.Reverse()
		for _, d := range Directions {
			if r.IsEntrance(d) != tu.IsExit(d.Opposite()) {
				t.Errorf("reversed turn %v: entrance %v mismatch", r, d)
			}
		}
		if r.Reverse() != tu {
			t.Errorf("double reverse of %v = %v", tu, r.Reverse())
		}
	}
	j := Tile{Type: Merge, Transform: Rot90}
	if j.Reverse() != j {
		t.Errorf("merge should not reverse, got %v", j.Reverse())
	}
}

func TestToggleLights(t *testing.T) {
	l := Tile{Type: LightTurns}.ToggleLights()
	if l.Offset != 1 {
		t.Errorf("Offset = %d, expected 1", l.Offset)
	}
	if l.ToggleLights().Offset != 0 {
		t.Error("second toggle should restore the phase")
	}
	if s := (Tile{Type: Straight}).ToggleLights(); s.Offset != 0 {
		t.Errorf("straight Offset = %d, expected 0", s.Offset)
	}
}

func TestParseTileType(t *testing.T) {
	for _, tt := range TileTypes {
		got, err := ParseTileType(tt.String())
		if err != nil || got != tt {
			t.Errorf("ParseTileType(%q) = %v, %v", tt.String(), got, err)
		}
	}
	if _, err := ParseTileType("roundabout"); err == nil {
		t.Error("expected error for unknown type")
	}
}
