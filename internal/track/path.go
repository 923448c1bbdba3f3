package track

// div4Round maps the sum of two car coordinates to the shared tile index.
// Sums congruent to 2 mod 4 fall on a tile edge and have no answer.
func div4Round(x int) (int, bool) {
	if mod(x, 4) == 2 {
		return 0, false
	}
	return floorDiv(x+1, 4), true
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func isBoundary(t TileCoord, p CarCoord) bool {
	return p.DistanceSquared(t.Car()) == 1
}

// CommonTile returns the tile that has both points on its edges.
func CommonTile(p1, p2 CarCoord) (TileCoord, bool) {
	x, okx := div4Round(p1.X + p2.X)
	y, oky := div4Round(p1.Y + p2.Y)
	if !okx || !oky {
		return TileCoord{}, false
	}
	t := TileCoord{X: x, Y: y}
	if isBoundary(t, p1) && isBoundary(t, p2) {
		return t, true
	}
	return TileCoord{}, false
}

// DirectionTo returns the direction from p1 towards p2, preferring the x axis.
func DirectionTo(p1, p2 CarCoord) Direction {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	switch {
	case dx > 0:
		return Right
	case dx < 0:
		return Left
	case dy > 0:
		return Down
	default:
		return Up
	}
}

// TrackTile returns the Straight or Turn that carries a car from edge point
// p1 to edge point p2 of their common tile.
func TrackTile(p1, p2 CarCoord) (TileCoord, Tile, bool) {
	pos, ok := CommonTile(p1, p2)
	if !ok {
		return TileCoord{}, Tile{}, false
	}
	c := pos.Car()
	d1 := DirectionTo(c, p1)
	d2 := DirectionTo(c, p2)
	if d2 == d1.Opposite() {
		return pos, Tile{Type: Straight, Transform: RotationFor(Up, d2)}, true
	}
	transform := RotationFor(Left, d2)
	if d2 != Rot90.Apply(d1) {
		transform = transform.Mul(Flip90)
	}
	return pos, Tile{Type: Turn, Transform: transform}, true
}

// Path is a freehand drag through tile edges.
type Path struct {
	points []CarCoord
}

// Points returns the recorded edge points.
func (p *Path) Points() []CarCoord {
	return append([]CarCoord(nil), p.points...)
}

// Len returns the number of recorded points.
func (p *Path) Len() int {
	return len(p.points)
}

// Clear drops every point.
func (p *Path) Clear() {
	p.points = nil
}

// Add extends the path with pos. Points that share no tile with the last
// point are ignored. Returning to the second-to-last point backtracks, and a
// point in the same tile as the previous segment replaces its end.
func (p *Path) Add(pos CarCoord) {
	n := len(p.points)
	if n == 0 {
		p.points = append(p.points, pos)
		return
	}
	last := p.points[n-1]
	t1, ok := CommonTile(last, pos)
	if !ok {
		return
	}
	if n < 2 {
		p.points = append(p.points, pos)
		return
	}
	pvs := p.points[n-2]
	if pvs == pos {
		p.points = p.points[:n-1]
		return
	}
	if t0, ok := CommonTile(pvs, last); ok && t0 == t1 {
		p.points[n-1] = pos
		return
	}
	p.points = append(p.points, pos)
}

// AddInterpolated extends the path to pos even when pos is several tiles
// away, walking edge points along the x axis first and then the y axis.
func (p *Path) AddInterpolated(pos CarCoord) {
	n := len(p.points)
	if n == 0 || !isEdgePoint(pos) || !isEdgePoint(p.points[n-1]) {
		p.Add(pos)
		return
	}
	cur := p.points[n-1]
	for cur != pos {
		if _, ok := CommonTile(cur, pos); ok {
			break
		}
		cur = stepToward(cur, pos)
		p.Add(cur)
	}
	p.Add(pos)
}

// isEdgePoint reports whether c lies in the middle of a tile edge.
func isEdgePoint(c CarCoord) bool {
	return (c.X+c.Y)&1 != 0
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// stepToward returns the next edge point from cur towards target that shares
// a tile with cur.
func stepToward(cur, target CarCoord) CarCoord {
	dx := target.X - cur.X
	dy := target.Y - cur.Y
	if cur.X&1 != 0 {
		// Vertical edge: cross a tile horizontally or turn into the y axis.
		switch {
		case dx > 1:
			return CarCoord{X: cur.X + 2, Y: cur.Y}
		case dx < -1:
			return CarCoord{X: cur.X - 2, Y: cur.Y}
		}
		s := dx
		if s == 0 {
			s = 1
		}
		t := sign(dy)
		if t == 0 {
			t = 1
		}
		return CarCoord{X: cur.X + s, Y: cur.Y + t}
	}
	// Horizontal edge.
	if dx != 0 {
		t := sign(dy)
		if t == 0 {
			t = -1
		}
		return CarCoord{X: cur.X + sign(dx), Y: cur.Y + t}
	}
	return CarCoord{X: cur.X, Y: cur.Y + 2*sign(dy)}
}

// Placement is a tile proposed by a path.
type Placement struct {
	Pos  TileCoord
	Tile Tile
}

// Tiles returns the tiles traced by consecutive points of the path.
func (p *Path) Tiles() []Placement {
	var out []Placement
	for i := 1; i < len(p.points); i++ {
		if pos, tile, ok := TrackTile(p.points[i-1], p.points[i]); ok {
			out = append(out, Placement{Pos: pos, Tile: tile})
		}
	}
	return out
}

// ApplyPath draws the path into tx, combining with existing tiles.
func ApplyPath(tx *Transaction, p *Path, banned TileSet) {
	for _, pl := range p.Tiles() {
		tile := pl.Tile
		if orig, ok := tx.Get(pl.Pos); ok {
			tile = Combine(orig, tile, banned)
		}
		tx.Set(pl.Pos, tile)
	}
}
