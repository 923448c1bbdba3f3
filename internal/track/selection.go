package track

// Selection is a set of selected cells.
type Selection map[TileCoord]struct{}

// Contains reports whether pos is selected.
func (s Selection) Contains(pos TileCoord) bool {
	_, ok := s[pos]
	return ok
}

// Sorted returns the selected cells in row-major order.
func (s Selection) Sorted() []TileCoord {
	out := make([]TileCoord, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sortCoords(out)
	return out
}

// SelectRect adds every occupied cell inside the rectangle spanned by a and b.
func (s Selection) SelectRect(c Course, a, b TileCoord) {
	r := RectFromCorners(a, b)
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			pos := TileCoord{X: x, Y: y}
			if c.Contains(pos) {
				s[pos] = struct{}{}
			}
		}
	}
}

// Drag describes tiles being moved. When External is set the dragged tiles
// come from that course instead of the selection.
type Drag struct {
	Anchor       TileCoord
	Transform    DihedralElement
	ToggleLights bool
	Reverse      bool
	External     *Course
}

// NewExternalDrag starts dragging a pasted course, anchored at its centre.
func NewExternalDrag(c Course) Drag {
	return Drag{Anchor: c.CenterCell(), Transform: Id, External: &c}
}

// Isometry returns the grid map taking the anchor to pos.
func (d Drag) Isometry(pos TileCoord) Isometry {
	return IsometryFromAnchors(d.Anchor, pos, d.Transform)
}

func (d Drag) adjust(t Tile) Tile {
	t = t.ApplyTransform(d.Transform, 0)
	if d.ToggleLights {
		t = t.ToggleLights()
	}
	if d.Reverse {
		t = t.Reverse()
	}
	return t
}

// DragTiles returns the tiles of the drag as they would land with the anchor
// at pos.
func DragTiles(sel Selection, d Drag, c Course, pos TileCoord) []Entry {
	isom := d.Isometry(pos)
	var src []Entry
	if d.External != nil {
		src = d.External.Entries()
	} else {
		for _, p := range sel.Sorted() {
			if t, ok := c.Get(p); ok {
				src = append(src, Entry{Pos: p, Tile: t})
			}
		}
	}
	out := make([]Entry, 0, len(src))
	for _, e := range src {
		out = append(out, Entry{Pos: isom.Apply(e.Pos), Tile: d.adjust(e.Tile)})
	}
	return out
}

// ApplyDrag moves the dragged tiles into tx and returns the new selection.
// Selected cells that no tile moves onto are cleared.
func ApplyDrag(tx *Transaction, sel Selection, d Drag, pos TileCoord) Selection {
	old := tx.Course()
	isom := d.Isometry(pos)
	if d.External == nil {
		for _, p := range sel.Sorted() {
			if !sel.Contains(isom.ApplyInverse(p)) {
				tx.Remove(p)
			}
		}
	}
	next := make(Selection)
	for _, e := range DragTiles(sel, d, old, pos) {
		tx.Set(e.Pos, e.Tile)
		next[e.Pos] = struct{}{}
	}
	return next
}

// DeleteSelection removes every selected tile.
func DeleteSelection(tx *Transaction, sel Selection) {
	for _, p := range sel.Sorted() {
		tx.Remove(p)
	}
}

// ToggleSelectionLights flips the light phase of every selected tile.
func ToggleSelectionLights(tx *Transaction, sel Selection) {
	for _, p := range sel.Sorted() {
		tx.ToggleLights(p)
	}
}

// ReverseSelection reverses the driving direction of every selected tile.
func ReverseSelection(tx *Transaction, sel Selection) {
	for _, p := range sel.Sorted() {
		tx.Modify(p, Tile.Reverse)
	}
}

// TransformSelection applies e to the selected tile. Selections of more
// than one tile are left alone since their cells would need to move too.
func TransformSelection(tx *Transaction, sel Selection, e DihedralElement) {
	if len(sel) != 1 {
		return
	}
	for p := range sel {
		tx.ApplyTransform(p, e, 0)
	}
}
