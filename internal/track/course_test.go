package track

import (
	"reflect"
	"testing"
)

func sampleCourse() Course {
	return CourseFromEntries([]Entry{
		{Pos: TC(0, 0), Tile: Tile{Type: Straight}},
		{Pos: TC(0, -1), Tile: Tile{Type: Turn}},
	})
}

func TestCoursePersistence(t *testing.T) {
	var empty Course
	if empty.Len() != 0 || empty.Contains(TC(0, 0)) {
		t.Fatal("zero Course should be empty")
	}

	a := empty.Set(TC(1, 2), Tile{Type: Turn})
	b := a.Set(TC(3, 4), Tile{Type: Merge})
	c := b.Delete(TC(1, 2))

	if a.Len() != 1 || b.Len() != 2 || c.Len() != 1 {
		t.Errorf("lengths = %d %d %d, expected 1 2 1", a.Len(), b.Len(), c.Len())
	}
	if !b.Contains(TC(1, 2)) {
		t.Error("Delete on a later version must not affect b")
	}
	if a.Contains(TC(3, 4)) {
		t.Error("Set on a later version must not affect a")
	}
	if empty.Len() != 0 {
		t.Error("zero Course must stay empty")
	}
}

func TestCourseFromEntriesLastWins(t *testing.T) {
	c := CourseFromEntries([]Entry{
		{Pos: TC(0, 0), Tile: Tile{Type: Straight}},
		{Pos: TC(0, 0), Tile: Tile{Type: Turn, Transform: Rot90}},
	})
	got, ok := c.Get(TC(0, 0))
	if !ok || got != (Tile{Type: Turn, Transform: Rot90}) {
		t.Errorf("Get() = %v, %v", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.Len())
	}
}

func TestCourseEntriesSorted(t *testing.T) {
	c := CourseFromEntries([]Entry{
		{Pos: TC(2, 1), Tile: Tile{Type: Straight}},
		{Pos: TC(-1, 1), Tile: Tile{Type: Straight}},
		{Pos: TC(5, -3), Tile: Tile{Type: Straight}},
	})
	want := []TileCoord{TC(5, -3), TC(-1, 1), TC(2, 1)}
	if got := c.Positions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Positions() = %v, expected %v", got, want)
	}
	r, ok := c.BoundingRect()
	if !ok || r.Min != TC(-1, -3) || r.Max != TC(5, 1) {
		t.Errorf("BoundingRect() = %v, %v", r, ok)
	}
	if r.W() != 7 || r.H() != 5 {
		t.Errorf("W, H = %d, %d, expected 7, 5", r.W(), r.H())
	}
	if !c.Equal(CourseFromEntries(c.Entries())) {
		t.Error("course rebuilt from its entries should be equal")
	}
}

func TestCourseCenter(t *testing.T) {
	x, y := sampleCourse().Center()
	if x != 0 || y != -0.5 {
		t.Errorf("Center() = %v, %v, expected 0, -0.5", x, y)
	}
	if got := sampleCourse().CenterCell(); got != TC(0, -1) {
		t.Errorf("CenterCell() = %v, expected (0,-1)", got)
	}
	if x, y := (Course{}).Center(); x != 0 || y != 0 {
		t.Errorf("empty Center() = %v, %v", x, y)
	}
}

func TestFinishDemotion(t *testing.T) {
	edit := NewCourseEdit(NewCourse())
	edit.SetSingle(TC(0, 0), Tile{Type: Finish})
	edit.SetSingle(TC(3, 0), Tile{Type: Finish, Transform: Rot90})

	if got, _ := edit.Get(TC(0, 0)); got.Type != Straight {
		t.Errorf("old finish = %v, expected straight", got)
	}
	if pos, ok := edit.Finish(); !ok || pos != TC(3, 0) {
		t.Errorf("Finish() = %v, %v, expected (3,0)", pos, ok)
	}
	if n := len(edit.Course().FinishPositions()); n != 1 {
		t.Errorf("found %d finish tiles, expected 1", n)
	}

	edit.Undo()
	if got, _ := edit.Get(TC(0, 0)); got.Type != Finish {
		t.Errorf("after undo tile = %v, expected finish", got)
	}
	if edit.Course().Contains(TC(3, 0)) {
		t.Error("after undo (3,0) should be empty")
	}

	// Overwriting the finish clears it.
	edit.SetSingle(TC(0, 0), Tile{Type: Straight})
	if _, ok := edit.Finish(); ok {
		t.Error("Finish() should be cleared")
	}
}

func TestCourseEditUndoRedo(t *testing.T) {
	var saved []int
	edit := NewCourseEdit(NewCourse())
	edit.OnChange = func(c Course) { saved = append(saved, c.Len()) }

	v0 := edit.Course()
	edit.SetSingle(TC(0, 0), Tile{Type: Straight})
	v1 := edit.Course()
	tx := edit.Begin()
	tx.Set(TC(0, 1), Tile{Type: Turn})
	tx.Set(TC(0, 2), Tile{Type: Turn})
	tx.Commit()
	v2 := edit.Course()

	if edit.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", edit.Len())
	}
	if !edit.Undo() || !edit.Course().Equal(v1) {
		t.Error("Undo should restore v1")
	}
	if !edit.Undo() || !edit.Course().Equal(v0) {
		t.Error("Undo should restore v0")
	}
	if edit.Undo() {
		t.Error("Undo past the start should fail")
	}
	if !edit.Redo() || !edit.Course().Equal(v1) {
		t.Error("Redo should restore v1")
	}

	// A new edit truncates the redo tail.
	edit.SetSingle(TC(9, 9), Tile{Type: Merge})
	if edit.CanRedo() {
		t.Error("redo tail should be dropped")
	}
	if edit.Course().Equal(v2) {
		t.Error("v2 should not be reachable")
	}

	want := []int{1, 3, 1, 0, 1, 2}
	if !reflect.DeepEqual(saved, want) {
		t.Errorf("OnChange saw %v, expected %v", saved, want)
	}
}

func TestTransactionNoChange(t *testing.T) {
	edit := NewCourseEdit(sampleCourse())
	tx := edit.Begin()
	tx.Set(TC(0, 0), Tile{Type: Straight})
	tx.Remove(TC(7, 7))
	tx.ToggleLights(TC(0, 0))
	if tx.Changed() {
		t.Error("transaction should report no change")
	}
	tx.Commit()
	if edit.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", edit.Len())
	}
}

func TestTransactionModify(t *testing.T) {
	edit := NewCourseEdit(CourseFromEntries([]Entry{
		{Pos: TC(0, 0), Tile: Tile{Type: LightTurns}},
	}))
	tx := edit.Begin()
	tx.ToggleLights(TC(0, 0))
	tx.ApplyTransform(TC(0, 0), Rot90, 0)
	tx.Commit()
	tx.Commit()

	got, _ := edit.Get(TC(0, 0))
	want := Tile{Type: LightTurns, Transform: Rot90, Offset: 1}
	if got != want {
		t.Errorf("tile = %v, expected %v", got, want)
	}
	if edit.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", edit.Len())
	}
}

func TestTransactionApplyTransformOffset(t *testing.T) {
	tests := []struct {
		name   string
		orig   Tile
		e      DihedralElement
		offset uint8
		want   Tile
	}{
		{"rotate only", Tile{Type: LightIntersection}, Rot90, 0, Tile{Type: LightIntersection, Transform: Rot90}},
		{"rotate and flip phase", Tile{Type: LightIntersection}, Rot90, 1, Tile{Type: LightIntersection, Transform: Rot90, Offset: 1}},
		{"phase back", Tile{Type: YieldIntersection, Offset: 1}, Id, 1, Tile{Type: YieldIntersection}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit := NewCourseEdit(CourseFromEntries([]Entry{{Pos: TC(0, 0), Tile: tt.orig}}))
			tx := edit.Begin()
			tx.ApplyTransform(TC(0, 0), tt.e, tt.offset)
			tx.Commit()
			got, _ := edit.Get(TC(0, 0))
			if got != tt.want {
				t.Errorf("tile = %v, expected %v", got, tt.want)
			}
			if edit.Len() != 2 {
				t.Errorf("Len() = %d, expected one undo step", edit.Len())
			}
		})
	}
}

func TestSelectionDrag(t *testing.T) {
	t.Run("rotate and move", func(t *testing.T) {
		edit := NewCourseEdit(sampleCourse())
		sel := make(Selection)
		sel.SelectRect(edit.Course(), TC(0, 0), TC(2, -1))
		if len(sel) != 2 {
			t.Fatalf("selected %d cells, expected 2", len(sel))
		}

		tx := edit.Begin()
		sel = ApplyDrag(tx, sel, Drag{Anchor: TC(0, 0), Transform: Rot90}, TC(5, 5))
		tx.Commit()

		want := CourseFromEntries([]Entry{
			{Pos: TC(5, 5), Tile: Tile{Type: Straight, Transform: Rot90}},
			{Pos: TC(6, 5), Tile: Tile{Type: Turn, Transform: Rot90}},
		})
		if !edit.Course().Equal(want) {
			t.Errorf("course = %v, expected %v", edit.Course().Entries(), want.Entries())
		}
		if !sel.Contains(TC(5, 5)) || !sel.Contains(TC(6, 5)) {
			t.Errorf("selection = %v", sel.Sorted())
		}
	})

	t.Run("overlapping move", func(t *testing.T) {
		edit := NewCourseEdit(sampleCourse())
		sel := make(Selection)
		sel.SelectRect(edit.Course(), TC(0, -1), TC(0, 0))

		tx := edit.Begin()
		ApplyDrag(tx, sel, Drag{Anchor: TC(0, 0)}, TC(0, -1))
		tx.Commit()

		want := CourseFromEntries([]Entry{
			{Pos: TC(0, -1), Tile: Tile{Type: Straight}},
			{Pos: TC(0, -2), Tile: Tile{Type: Turn}},
		})
		if !edit.Course().Equal(want) {
			t.Errorf("course = %v, expected %v", edit.Course().Entries(), want.Entries())
		}
	})

	t.Run("external paste", func(t *testing.T) {
		edit := NewCourseEdit(NewCourse())
		d := NewExternalDrag(sampleCourse())
		if d.Anchor != TC(0, -1) {
			t.Fatalf("Anchor = %v, expected (0,-1)", d.Anchor)
		}
		d.Reverse = true
		tx := edit.Begin()
		ApplyDrag(tx, nil, d, TC(10, 10))
		tx.Commit()

		got, ok := edit.Get(TC(10, 11))
		if !ok || got != (Tile{Type: Straight, Transform: Rot180}) {
			t.Errorf("pasted straight = %v, %v", got, ok)
		}
		if edit.Course().Len() != 2 {
			t.Errorf("Len() = %d, expected 2", edit.Course().Len())
		}
	})
}

func TestSelectionEdits(t *testing.T) {
	edit := NewCourseEdit(sampleCourse())
	sel := Selection{TC(0, 0): {}}

	tx := edit.Begin()
	ReverseSelection(tx, sel)
	TransformSelection(tx, sel, Rot90)
	tx.Commit()
	got, _ := edit.Get(TC(0, 0))
	if got != (Tile{Type: Straight, Transform: Rot270}) {
		t.Errorf("tile = %v, expected straight/rot270", got)
	}

	sel[TC(0, -1)] = struct{}{}
	tx = edit.Begin()
	TransformSelection(tx, sel, Rot90)
	if tx.Changed() {
		t.Error("multi-tile transform should be ignored")
	}
	DeleteSelection(tx, sel)
	tx.Commit()
	if edit.Course().Len() != 0 {
		t.Errorf("Len() = %d, expected 0", edit.Course().Len())
	}
}

func TestRenderASCII(t *testing.T) {
	got := RenderASCII(sampleCourse(), []Marker{{Pos: CarCoord{0, 1}, Label: '0'}})
	want := "\n<T\n ^\n S\n 0\n"
	if got != want {
		t.Errorf("RenderASCII() =\n%q\nexpected\n%q", got, want)
	}
	if RenderASCII(Course{}, nil) != "" {
		t.Error("empty course should render empty")
	}
}
