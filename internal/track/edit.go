package track

// EditState is one version of a course under edit. It tracks the unique
// Finish tile.
type EditState struct {
	Course Course
	finish *TileCoord
}

// NewEditState wraps a course, picking up its first Finish tile.
func NewEditState(c Course) EditState {
	st := EditState{Course: c}
	if fs := c.FinishPositions(); len(fs) > 0 {
		p := fs[0]
		st.finish = &p
	}
	return st
}

// Finish returns the position of the Finish tile, if any.
func (s EditState) Finish() (TileCoord, bool) {
	if s.finish == nil {
		return TileCoord{}, false
	}
	return *s.finish, true
}

func (s *EditState) remove(pos TileCoord) bool {
	if !s.Course.Contains(pos) {
		return false
	}
	if s.finish != nil && *s.finish == pos {
		s.finish = nil
	}
	s.Course = s.Course.Delete(pos)
	return true
}

// set places tile at pos. A new Finish demotes the previous one to Straight.
func (s *EditState) set(pos TileCoord, tile Tile) bool {
	if old, ok := s.Course.Get(pos); ok && old == tile {
		return false
	}
	s.Course = s.Course.Set(pos, tile)
	switch {
	case tile.Type == Finish:
		if s.finish != nil && *s.finish != pos {
			if old, ok := s.Course.Get(*s.finish); ok {
				old.Type = Straight
				s.Course = s.Course.Set(*s.finish, old)
			}
		}
		p := pos
		s.finish = &p
	case s.finish != nil && *s.finish == pos:
		s.finish = nil
	}
	return true
}

// CourseEdit is an undo/redo history of course versions.
type CourseEdit struct {
	stack []EditState
	pos   int

	// OnChange runs with the current course after every push, undo and redo.
	OnChange func(Course)
}

// NewCourseEdit starts a history holding c.
func NewCourseEdit(c Course) *CourseEdit {
	return &CourseEdit{stack: []EditState{NewEditState(c)}}
}

// State returns the current version.
func (e *CourseEdit) State() EditState {
	return e.stack[e.pos]
}

// Course returns the current course.
func (e *CourseEdit) Course() Course {
	return e.stack[e.pos].Course
}

// Finish returns the current Finish position.
func (e *CourseEdit) Finish() (TileCoord, bool) {
	return e.State().Finish()
}

// Get returns the tile at pos in the current course.
func (e *CourseEdit) Get(pos TileCoord) (Tile, bool) {
	return e.Course().Get(pos)
}

// CanUndo reports whether Undo would change the current version.
func (e *CourseEdit) CanUndo() bool { return e.pos > 0 }

// CanRedo reports whether Redo would change the current version.
func (e *CourseEdit) CanRedo() bool { return e.pos < len(e.stack)-1 }

// Len returns the number of versions in the history.
func (e *CourseEdit) Len() int { return len(e.stack) }

// Begin starts a transaction against the current version.
func (e *CourseEdit) Begin() *Transaction {
	return &Transaction{edit: e, state: e.State()}
}

// SetSingle places one tile as its own transaction.
func (e *CourseEdit) SetSingle(pos TileCoord, tile Tile) {
	tx := e.Begin()
	tx.Set(pos, tile)
	tx.Commit()
}

// SetCourse replaces the whole course as a new version.
func (e *CourseEdit) SetCourse(c Course) {
	e.push(NewEditState(c))
}

func (e *CourseEdit) push(st EditState) {
	e.stack = append(e.stack[:e.pos+1], st)
	e.pos++
	e.changed()
}

// Undo steps back one version.
func (e *CourseEdit) Undo() bool {
	if !e.CanUndo() {
		return false
	}
	e.pos--
	e.changed()
	return true
}

// Redo steps forward one version.
func (e *CourseEdit) Redo() bool {
	if !e.CanRedo() {
		return false
	}
	e.pos++
	e.changed()
	return true
}

func (e *CourseEdit) changed() {
	if e.OnChange != nil {
		e.OnChange(e.Course())
	}
}

// Transaction groups several edits into one undo step.
type Transaction struct {
	edit    *CourseEdit
	state   EditState
	changed bool
	done    bool
}

// Course returns the course as modified so far.
func (tx *Transaction) Course() Course {
	return tx.state.Course
}

// Get returns the tile at pos as modified so far.
func (tx *Transaction) Get(pos TileCoord) (Tile, bool) {
	return tx.state.Course.Get(pos)
}

// Set places tile at pos.
func (tx *Transaction) Set(pos TileCoord, tile Tile) {
	tx.changed = tx.state.set(pos, tile) || tx.changed
}

// Remove clears pos.
func (tx *Transaction) Remove(pos TileCoord) {
	tx.changed = tx.state.remove(pos) || tx.changed
}

// Modify replaces the tile at pos with fn(tile). Empty cells are skipped.
func (tx *Transaction) Modify(pos TileCoord, fn func(Tile) Tile) {
	if tile, ok := tx.state.Course.Get(pos); ok {
		tx.Set(pos, fn(tile))
	}
}

// ToggleLights flips the light phase at pos.
func (tx *Transaction) ToggleLights(pos TileCoord) {
	tx.Modify(pos, Tile.ToggleLights)
}

// ApplyTransform composes e after the transform of the tile at pos and
// XORs offset into its phase, as one edit.
func (tx *Transaction) ApplyTransform(pos TileCoord, e DihedralElement, offset uint8) {
	tx.Modify(pos, func(t Tile) Tile { return t.ApplyTransform(e, offset) })
}

// Changed reports whether any edit modified the course.
func (tx *Transaction) Changed() bool {
	return tx.changed
}

// Commit pushes the result as a new version. A transaction that changed
// nothing pushes nothing. Committing twice is a no-op.
func (tx *Transaction) Commit() {
	if tx.done {
		return
	}
	tx.done = true
	if tx.changed {
		tx.edit.push(tx.state)
	}
}
