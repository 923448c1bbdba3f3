package levels_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/track"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "levels")
}

func TestDefaultLevels(t *testing.T) {
	lvls, err := levels.Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if len(lvls) < 2 {
		t.Fatalf("expected at least 2 levels, got %d", len(lvls))
	}
	if lvls[0].ID != "01_first_lap" {
		t.Errorf("first level = %q, expected 01_first_lap", lvls[0].ID)
	}
	if lvls[0].Tutorial == nil || *lvls[0].Tutorial != 0 {
		t.Errorf("first level should be tutorial 0")
	}
	if !lvls[0].IsBanned(track.Merge) || lvls[0].IsBanned(track.Turn) {
		t.Errorf("first level bans = %v", lvls[0].Banned.Types())
	}

	keys := make(map[string]string)
	for _, l := range lvls {
		if prev, ok := keys[l.Key()]; ok {
			t.Errorf("levels %s and %s share key %s", prev, l.ID, l.Key())
		}
		keys[l.Key()] = l.ID
	}
}

func TestSolutionsRespectBans(t *testing.T) {
	lvls, err := levels.Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	sols, err := levels.Solutions()
	if err != nil {
		t.Fatalf("Solutions failed: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("expected bundled solutions")
	}
	for id, course := range sols {
		lvl, err := levels.Find(lvls, id)
		if err != nil {
			t.Errorf("solution for unknown level %s", id)
			continue
		}
		if err := lvl.ValidateCourse(course); err != nil {
			t.Errorf("solution %s: %v", id, err)
		}
		if len(course.FinishPositions()) == 0 {
			t.Errorf("solution %s has no finish tile", id)
		}
	}
}

func TestLevelKey(t *testing.T) {
	a := levels.Custom(3, []int{2, 1, 0})
	b := levels.Level{ID: "other", Name: "Other", Cars: 3, Finish: []int{2, 1, 0}}
	c := levels.Custom(3, []int{2, 0, 1})
	d := levels.Custom(2, []int{1, 0})

	if a.Key() != b.Key() {
		t.Errorf("same goal should share key: %s vs %s", a.Key(), b.Key())
	}
	if a.Key() == c.Key() || a.Key() == d.Key() {
		t.Errorf("different goals should not share keys")
	}
	if len(a.Key()) != 16 {
		t.Errorf("Key() = %q, expected 16 hex digits", a.Key())
	}
}

func TestSolveDataCombine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     levels.SolveData
		expected levels.SolveData
	}{
		{"first better", levels.SolveData{Tiles: 4, Turns: 10}, levels.SolveData{Tiles: 6, Turns: 12}, levels.SolveData{Tiles: 4, Turns: 10}},
		{"mixed", levels.SolveData{Tiles: 4, Turns: 20}, levels.SolveData{Tiles: 9, Turns: 12}, levels.SolveData{Tiles: 4, Turns: 12}},
		{"equal", levels.SolveData{Tiles: 5, Turns: 5}, levels.SolveData{Tiles: 5, Turns: 5}, levels.SolveData{Tiles: 5, Turns: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Combine(tt.b); got != tt.expected {
				t.Errorf("Combine() = %+v, expected %+v", got, tt.expected)
			}
			if got := tt.b.Combine(tt.a); got != tt.expected {
				t.Errorf("Combine() reversed = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestParseFinishOrder(t *testing.T) {
	tests := []struct {
		input    string
		cars     int
		expected []int
		code     string
	}{
		{"2 0 1", 3, []int{2, 0, 1}, ""},
		{"2,0, 1", 3, []int{2, 0, 1}, ""},
		{"", 3, nil, ""},
		{"cars 1 then 0", 2, []int{1, 0}, ""},
		{"0 3", 3, nil, "FINISH_OUT_OF_RANGE"},
		{"1 1", 3, nil, "FINISH_DUPLICATE"},
		{"12", 3, nil, "FINISH_OUT_OF_RANGE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := levels.ParseFinishOrder(tt.cars, tt.input)
			if tt.code != "" {
				var verr levels.ValidationError
				if !errors.As(err, &verr) || verr.Code != tt.code {
					t.Fatalf("ParseFinishOrder(%q) error = %v, expected code %s", tt.input, err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFinishOrder(%q) failed: %v", tt.input, err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ParseFinishOrder(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("ParseFinishOrder(%q) = %v, expected %v", tt.input, got, tt.expected)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		level levels.Level
		code  string
	}{
		{"valid", levels.Custom(3, []int{2, 0}), ""},
		{"no cars", levels.Custom(0, nil), "INVALID_CARS"},
		{"out of range", levels.Custom(2, []int{0, 2}), "FINISH_OUT_OF_RANGE"},
		{"negative", levels.Custom(2, []int{-1}), "FINISH_OUT_OF_RANGE"},
		{"duplicate", levels.Custom(2, []int{1, 1}), "FINISH_DUPLICATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.level.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			var verr levels.ValidationError
			if !errors.As(err, &verr) || verr.Code != tt.code {
				t.Errorf("Validate() = %v, expected code %s", err, tt.code)
			}
		})
	}
}

func TestValidateCourseBanned(t *testing.T) {
	lvl := levels.Level{ID: "x", Cars: 1, Finish: []int{0}, Banned: track.NewTileSet(track.Merge)}
	ok := track.CourseFromEntries([]track.Entry{
		{Pos: track.TC(0, 0), Tile: track.DefaultTile(track.Finish)},
	})
	if err := lvl.ValidateCourse(ok); err != nil {
		t.Errorf("ValidateCourse() = %v, expected nil", err)
	}

	bad := ok.Set(track.TC(0, -1), track.DefaultTile(track.Merge))
	err := lvl.ValidateCourse(bad)
	var verr levels.ValidationError
	if !errors.As(err, &verr) || verr.Code != "BANNED_TILE" {
		t.Errorf("ValidateCourse() = %v, expected BANNED_TILE", err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml is skipped, notes.txt is ignored
	if len(lvls) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(lvls))
	}

	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("lvl_a")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "lvl_a" {
		t.Errorf("expected name to default to ID, got %q", lvl.Name)
	}
	if !lvl.IsBanned(track.Turn) {
		t.Errorf("expected turn to be banned")
	}
	if filepath.Base(lvl.FilePath) != "custom.yaml" {
		t.Errorf("FilePath = %q, expected custom.yaml", lvl.FilePath)
	}

	nested, err := loader.LoadByID("lvl_c")
	if err != nil {
		t.Fatalf("LoadByID nested failed: %v", err)
	}
	if nested.Cars != 3 || len(nested.Finish) != 1 || nested.Finish[0] != 2 {
		t.Errorf("nested level = %+v", nested)
	}
}

func TestLoaderNotFound(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	if _, err := loader.LoadByID("nonexistent"); err == nil {
		t.Error("expected error for nonexistent level")
	}
	if _, err := loader.LoadFile(filepath.Join(getTestdataPath(), "broken.yaml")); err == nil {
		t.Error("expected error for invalid finish order")
	}
}

func TestLoaderListIDs(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	expected := []string{"lvl_a", "lvl_b", "lvl_c"}
	if len(ids) != len(expected) {
		t.Fatalf("ListIDs() = %v, expected %v", ids, expected)
	}
	for i := range ids {
		if ids[i] != expected[i] {
			t.Errorf("ListIDs() = %v, expected %v", ids, expected)
		}
	}
}
