// Package formats provides the YAML file formats for levels and courses.
package formats

import (
	"fmt"

	"github.com/vovakirdan/trackrace/internal/track"
	"gopkg.in/yaml.v3"
)

// YAMLLevelFile is the top-level structure of a level file.
type YAMLLevelFile struct {
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents a single level in YAML format.
type YAMLLevel struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Cars     int      `yaml:"cars"`
	Finish   []int    `yaml:"finish"`
	Tutorial *int     `yaml:"tutorial,omitempty"`
	Banned   []string `yaml:"banned,omitempty"`
}

// Level represents a parsed level.
type Level struct {
	ID       string
	Name     string
	Cars     int
	Finish   []int
	Tutorial *int
	Banned   track.TileSet
}

// ParseYAML parses a level file.
func ParseYAML(data []byte) ([]Level, error) {
	var f YAMLLevelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	out := make([]Level, 0, len(f.Levels))
	for _, yl := range f.Levels {
		var banned track.TileSet
		for _, name := range yl.Banned {
			t, err := track.ParseTileType(name)
			if err != nil {
				return nil, fmt.Errorf("level %q: %w", yl.ID, err)
			}
			banned = banned.With(t)
		}
		name := yl.Name
		if name == "" {
			name = yl.ID
		}
		out = append(out, Level{
			ID:       yl.ID,
			Name:     name,
			Cars:     yl.Cars,
			Finish:   yl.Finish,
			Tutorial: yl.Tutorial,
			Banned:   banned,
		})
	}
	return out, nil
}

// YAMLTile is one placed tile in a course file.
type YAMLTile struct {
	Coord     [2]int `yaml:"coord,flow"`
	Type      string `yaml:"type"`
	Transform string `yaml:"transform,omitempty"`
	Offset    uint8  `yaml:"offset,omitempty"`
}

// EncodeCourse converts a course to its file representation.
func EncodeCourse(c track.Course) []YAMLTile {
	entries := c.Entries()
	out := make([]YAMLTile, len(entries))
	for i, e := range entries {
		yt := YAMLTile{
			Coord:  [2]int{e.Pos.X, e.Pos.Y},
			Type:   e.Tile.Type.String(),
			Offset: e.Tile.Offset,
		}
		if e.Tile.Transform != track.Id {
			yt.Transform = e.Tile.Transform.String()
		}
		out[i] = yt
	}
	return out
}

// DecodeCourse converts a file representation back to a course.
func DecodeCourse(tiles []YAMLTile) (track.Course, error) {
	entries := make([]track.Entry, 0, len(tiles))
	for _, yt := range tiles {
		t, err := track.ParseTileType(yt.Type)
		if err != nil {
			return track.Course{}, err
		}
		tr := track.Id
		if yt.Transform != "" {
			var ok bool
			if tr, ok = track.ParseDihedral(yt.Transform); !ok {
				return track.Course{}, fmt.Errorf("unknown transform %q", yt.Transform)
			}
		}
		if yt.Offset > 1 {
			return track.Course{}, fmt.Errorf("offset %d out of range at %v", yt.Offset, yt.Coord)
		}
		entries = append(entries, track.Entry{
			Pos:  track.TC(yt.Coord[0], yt.Coord[1]),
			Tile: track.Tile{Type: t, Transform: tr, Offset: yt.Offset},
		})
	}
	return track.CourseFromEntries(entries), nil
}

// MarshalCourses encodes named courses. Names come out sorted.
func MarshalCourses(courses map[string]track.Course) ([]byte, error) {
	raw := make(map[string][]YAMLTile, len(courses))
	for name, c := range courses {
		raw[name] = EncodeCourse(c)
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// UnmarshalCourses decodes named courses.
func UnmarshalCourses(data []byte) (map[string]track.Course, error) {
	var raw map[string][]YAMLTile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	out := make(map[string]track.Course, len(raw))
	for name, tiles := range raw {
		c, err := DecodeCourse(tiles)
		if err != nil {
			return nil, fmt.Errorf("course %q: %w", name, err)
		}
		out[name] = c
	}
	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
