package levels

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/trackrace/internal/levels/formats"
	"github.com/vovakirdan/trackrace/internal/track"
)

//go:embed data/levels.yaml
var defaultLevels []byte

//go:embed data/solutions.yaml
var defaultSolutions []byte

// Default returns the bundled levels in file order.
func Default() ([]Level, error) {
	parsed, err := formats.ParseYAML(defaultLevels)
	if err != nil {
		return nil, fmt.Errorf("levels: bundled levels: %w", err)
	}
	return fromParsed(parsed, "")
}

// Solutions returns known solutions for the bundled levels, keyed by level
// ID.
func Solutions() (map[string]track.Course, error) {
	courses, err := formats.UnmarshalCourses(defaultSolutions)
	if err != nil {
		return nil, fmt.Errorf("levels: bundled solutions: %w", err)
	}
	return courses, nil
}

func fromParsed(parsed []formats.Level, path string) ([]Level, error) {
	out := make([]Level, 0, len(parsed))
	for _, p := range parsed {
		lvl := Level{
			ID:       p.ID,
			Name:     p.Name,
			Cars:     p.Cars,
			Finish:   p.Finish,
			Tutorial: p.Tutorial,
			Banned:   p.Banned,
			FilePath: path,
		}
		if err := lvl.Validate(); err != nil {
			return nil, err
		}
		out = append(out, lvl)
	}
	return out, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		lvls, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, lvls...)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads every level in a single file.
func (l *Loader) LoadFile(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	return fromParsed(parsed, path)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	return Find(levels, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Find returns the level with the given ID.
func Find(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) ([]formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
