// Package config provides YAML-based application configuration for
// trackrace: race spawning, replay timing, key bindings and file locations.
package config

import "fmt"

// AppConfig contains all configuration for trackrace.
type AppConfig struct {
	Race     RaceConfig     `yaml:"race"`
	Playback PlaybackConfig `yaml:"playback"`
	Keys     KeysConfig     `yaml:"keys"`
	Storage  StorageConfig  `yaml:"storage"`
	Levels   LevelsConfig   `yaml:"levels"`
	Log      LogConfig      `yaml:"log"`
}

// RaceConfig defines how cars enter a race.
type RaceConfig struct {
	SpawnPolicy string `yaml:"spawn_policy"` // "always" or "random"
	SpawnChance uint8  `yaml:"spawn_chance"` // eighths of rounds, random only
	Seed        int64  `yaml:"seed"`
}

// PlaybackConfig defines replay timing.
type PlaybackConfig struct {
	StepMillis int `yaml:"step_millis"` // Delay between rounds while playing
	FastMillis int `yaml:"fast_millis"` // Delay between rounds while fast-forwarding
}

// KeysConfig maps replay actions to key names as reported by bubbletea.
type KeysConfig struct {
	Play    []string `yaml:"play"`
	Fast    []string `yaml:"fast"`
	Forward []string `yaml:"forward"`
	Back    []string `yaml:"back"`
	Home    []string `yaml:"home"`
	End     []string `yaml:"end"`
	Help    []string `yaml:"help"`
	Quit    []string `yaml:"quit"`
}

// StorageConfig defines where courses and solves are saved.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LevelsConfig defines where user levels are read from.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Spawn policy names.
const (
	SpawnAlways = "always"
	SpawnRandom = "random"
)

// Validate checks the values a YAML file may get wrong.
func (c AppConfig) Validate() error {
	switch c.Race.SpawnPolicy {
	case SpawnAlways:
	case SpawnRandom:
		if c.Race.SpawnChance > 8 {
			return fmt.Errorf("config: spawn_chance %d is above 8", c.Race.SpawnChance)
		}
	default:
		return fmt.Errorf("config: unknown spawn_policy %q", c.Race.SpawnPolicy)
	}
	if c.Playback.StepMillis <= 0 || c.Playback.FastMillis <= 0 {
		return fmt.Errorf("config: playback delays must be positive")
	}
	return nil
}
