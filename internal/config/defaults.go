package config

import (
	_ "embed"
)

//go:embed defaults/trackrace.yaml
var defaultAppYAML []byte

// DefaultAppConfig returns the default trackrace configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Race: RaceConfig{
			SpawnPolicy: SpawnAlways,
			SpawnChance: 4,
			Seed:        1,
		},
		Playback: PlaybackConfig{
			StepMillis: 400,
			FastMillis: 80,
		},
		Keys: KeysConfig{
			Play:    []string{" ", "p"},
			Fast:    []string{"f"},
			Forward: []string{"right", "l"},
			Back:    []string{"left", "h"},
			Home:    []string{"home", "g"},
			End:     []string{"end", "G"},
			Help:    []string{"?"},
			Quit:    []string{"q", "esc", "ctrl+c"},
		},
		Storage: StorageConfig{
			DBPath: "~/.trackrace/trackrace.db",
		},
		Levels: LevelsConfig{
			Dir: "~/.trackrace/levels",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
