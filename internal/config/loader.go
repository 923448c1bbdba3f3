package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads the trackrace configuration. Values missing from a file keep
// their defaults.
// Search order: customPath -> ~/.trackrace/config.yaml -> ./configs/trackrace.yaml -> embedded default
func Load(customPath string) (AppConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultAppConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultAppConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/trackrace.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultAppYAML)
	if err != nil {
		return DefaultAppConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (AppConfig, error) {
	cfg := DefaultAppConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".trackrace", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// PlaybackPreset represents a named replay speed.
type PlaybackPreset string

const (
	PlaybackSlow   PlaybackPreset = "slow"
	PlaybackNormal PlaybackPreset = "normal"
	PlaybackFast   PlaybackPreset = "fast"
)

// ApplyPlaybackPreset modifies the config based on a playback preset.
// Unknown presets leave the config untouched.
func ApplyPlaybackPreset(cfg *AppConfig, preset PlaybackPreset) {
	switch preset {
	case PlaybackSlow:
		cfg.Playback.StepMillis = 800
		cfg.Playback.FastMillis = 200
	case PlaybackNormal:
		cfg.Playback.StepMillis = 400
		cfg.Playback.FastMillis = 80
	case PlaybackFast:
		cfg.Playback.StepMillis = 150
		cfg.Playback.FastMillis = 30
	}
}
