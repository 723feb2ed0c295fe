package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTanks loads the tank game configuration.
// Search order: customPath -> ~/.tanks/configs/tanks.yaml -> ./configs/tanks.yaml -> embedded default.
// Files only need to list the keys they override.
func LoadTanks(customPath string) (TanksConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TanksConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTanks(data)
		if err != nil {
			return TanksConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tanks.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseTanks(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "tanks.yaml")); err == nil {
		if cfg, err := parseTanks(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseTanks(defaultTanksYAML)
	if err != nil {
		return DefaultTanksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTanks overlays data onto the built-in defaults.
func parseTanks(data []byte) (TanksConfig, error) {
	cfg := DefaultTanksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TanksConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tanks", "configs", filename)
}

// ApplyTanksPreset modifies the config based on a difficulty preset.
func ApplyTanksPreset(cfg *TanksConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Player.Health = 5
		cfg.Player.Ammo = 50
		cfg.Tiles.HomeHealth = 5
	case DifficultyHard:
		cfg.Player.Health = 2
		cfg.Player.Ammo = 20
		cfg.Tiles.HomeHealth = 2
		cfg.Spawns.EnemyBudget = 3
	}
}
