package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/pendulum/internal/dynamo"
)

var Presets = map[string]func() *Config{
	"single": func() *Config {
		return withArms(ArmConfig{Length: 150, Mass: 25, Angle: 0})
	},
	"double": func() *Config {
		return withArms(
			ArmConfig{Length: 120, Mass: 25, Angle: 0},
			ArmConfig{Length: 120, Mass: 25, Angle: 0},
		)
	},
	"triple": func() *Config {
		return withArms(
			ArmConfig{Length: 90, Mass: 36, Angle: math.Pi / 6},
			ArmConfig{Length: 90, Mass: 25, Angle: 0},
			ArmConfig{Length: 90, Mass: 16, Angle: -math.Pi / 6},
		)
	},
	"whip": func() *Config {
		arms := make([]ArmConfig, 8)
		for i := range arms {
			arms[i] = ArmConfig{Length: 40, Mass: 64 / float64(i+1), Angle: 0}
		}
		return withArms(arms...)
	},
	"heavy-tail": func() *Config {
		cfg := withArms(
			ArmConfig{Length: 100, Mass: 4, Angle: math.Pi / 4},
			ArmConfig{Length: 100, Mass: 4, Angle: math.Pi / 4},
			ArmConfig{Length: 60, Mass: 100, Angle: 0},
		)
		cfg.Gravity = 0.2
		return cfg
	},
}

func withArms(arms ...ArmConfig) *Config {
	cfg := DefaultConfig()
	cfg.Arms = arms
	return cfg
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Config, error) {
	mk, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	return mk(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
