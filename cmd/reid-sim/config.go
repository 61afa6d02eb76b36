package main

import (
	"fmt"
	"os"

	"github.com/LdDl/player-reid/reid"
	"gopkg.in/yaml.v3"
)

// Config is the harness configuration file layout
type Config struct {
	Tracker    reid.TrackerConfig `yaml:"tracker"`
	Simulation SimulationConfig   `yaml:"simulation"`
	Logging    LoggingConfig      `yaml:"logging"`
}

// SimulationConfig describes synthetic field and players
type SimulationConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	FPS        float64 `yaml:"fps"`
	MinPlayers int     `yaml:"min_players"`
	MaxPlayers int     `yaml:"max_players"`
	// Probability of a player being detected on a frame
	Visibility float64 `yaml:"visibility"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaultConfig() Config {
	return Config{
		Tracker: reid.DefaultTrackerConfig(),
		Simulation: SimulationConfig{
			Width:      1280,
			Height:     720,
			FPS:        30,
			MinPlayers: 6,
			MaxPlayers: 9,
			Visibility: 0.9,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// loadConfig reads YAML file over defaults. Empty path gives defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if err := cfg.Tracker.Validate(); err != nil {
		return fmt.Errorf("tracker: %w", err)
	}
	sim := cfg.Simulation
	if sim.Width <= 50 || sim.Height <= 80 {
		return fmt.Errorf("simulation: field %vx%v is too small", sim.Width, sim.Height)
	}
	if sim.FPS <= 0 {
		return fmt.Errorf("simulation: fps must be positive, got %v", sim.FPS)
	}
	if sim.MinPlayers < 0 || sim.MaxPlayers < sim.MinPlayers {
		return fmt.Errorf("simulation: bad players range [%d, %d]", sim.MinPlayers, sim.MaxPlayers)
	}
	if sim.Visibility < 0 || sim.Visibility > 1 {
		return fmt.Errorf("simulation: visibility must be in [0, 1], got %v", sim.Visibility)
	}
	return nil
}
