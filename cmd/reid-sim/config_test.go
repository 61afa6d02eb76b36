package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LdDl/player-reid/reid"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tracker != reid.DefaultTrackerConfig() {
		t.Errorf("Expected default tracker configuration, got %+v", cfg.Tracker)
	}
	if cfg.Simulation.FPS != 30 {
		t.Errorf("Expected 30 fps, got %v", cfg.Simulation.FPS)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	data := []byte(`
tracker:
  max_distance: 150
  matching_algorithm: hungarian
  use_motion_prediction: true
simulation:
  fps: 25
  max_players: 12
logging:
  level: debug
`)
	path := filepath.Join(t.TempDir(), "reid.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tracker.MaxDistance != 150 {
		t.Errorf("Expected max distance 150, got %v", cfg.Tracker.MaxDistance)
	}
	if cfg.Tracker.MatchingAlgorithm != reid.MatchingAlgorithmHungarian {
		t.Errorf("Expected hungarian matching, got %s", cfg.Tracker.MatchingAlgorithm)
	}
	if !cfg.Tracker.UseMotionPrediction {
		t.Error("Expected motion prediction to be enabled")
	}
	// Fields missing in file keep defaults
	if cfg.Tracker.ReidentificationThreshold != 0.7 || cfg.Tracker.MaxFramesBeforeRemoval != 30 {
		t.Errorf("Defaults should be kept, got %+v", cfg.Tracker)
	}
	if cfg.Simulation.FPS != 25 || cfg.Simulation.MaxPlayers != 12 || cfg.Simulation.MinPlayers != 6 {
		t.Errorf("Wrong simulation configuration: %+v", cfg.Simulation)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Wrong logging configuration: %+v", cfg.Logging)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	files := map[string]string{
		"algorithm.yaml":  "tracker:\n  matching_algorithm: auction\n",
		"threshold.yaml":  "tracker:\n  reidentification_threshold: 2\n",
		"players.yaml":    "simulation:\n  min_players: 5\n  max_players: 2\n",
		"malformed.yaml":  "tracker: [\n",
		"visibility.yaml": "simulation:\n  visibility: 1.5\n",
	}
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadConfig(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := loadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Missing file should give error")
	}
}
