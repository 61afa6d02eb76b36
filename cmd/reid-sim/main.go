package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/LdDl/player-reid/reid"
)

var (
	configPath = flag.String("config", "", "Path to YAML configuration file. Defaults are used when empty")
	frames     = flag.Int("frames", 300, "Number of frames to simulate")
	seed       = flag.Int64("seed", 1, "Random seed for synthetic detector")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error. Overrides configuration file")
	logFormat  = flag.String("log-format", "", "Log format: json or text. Overrides configuration file")
)

type frameOutput struct {
	Frame   int                  `json:"frame"`
	Time    float64              `json:"time"`
	Objects []reid.TrackedObject `json:"objects"`
}

type summaryOutput struct {
	Matching reid.MatchingAlgorithm `json:"matching"`
	Stats    reid.Stats             `json:"stats"`
	Players  []reid.PlayerSummary   `json:"players"`
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("Can't load configuration", "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}
	logger := newLogger(cfg.Logging.Level, cfg.Logging.Format)

	tracker, err := reid.NewPlayerTracker(cfg.Tracker, reid.WithLogger(logger))
	if err != nil {
		logger.Error("Can't create tracker", "error", err)
		os.Exit(1)
	}
	logger.Info("Simulation started",
		"frames", *frames,
		"seed", *seed,
		"matching", cfg.Tracker.MatchingAlgorithm,
		"max_distance", cfg.Tracker.MaxDistance,
		"reidentification_threshold", cfg.Tracker.ReidentificationThreshold,
	)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	if err := run(tracker, newDetector(cfg.Simulation, *seed), cfg.Simulation.FPS, *frames, out); err != nil {
		logger.Error("Simulation failed", "error", err)
		out.Flush()
		os.Exit(1)
	}
	stats := tracker.GetStats()
	logger.Info("Simulation finished",
		"total_players", stats.TotalPlayers,
		"active_players", stats.ActivePlayers,
		"reidentifications", stats.Reidentifications,
		"dropped_detections", stats.DroppedDetections,
	)
}

// run feeds synthetic frames to tracker and writes JSON lines: one per frame and a final summary
func run(tracker *reid.PlayerTracker, source *detector, fps float64, frames int, out *bufio.Writer) error {
	encoder := json.NewEncoder(out)
	for frame := 0; frame < frames; frame++ {
		currentTime := float64(frame) / fps
		objects := tracker.Step(source.detect(frame), currentTime)
		err := encoder.Encode(frameOutput{
			Frame:   frame,
			Time:    currentTime,
			Objects: objects,
		})
		if err != nil {
			return err
		}
	}
	return encoder.Encode(summaryOutput{
		Matching: tracker.Config().MatchingAlgorithm,
		Stats:    tracker.GetStats(),
		Players:  tracker.GetPlayerHistory(),
	})
}

// newLogger returns a structured logger writing to stderr, stdout is reserved for tracking output.
// level: "debug", "info", "warn", "error" (default "info").
// format: "json" or "text" (default "text").
func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h)
}
