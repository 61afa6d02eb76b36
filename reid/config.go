package reid

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

// MatchingAlgorithm is for algorithm type for matching detections to existing players
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmGreedy lets every player (in ascending ID order) claim its best remaining detection.
	// Could leave later players with suboptimal match even when better global pairing exists.
	MatchingAlgorithmGreedy MatchingAlgorithm = iota
	// MatchingAlgorithmHungarian uses the Hungarian algorithm (Kuhn-Munkres) for optimal assignment over the same gated scores
	MatchingAlgorithmHungarian
)

func (algorithm MatchingAlgorithm) String() string {
	switch algorithm {
	case MatchingAlgorithmGreedy:
		return "greedy"
	case MatchingAlgorithmHungarian:
		return "hungarian"
	default:
		return "unknown"
	}
}

// ParseMatchingAlgorithm returns algorithm by its name ("greedy" or "hungarian")
func ParseMatchingAlgorithm(name string) (MatchingAlgorithm, error) {
	switch name {
	case "", "greedy":
		return MatchingAlgorithmGreedy, nil
	case "hungarian":
		return MatchingAlgorithmHungarian, nil
	default:
		return MatchingAlgorithmGreedy, errors.Wrapf(ErrInvalidConfig, "unknown matching algorithm '%s'", name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (algorithm MatchingAlgorithm) MarshalText() ([]byte, error) {
	return []byte(algorithm.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (algorithm *MatchingAlgorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseMatchingAlgorithm(string(text))
	if err != nil {
		return err
	}
	*algorithm = parsed
	return nil
}

// TrackerConfig holds tunable parameters of PlayerTracker
type TrackerConfig struct {
	// Detection farther than this from player's anchor position can't be matched to it (frame units). Default 100
	MaxDistance float64 `yaml:"max_distance"`
	// Similarity must be strictly greater than this to re-identify. Default 0.7
	ReidentificationThreshold float64 `yaml:"reidentification_threshold"`
	// Player is removed once its miss-counter exceeds this value. Default 30
	MaxFramesBeforeRemoval int `yaml:"max_frames_before_removal"`
	// Number of most recent samples kept per player. Default 50
	MaxHistoryLen int `yaml:"max_history_len"`
	// EMA factor for appearance features. Default 0.3
	SmoothingFactor float64 `yaml:"smoothing_factor"`
	// Default is greedy
	MatchingAlgorithm MatchingAlgorithm `yaml:"matching_algorithm"`
	// Measure matching distance from Kalman-predicted position instead of last seen one. Default false
	UseMotionPrediction bool `yaml:"use_motion_prediction"`
	// Time step between frames for motion filter. Default 1.0 (one frame)
	MotionTimeStep float64 `yaml:"motion_time_step"`
}

// DefaultTrackerConfig returns default configuration
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		MaxDistance:               100.0,
		ReidentificationThreshold: 0.7,
		MaxFramesBeforeRemoval:    30,
		MaxHistoryLen:             50,
		SmoothingFactor:           0.3,
		MatchingAlgorithm:         MatchingAlgorithmGreedy,
		UseMotionPrediction:       false,
		MotionTimeStep:            1.0,
	}
}

// Validate checks configuration. Returned error wraps ErrInvalidConfig
func (cfg TrackerConfig) Validate() error {
	if !isFinite(cfg.MaxDistance, cfg.ReidentificationThreshold, cfg.SmoothingFactor, cfg.MotionTimeStep) {
		return errors.Wrap(ErrInvalidConfig, "non-finite parameter")
	}
	if cfg.MaxDistance <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "max distance must be positive, got %v", cfg.MaxDistance)
	}
	if cfg.ReidentificationThreshold < 0 || cfg.ReidentificationThreshold > 1 {
		return errors.Wrapf(ErrInvalidConfig, "re-identification threshold must be in [0, 1], got %v", cfg.ReidentificationThreshold)
	}
	if cfg.MaxFramesBeforeRemoval < 0 {
		return errors.Wrapf(ErrInvalidConfig, "max frames before removal must be non-negative, got %d", cfg.MaxFramesBeforeRemoval)
	}
	if cfg.MaxHistoryLen < 1 {
		return errors.Wrapf(ErrInvalidConfig, "max history length must be at least 1, got %d", cfg.MaxHistoryLen)
	}
	if cfg.SmoothingFactor < 0 || cfg.SmoothingFactor > 1 {
		return errors.Wrapf(ErrInvalidConfig, "smoothing factor must be in [0, 1], got %v", cfg.SmoothingFactor)
	}
	if cfg.MotionTimeStep <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "motion time step must be positive, got %v", cfg.MotionTimeStep)
	}
	switch cfg.MatchingAlgorithm {
	case MatchingAlgorithmGreedy, MatchingAlgorithmHungarian:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown matching algorithm %d", cfg.MatchingAlgorithm)
	}
	return nil
}

// TrackerOption configures optional PlayerTracker's dependencies
type TrackerOption func(tracker *PlayerTracker)

// WithLogger sets structured logger. Tracker logs at debug level only (warn for motion filter failures)
func WithLogger(logger *slog.Logger) TrackerOption {
	return func(tracker *PlayerTracker) {
		if logger != nil {
			tracker.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
