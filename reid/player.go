package reid

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// TrackSample is a single recorded observation of player
type TrackSample struct {
	Time       float64 `json:"time"`
	Position   Point   `json:"position"`
	Confidence float64 `json:"confidence"`
}

// Player is a persisted identity: tracked object with appearance and position history.
type Player struct {
	ID        int     `json:"id"`
	FirstSeen float64 `json:"first_seen"`
	LastSeen  float64 `json:"last_seen"`
	// Top-left corner of the last matched detection
	LastPosition   Point         `json:"last_position"`
	LastBBox       Rectangle     `json:"last_bbox"`
	LastConfidence float64       `json:"last_confidence"`
	Features       FeatureVector `json:"features"`
	// Most recent samples, oldest first
	History []TrackSample `json:"history"`
	// Consecutive frames without a match
	FramesSinceLastSeen int `json:"frames_since_last_seen"`
	// Position estimated by motion filter for the current frame
	PredictedPosition Point `json:"predicted_position"`

	maxHistoryLen int
	motion        *kalman_filter.Kalman2D
}

func newPlayer(id int, detection Detection, currentTime float64, maxHistoryLen int, dt float64) *Player {
	position := detection.Position()

	/* Kalman filter props */
	ux := 1.0
	uy := 1.0
	stdDevA := 2.0
	stdDevMx := 0.1
	stdDevMy := 0.1
	kf := kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(position.X, position.Y))

	player := Player{
		ID:                  id,
		FirstSeen:           currentTime,
		LastSeen:            currentTime,
		LastPosition:        position,
		LastBBox:            detection.BBox(),
		LastConfidence:      detection.Confidence,
		Features:            detection.Features,
		History:             make([]TrackSample, 0, maxHistoryLen),
		FramesSinceLastSeen: 0,
		PredictedPosition:   position,
		maxHistoryLen:       maxHistoryLen,
		motion:              kf,
	}
	player.appendSample(TrackSample{
		Time:       currentTime,
		Position:   position,
		Confidence: detection.Confidence,
	})
	return &player
}

// anchor returns position which detections are measured against during matching
func (player *Player) anchor(useMotionPrediction bool) Point {
	if useMotionPrediction {
		return player.PredictedPosition
	}
	return player.LastPosition
}

// predictNextPosition executes Kalman filter's first step
func (player *Player) predictNextPosition() {
	if player.motion == nil {
		return
	}
	player.motion.Predict()
	stateX, stateY := player.motion.GetState()
	player.PredictedPosition = NewPoint(stateX, stateY)
}

// update merges detection into player: position, smoothed appearance, history sample and miss-counter reset.
// Returned error is about motion filter only: player's state is updated anyway.
func (player *Player) update(detection Detection, currentTime, alpha float64) error {
	position := detection.Position()
	player.LastSeen = currentTime
	player.LastPosition = position
	player.LastBBox = detection.BBox()
	player.LastConfidence = detection.Confidence
	player.Features.smooth(detection.Features, alpha)
	player.appendSample(TrackSample{
		Time:       currentTime,
		Position:   position,
		Confidence: detection.Confidence,
	})
	player.FramesSinceLastSeen = 0
	if player.motion == nil {
		return nil
	}
	err := player.motion.Update(position.X, position.Y)
	if err != nil {
		return errors.Wrapf(err, "Can't update motion filter of player %d", player.ID)
	}
	return nil
}

func (player *Player) appendSample(sample TrackSample) {
	player.History = append(player.History, sample)
	if len(player.History) > player.maxHistoryLen {
		player.History = player.History[len(player.History)-player.maxHistoryLen:]
	}
}

// snapshot returns copy of player which does not share memory with the tracker's state
func (player *Player) snapshot() Player {
	cp := *player
	cp.History = make([]TrackSample, len(player.History))
	copy(cp.History, player.History)
	cp.motion = nil
	return cp
}
