package reid

import (
	"log/slog"
	"slices"
)

// TrackStatus describes how detection was resolved on current frame
type TrackStatus string

const (
	TrackStatusTracked      TrackStatus = "tracked"
	TrackStatusReidentified TrackStatus = "reidentified"
	TrackStatusNew          TrackStatus = "new"
)

// TrackedObject is a single output entry of Step: identity assigned to detection on current frame
type TrackedObject struct {
	ID         int         `json:"id"`
	BBox       Rectangle   `json:"bbox"`
	Confidence float64     `json:"confidence"`
	Status     TrackStatus `json:"status"`
}

// PlayerTracker is a multi-object tracker with appearance-based re-identification.
// It is not safe for concurrent use: wrap it into SessionPool when several goroutines share it.
type PlayerTracker struct {
	config TrackerConfig
	logger *slog.Logger

	// Active players only. Removed players are not kept for re-identification
	players map[int]*Player
	// Active IDs in ascending order
	order   []int
	nextID  int
	history []HistoryEvent
	dropped int
}

// NewPlayerTrackerDefault creates default instance of PlayerTracker
func NewPlayerTrackerDefault() *PlayerTracker {
	tracker, err := NewPlayerTracker(DefaultTrackerConfig())
	if err != nil {
		panic("default tracker configuration must be valid: " + err.Error())
	}
	return tracker
}

// NewPlayerTracker creates new instance of PlayerTracker
func NewPlayerTracker(config TrackerConfig, options ...TrackerOption) (*PlayerTracker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	tracker := &PlayerTracker{
		config:  config,
		logger:  discardLogger(),
		players: make(map[int]*Player),
		order:   make([]int, 0),
		nextID:  1,
		history: make([]HistoryEvent, 0),
	}
	for _, option := range options {
		option(tracker)
	}
	return tracker, nil
}

// Config returns tracker's configuration
func (tracker *PlayerTracker) Config() TrackerConfig {
	return tracker.config
}

// Step consumes detections of a single frame and returns identities assigned to them.
// Invalid detections are dropped. Time must be non-decreasing between calls.
func (tracker *PlayerTracker) Step(detections []Detection, currentTime float64) []TrackedObject {
	valid := tracker.filterDetections(detections)

	for _, id := range tracker.order {
		tracker.players[id].predictNextPosition()
	}

	// Snapshot of active players at the start of the frame, ascending ID
	players := make([]*Player, len(tracker.order))
	for i, id := range tracker.order {
		players[i] = tracker.players[id]
	}

	scores := buildScoreMatrix(players, valid, tracker.config.MaxDistance, tracker.config.UseMotionPrediction)
	var matches [][2]int
	switch tracker.config.MatchingAlgorithm {
	case MatchingAlgorithmHungarian:
		matches = performHungarianMatching(scores, len(valid))
	default:
		matches = performGreedyMatching(scores, len(valid))
	}

	trackedObjects := make([]TrackedObject, 0, len(valid))
	matchedPlayers := make([]bool, len(players))
	usedDetections := make([]bool, len(valid))
	for _, match := range matches {
		player := players[match[0]]
		detection := valid[match[1]]
		tracker.updatePlayer(player, detection, currentTime)
		matchedPlayers[match[0]] = true
		usedDetections[match[1]] = true
		trackedObjects = append(trackedObjects, TrackedObject{
			ID:         player.ID,
			BBox:       detection.BBox(),
			Confidence: detection.Confidence,
			Status:     TrackStatusTracked,
		})
	}

	// Age players which have not been found
	for i, player := range players {
		if matchedPlayers[i] {
			continue
		}
		player.FramesSinceLastSeen++
		if player.FramesSinceLastSeen > tracker.config.MaxFramesBeforeRemoval {
			tracker.removePlayer(player.ID)
			tracker.logger.Debug("player removed", "id", player.ID, "last_seen", player.LastSeen, "time", currentTime)
		}
	}

	// Leftovers: re-identify against current state or register as new ones
	for j, detection := range valid {
		if usedDetections[j] {
			continue
		}
		if player := tracker.reidentify(detection); player != nil {
			tracker.updatePlayer(player, detection, currentTime)
			tracker.history = append(tracker.history, HistoryEvent{
				PlayerID: player.ID,
				Action:   HistoryActionReidentified,
				Time:     currentTime,
				Position: detection.Position(),
			})
			trackedObjects = append(trackedObjects, TrackedObject{
				ID:         player.ID,
				BBox:       detection.BBox(),
				Confidence: detection.Confidence,
				Status:     TrackStatusReidentified,
			})
			tracker.logger.Debug("player re-identified", "id", player.ID, "time", currentTime)
			continue
		}
		player := tracker.registerPlayer(detection, currentTime)
		tracker.history = append(tracker.history, HistoryEvent{
			PlayerID: player.ID,
			Action:   HistoryActionFirstDetected,
			Time:     currentTime,
			Position: detection.Position(),
		})
		trackedObjects = append(trackedObjects, TrackedObject{
			ID:         player.ID,
			BBox:       detection.BBox(),
			Confidence: detection.Confidence,
			Status:     TrackStatusNew,
		})
		tracker.logger.Debug("player registered", "id", player.ID, "time", currentTime)
	}
	return trackedObjects
}

func (tracker *PlayerTracker) filterDetections(detections []Detection) []Detection {
	valid := make([]Detection, 0, len(detections))
	for i := range detections {
		if err := ValidateDetection(detections[i]); err != nil {
			tracker.dropped++
			tracker.logger.Debug("detection dropped", "index", i, "error", err)
			continue
		}
		valid = append(valid, detections[i])
	}
	return valid
}

// reidentify returns active player with the highest appearance similarity strictly above threshold.
// Ties go to the lower ID.
func (tracker *PlayerTracker) reidentify(detection Detection) *Player {
	var bestMatch *Player
	bestSimilarity := 0.0
	for _, id := range tracker.order {
		player := tracker.players[id]
		similarity := FeatureSimilarity(player.Features, detection.Features)
		if similarity > bestSimilarity && similarity > tracker.config.ReidentificationThreshold {
			bestSimilarity = similarity
			bestMatch = player
		}
	}
	return bestMatch
}

func (tracker *PlayerTracker) updatePlayer(player *Player, detection Detection, currentTime float64) {
	err := player.update(detection, currentTime, tracker.config.SmoothingFactor)
	if err != nil {
		tracker.logger.Warn("motion filter update failed", "id", player.ID, "error", err)
	}
}

func (tracker *PlayerTracker) registerPlayer(detection Detection, currentTime float64) *Player {
	id := tracker.nextID
	tracker.nextID++
	player := newPlayer(id, detection, currentTime, tracker.config.MaxHistoryLen, tracker.config.MotionTimeStep)
	tracker.players[id] = player
	// IDs are monotonic, so appending keeps order sorted
	tracker.order = append(tracker.order, id)
	return player
}

func (tracker *PlayerTracker) removePlayer(id int) {
	delete(tracker.players, id)
	if idx, found := slices.BinarySearch(tracker.order, id); found {
		tracker.order = slices.Delete(tracker.order, idx, idx+1)
	}
}

// Reset clears all state: players, identity log and ID counter
func (tracker *PlayerTracker) Reset() {
	tracker.players = make(map[int]*Player)
	tracker.order = tracker.order[:0]
	tracker.nextID = 1
	tracker.history = tracker.history[:0]
	tracker.dropped = 0
}

// GetStats returns tracker-wide summary
func (tracker *PlayerTracker) GetStats() Stats {
	reidentifications := 0
	successful := 0
	for _, event := range tracker.history {
		if event.Action == HistoryActionReidentified {
			reidentifications++
		}
		if event.Action != HistoryActionLost {
			successful++
		}
	}
	accuracy := 0.0
	if len(tracker.history) > 0 {
		accuracy = 100.0 * float64(successful) / float64(len(tracker.history))
	}
	return Stats{
		TotalPlayers:      tracker.nextID - 1,
		ActivePlayers:     len(tracker.players),
		Reidentifications: reidentifications,
		Accuracy:          accuracy,
		DroppedDetections: tracker.dropped,
	}
}

// GetPlayerHistory groups identity log by player. Result is ordered by ascending ID
func (tracker *PlayerTracker) GetPlayerHistory() []PlayerSummary {
	groups := make(map[int]*PlayerSummary)
	ids := make([]int, 0)
	lastEventTime := make(map[int]float64)
	for _, event := range tracker.history {
		summary, ok := groups[event.PlayerID]
		if !ok {
			summary = &PlayerSummary{
				ID:        event.PlayerID,
				FirstSeen: event.Time,
			}
			groups[event.PlayerID] = summary
			ids = append(ids, event.PlayerID)
		}
		summary.TotalDetections++
		if event.Action == HistoryActionReidentified {
			summary.Reidentifications++
		}
		lastEventTime[event.PlayerID] = event.Time
	}
	slices.Sort(ids)
	result := make([]PlayerSummary, 0, len(ids))
	for _, id := range ids {
		summary := groups[id]
		if player, ok := tracker.players[id]; ok {
			summary.LastSeen = player.LastSeen
			summary.Status = PlayerStatusActive
		} else {
			summary.LastSeen = lastEventTime[id]
			summary.Status = PlayerStatusInactive
		}
		result = append(result, *summary)
	}
	return result
}

// Players returns copies of active players ordered by ascending ID
func (tracker *PlayerTracker) Players() []Player {
	result := make([]Player, 0, len(tracker.order))
	for _, id := range tracker.order {
		result = append(result, tracker.players[id].snapshot())
	}
	return result
}

// Player returns copy of active player
func (tracker *PlayerTracker) Player(id int) (Player, bool) {
	player, ok := tracker.players[id]
	if !ok {
		return Player{}, false
	}
	return player.snapshot(), true
}

// History returns copy of identity log
func (tracker *PlayerTracker) History() []HistoryEvent {
	result := make([]HistoryEvent, len(tracker.history))
	copy(result, tracker.history)
	return result
}
