package reid

// HistoryAction is a kind of identity event
type HistoryAction string

const (
	HistoryActionFirstDetected HistoryAction = "first_detected"
	HistoryActionReidentified  HistoryAction = "reidentified"
	// HistoryActionLost is only counted by accuracy statistics. Tracker never records it.
	HistoryActionLost HistoryAction = "lost"
)

// HistoryEvent is an immutable identity log entry
type HistoryEvent struct {
	PlayerID int           `json:"player_id"`
	Action   HistoryAction `json:"action"`
	Time     float64       `json:"time"`
	Position Point         `json:"position"`
}

// PlayerStatus tells whether player is still in the active set
type PlayerStatus string

const (
	PlayerStatusActive   PlayerStatus = "active"
	PlayerStatusInactive PlayerStatus = "inactive"
)

// PlayerSummary aggregates identity log of a single player
type PlayerSummary struct {
	ID                int          `json:"id"`
	FirstSeen         float64      `json:"first_seen"`
	LastSeen          float64      `json:"last_seen"`
	TotalDetections   int          `json:"total_detections"`
	Reidentifications int          `json:"reidentifications"`
	Status            PlayerStatus `json:"status"`
}

// Stats is a tracker-wide summary
type Stats struct {
	// Identities ever allocated, removed ones included
	TotalPlayers      int `json:"total_players"`
	ActivePlayers     int `json:"active_players"`
	Reidentifications int `json:"reidentifications"`
	// Percentage of identity events which are not "lost"
	Accuracy float64 `json:"accuracy"`
	// Invalid detections dropped since creation or last reset
	DroppedDetections int `json:"dropped_detections"`
}
