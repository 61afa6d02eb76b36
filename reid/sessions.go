package reid

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type session struct {
	mu      sync.Mutex
	tracker *PlayerTracker
}

// SessionPool hosts independent tracking sessions.
// Steps of a single session are serialized, different sessions could run in parallel.
type SessionPool struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	config   TrackerConfig
	logger   *slog.Logger
}

// NewSessionPool creates pool which creates every session with the given configuration
func NewSessionPool(config TrackerConfig, logger *slog.Logger) (*SessionPool, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "Can't create session pool")
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &SessionPool{
		sessions: make(map[uuid.UUID]*session),
		config:   config,
		logger:   logger,
	}, nil
}

// Create registers new session and returns its identifier
func (pool *SessionPool) Create() uuid.UUID {
	id := uuid.New()
	tracker, err := NewPlayerTracker(pool.config, WithLogger(pool.logger.With("session", id.String())))
	if err != nil {
		// Configuration has been validated in NewSessionPool
		panic(err)
	}
	pool.mu.Lock()
	pool.sessions[id] = &session{tracker: tracker}
	pool.mu.Unlock()
	return id
}

func (pool *SessionPool) get(id uuid.UUID) (*session, error) {
	pool.mu.RLock()
	s, ok := pool.sessions[id]
	pool.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "id %s", id.String())
	}
	return s, nil
}

// Step feeds frame's detections to the session's tracker
func (pool *SessionPool) Step(id uuid.UUID, detections []Detection, currentTime float64) ([]TrackedObject, error) {
	s, err := pool.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Step(detections, currentTime), nil
}

// Stats returns summary of the session's tracker
func (pool *SessionPool) Stats(id uuid.UUID) (Stats, error) {
	s, err := pool.get(id)
	if err != nil {
		return Stats{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.GetStats(), nil
}

// PlayerHistory returns per-player summaries of the session's tracker
func (pool *SessionPool) PlayerHistory(id uuid.UUID) ([]PlayerSummary, error) {
	s, err := pool.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.GetPlayerHistory(), nil
}

// Players returns active players of the session's tracker
func (pool *SessionPool) Players(id uuid.UUID) ([]Player, error) {
	s, err := pool.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Players(), nil
}

// Reset clears state of the session's tracker. Session itself stays registered
func (pool *SessionPool) Reset(id uuid.UUID) error {
	s, err := pool.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Reset()
	return nil
}

// Remove unregisters session
func (pool *SessionPool) Remove(id uuid.UUID) error {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if _, ok := pool.sessions[id]; !ok {
		return errors.Wrapf(ErrSessionNotFound, "id %s", id.String())
	}
	delete(pool.sessions, id)
	return nil
}

// Len returns number of registered sessions
func (pool *SessionPool) Len() int {
	pool.mu.RLock()
	defer pool.mu.RUnlock()
	return len(pool.sessions)
}

// IDs returns identifiers of registered sessions in no particular order
func (pool *SessionPool) IDs() []uuid.UUID {
	pool.mu.RLock()
	defer pool.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(pool.sessions))
	for id := range pool.sessions {
		ids = append(ids, id)
	}
	return ids
}
