package game

import (
	"context"
	"errors"
	"sync"

	"build_a_bite/internal/domain"
)

var ErrRoundNotFound = errors.New("round not found")

// Manager is the in-memory registry of active rounds, keyed by session id.
// A round is removed once evaluated; completed sessions live only in the
// database after that.
type Manager struct {
	mu     sync.RWMutex
	rounds map[string]*Round
}

func NewManager() *Manager {
	return &Manager{rounds: make(map[string]*Round)}
}

// Start builds and launches a round for a freshly created session.
func (m *Manager) Start(ctx context.Context, session *domain.GameSession, product *domain.Product, tier Tier, settings Settings, onEvaluate EvaluateFunc) *Round {
	r := NewRound(session.ID, session.PlayerID, tier, settings, product, func(sessionID string, playerID int64, steps []string, result Result, timeToFinish int) {
		if onEvaluate != nil {
			onEvaluate(sessionID, playerID, steps, result, timeToFinish)
		}
		m.Remove(sessionID)
	})

	m.mu.Lock()
	m.rounds[session.ID] = r
	m.mu.Unlock()

	r.Start(ctx)
	return r
}

func (m *Manager) Get(sessionID string) (*Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rounds[sessionID]
	if !ok {
		return nil, ErrRoundNotFound
	}
	return r, nil
}

func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	delete(m.rounds, sessionID)
	m.mu.Unlock()
}

// Len reports the number of active rounds (readiness/metrics).
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rounds)
}
