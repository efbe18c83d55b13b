package service

import (
	"context"
	"errors"
	"time"

	"build_a_bite/internal/domain"
	"build_a_bite/internal/game"
	"build_a_bite/internal/logger"
	"build_a_bite/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyRecorded = errors.New("score already recorded")
)

// SessionStore is the session persistence contract.
type SessionStore interface {
	Create(ctx context.Context, s *domain.GameSession) error
	GetByID(ctx context.Context, id string) (*domain.GameSession, error)
	AppendStep(ctx context.Context, id string, step string) error
	Complete(ctx context.Context, id string, steps []string, score, timeSpent int, success bool) error
}

// ProductCatalog is the read-only catalog contract.
type ProductCatalog interface {
	Resolve(ctx context.Context, ref string) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// ScoreRecorder is the leaderboard write contract.
type ScoreRecorder interface {
	Create(ctx context.Context, s *domain.Score) error
	ExistsForSession(ctx context.Context, sessionID string) (bool, error)
}

// GameService owns the round lifecycle: it issues sessions, feeds the
// round engine, and is the single place where scores are computed and
// persisted. Client-posted scores are never trusted.
type GameService struct {
	baseCtx  context.Context
	sessions SessionStore
	catalog  ProductCatalog
	scores   ScoreRecorder
	rounds   *game.Manager
}

func NewGameService(baseCtx context.Context, sessions SessionStore, catalog ProductCatalog, scores ScoreRecorder, rounds *game.Manager) *GameService {
	return &GameService{
		baseCtx:  baseCtx,
		sessions: sessions,
		catalog:  catalog,
		scores:   scores,
		rounds:   rounds,
	}
}

// StartedRound is the preview payload returned at session creation. The
// correct order is shown to the player for the preview countdown only.
type StartedRound struct {
	SessionID    string        `json:"sessionId"`
	Product      string        `json:"product"`
	Difficulty   game.Tier     `json:"difficulty"`
	Settings     game.Settings `json:"settings"`
	CorrectOrder []string      `json:"correctOrder"`
	Pools        game.Pools    `json:"pools"`
}

// RoundOutcome is the evaluation result returned to the player.
type RoundOutcome struct {
	SessionID    string `json:"sessionId"`
	Score        int    `json:"score"`
	Accuracy     int    `json:"accuracy"`
	TimeToFinish int    `json:"timeToFinish"`
	Success      bool   `json:"success"`
}

// StartRound validates difficulty and product, creates the session and
// launches its round.
func (s *GameService) StartRound(ctx context.Context, playerID int64, difficulty, productRef string) (*StartedRound, error) {
	if difficulty == "" || productRef == "" {
		return nil, ErrInvalidInput
	}

	tier, err := game.ParseTier(difficulty)
	if err != nil {
		return nil, err
	}
	settings, err := game.SettingsFor(tier)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.Resolve(ctx, productRef)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}

	session := &domain.GameSession{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		ProductID:  product.ID,
		Difficulty: string(tier),
		Status:     domain.SessionActive,
		StartedAt:  time.Now().UTC(),
		Steps:      []string{},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	round := s.rounds.Start(s.baseCtx, session, product, tier, settings, s.evaluateSink(product.Name, tier, settings))
	game.RoundsStarted.WithLabelValues(string(tier)).Inc()

	_, _, _, pools := round.Snapshot()
	return &StartedRound{
		SessionID:    session.ID,
		Product:      product.Name,
		Difficulty:   tier,
		Settings:     settings,
		CorrectOrder: round.CorrectOrder(),
		Pools:        pools,
	}, nil
}

// GetSession returns a session to its owner.
func (s *GameService) GetSession(ctx context.Context, sessionID string, requesterID int64) (*domain.GameSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlayerID != requesterID {
		return nil, ErrForbidden
	}
	return session, nil
}

// Rounds exposes the round registry for readiness reporting.
func (s *GameService) Rounds() *game.Manager {
	return s.rounds
}

// Round exposes the live round for a session (ws feed, owner only).
func (s *GameService) Round(ctx context.Context, sessionID string, requesterID int64) (*game.Round, error) {
	round, err := s.rounds.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if round.PlayerID != requesterID {
		return nil, ErrForbidden
	}
	return round, nil
}

// AddStep appends one step to the session's ledger. Duplicate steps and
// steps outside the Play phase are rejected with non-fatal errors.
func (s *GameService) AddStep(ctx context.Context, sessionID string, requesterID int64, step string) ([]string, error) {
	if step == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlayerID != requesterID {
		return nil, ErrForbidden
	}
	if session.Status != domain.SessionActive {
		return nil, repository.ErrAlreadyCompleted
	}

	round, err := s.rounds.Get(sessionID)
	if err != nil {
		// session row still active but its round is gone (restart or
		// reaped); treat like an expired play phase
		return nil, game.ErrPlayNotActive
	}

	steps, err := round.AddStep(step)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.AppendStep(ctx, sessionID, step); err != nil {
		logger.Error("failed to persist step", "session", sessionID, "step", step, "error", err)
	}
	return steps, nil
}

// CompleteRound is the explicit finish trigger. Evaluation happens exactly
// once whether the round ends here or by timeout.
func (s *GameService) CompleteRound(ctx context.Context, sessionID string, requesterID int64) (*RoundOutcome, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlayerID != requesterID {
		return nil, ErrForbidden
	}
	if session.Status != domain.SessionActive {
		return nil, repository.ErrAlreadyCompleted
	}

	round, err := s.rounds.Get(sessionID)
	if err != nil {
		// round lost (e.g. server restart): score the persisted ledger
		return s.completeDetached(ctx, session)
	}

	result, timeToFinish, err := round.Finish()
	if err != nil {
		return nil, err
	}

	return &RoundOutcome{
		SessionID:    sessionID,
		Score:        result.Score,
		Accuracy:     result.Accuracy,
		TimeToFinish: timeToFinish,
		Success:      result.Accuracy == 100,
	}, nil
}

// completeDetached evaluates a session whose in-memory round no longer
// exists. The full play duration is charged since the countdown is gone.
func (s *GameService) completeDetached(ctx context.Context, session *domain.GameSession) (*RoundOutcome, error) {
	tier, err := game.ParseTier(session.Difficulty)
	if err != nil {
		return nil, err
	}
	settings, err := game.SettingsFor(tier)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.GetByID(ctx, session.ProductID)
	if err != nil {
		return nil, err
	}

	result := game.Evaluate(session.Steps, game.CorrectOrder(product, tier))
	sink := s.evaluateSink(product.Name, tier, settings)
	sink(session.ID, session.PlayerID, session.Steps, result, settings.PlaySeconds)

	return &RoundOutcome{
		SessionID:    session.ID,
		Score:        result.Score,
		Accuracy:     result.Accuracy,
		TimeToFinish: settings.PlaySeconds,
		Success:      result.Accuracy == 100,
	}, nil
}

// evaluateSink builds the per-round evaluation callback: finalize the
// session, then write the leaderboard entry best-effort. A failed write is
// logged, counted, and never surfaced to the player.
func (s *GameService) evaluateSink(productName string, tier game.Tier, settings game.Settings) game.EvaluateFunc {
	return func(sessionID string, playerID int64, steps []string, result game.Result, timeToFinish int) {
		ctx, cancel := context.WithTimeout(s.baseCtx, 5*time.Second)
		defer cancel()

		game.RoundsEvaluated.WithLabelValues(string(tier)).Inc()
		game.RoundAccuracy.Observe(float64(result.Accuracy))

		success := result.Accuracy == 100
		if err := s.sessions.Complete(ctx, sessionID, steps, result.Score, timeToFinish, success); err != nil {
			if errors.Is(err, repository.ErrAlreadyCompleted) {
				return
			}
			logger.Error("failed to finalize session", "session", sessionID, "error", err)
			return
		}

		score := &domain.Score{
			PlayerID:     playerID,
			SessionID:    sessionID,
			Product:      productName,
			Score:        result.Score,
			Accuracy:     result.Accuracy,
			Difficulty:   string(tier),
			TimeToFinish: timeToFinish,
		}
		if err := s.scores.Create(ctx, score); err != nil {
			game.LeaderboardWriteFailures.Inc()
			logger.Error("leaderboard write failed", "session", sessionID, "player", playerID, "error", err)
		}
	}
}

// RecordScore serves the legacy score-submission route. The client body is
// ignored beyond the session reference: score and accuracy are re-derived
// from the session's own ledger against the catalog's correct order.
func (s *GameService) RecordScore(ctx context.Context, playerID int64, sessionID string) (*domain.Score, error) {
	if sessionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlayerID != playerID {
		return nil, ErrForbidden
	}
	if session.Status != domain.SessionCompleted {
		return nil, ErrInvalidInput
	}

	exists, err := s.scores.ExistsForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRecorded
	}

	tier, err := game.ParseTier(session.Difficulty)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.GetByID(ctx, session.ProductID)
	if err != nil {
		return nil, err
	}

	result := game.Evaluate(session.Steps, game.CorrectOrder(product, tier))
	score := &domain.Score{
		PlayerID:     playerID,
		SessionID:    sessionID,
		Product:      product.Name,
		Score:        result.Score,
		Accuracy:     result.Accuracy,
		Difficulty:   session.Difficulty,
		TimeToFinish: session.TimeSpent,
	}
	if err := s.scores.Create(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}
