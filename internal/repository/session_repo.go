package repository

import (
	"context"
	"errors"
	"time"

	"build_a_bite/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAlreadyCompleted = errors.New("session already completed")

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.GameSession) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO game_sessions (id, player_id, product_id, difficulty, status, started_at, steps, score, success)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 0, false)
		 RETURNING started_at`,
		s.ID, s.PlayerID, s.ProductID, s.Difficulty, domain.SessionActive, s.StartedAt, s.Steps,
	).Scan(&s.StartedAt)
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.GameSession, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, player_id, product_id, difficulty, status, started_at, ended_at, steps, score, COALESCE(time_spent, 0), success
		 FROM game_sessions
		 WHERE id = $1`,
		id,
	)

	var s domain.GameSession
	if err := row.Scan(&s.ID, &s.PlayerID, &s.ProductID, &s.Difficulty, &s.Status,
		&s.StartedAt, &s.EndedAt, &s.Steps, &s.Score, &s.TimeSpent, &s.Success); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// AppendStep records a step in the persisted ledger. Ordering and
// de-duplication are the round engine's concern, not this layer's.
func (r *SessionRepository) AppendStep(ctx context.Context, id string, step string) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE game_sessions
		 SET steps = array_append(steps, $2)
		 WHERE id = $1 AND status = $3`,
		id, step, domain.SessionActive,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.completionError(ctx, id)
	}
	return nil
}

// Complete finalizes a session exactly once. The WHERE clause on status is
// the single-writer guard: a second completion attempt matches no rows.
func (r *SessionRepository) Complete(ctx context.Context, id string, steps []string, score, timeSpent int, success bool) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE game_sessions
		 SET status = $2, ended_at = now(), steps = $3, score = $4, time_spent = $5, success = $6
		 WHERE id = $1 AND status = $7`,
		id, domain.SessionCompleted, steps, score, timeSpent, success, domain.SessionActive,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.completionError(ctx, id)
	}
	return nil
}

// MarkAbandoned flags sessions of one difficulty still active past the
// cutoff. Returns the number of sessions reaped.
func (r *SessionRepository) MarkAbandoned(ctx context.Context, difficulty string, cutoff time.Time) (int64, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE game_sessions
		 SET status = $2, ended_at = now()
		 WHERE difficulty = $1 AND status = $3 AND started_at < $4`,
		difficulty, domain.SessionAbandoned, domain.SessionActive, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// List returns recent sessions (admin attempts view).
func (r *SessionRepository) List(ctx context.Context, limit int) ([]*domain.GameSession, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, product_id, difficulty, status, started_at, ended_at, steps, score, COALESCE(time_spent, 0), success
		 FROM game_sessions
		 ORDER BY started_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.GameSession
	for rows.Next() {
		var s domain.GameSession
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.ProductID, &s.Difficulty, &s.Status,
			&s.StartedAt, &s.EndedAt, &s.Steps, &s.Score, &s.TimeSpent, &s.Success); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

// completionError distinguishes a missing session from a finalized one
// after a guarded UPDATE matched nothing.
func (r *SessionRepository) completionError(ctx context.Context, id string) error {
	var status domain.SessionStatus
	err := r.db.QueryRow(ctx,
		`SELECT status FROM game_sessions WHERE id = $1`, id,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyCompleted
}
