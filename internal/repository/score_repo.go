package repository

import (
	"context"

	"build_a_bite/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScoreRepository struct {
	db *pgxpool.Pool
}

func NewScoreRepository(db *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Create appends an immutable leaderboard entry. There is no update path.
func (r *ScoreRepository) Create(ctx context.Context, s *domain.Score) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO scores (player_id, session_id, product, score, accuracy, difficulty, time_to_finish)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, date`,
		s.PlayerID, s.SessionID, s.Product, s.Score, s.Accuracy, s.Difficulty, s.TimeToFinish,
	).Scan(&s.ID, &s.Date)
}

// ExistsForSession guards against duplicate leaderboard writes for one
// completed session.
func (r *ScoreRepository) ExistsForSession(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM scores WHERE session_id = $1)`, sessionID,
	).Scan(&exists)
	return exists, err
}

// TopN returns the highest scores, ties broken by earliest submission.
func (r *ScoreRepository) TopN(ctx context.Context, n int) ([]*domain.Score, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.player_id, p.name, s.session_id, s.product, s.score, s.accuracy, s.difficulty, s.time_to_finish, s.date
		 FROM scores s
		 JOIN players p ON p.id = s.player_id
		 ORDER BY s.score DESC, s.date ASC
		 LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScores(rows)
}

// ByPlayer returns all of one player's scores in leaderboard order.
func (r *ScoreRepository) ByPlayer(ctx context.Context, playerID int64) ([]*domain.Score, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.player_id, p.name, s.session_id, s.product, s.score, s.accuracy, s.difficulty, s.time_to_finish, s.date
		 FROM scores s
		 JOIN players p ON p.id = s.player_id
		 WHERE s.player_id = $1
		 ORDER BY s.score DESC, s.date ASC`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScores(rows)
}

// ListAll returns every entry in leaderboard order (admin export).
func (r *ScoreRepository) ListAll(ctx context.Context) ([]*domain.Score, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.player_id, p.name, s.session_id, s.product, s.score, s.accuracy, s.difficulty, s.time_to_finish, s.date
		 FROM scores s
		 JOIN players p ON p.id = s.player_id
		 ORDER BY s.score DESC, s.date ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScores(rows)
}

// DeleteAll is the privileged bulk clear. Admin only; never exposed to
// regular callers.
func (r *ScoreRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM scores`)
	return err
}

func scanScores(rows pgx.Rows) ([]*domain.Score, error) {
	var result []*domain.Score
	for rows.Next() {
		var s domain.Score
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.PlayerName, &s.SessionID, &s.Product,
			&s.Score, &s.Accuracy, &s.Difficulty, &s.TimeToFinish, &s.Date); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}
