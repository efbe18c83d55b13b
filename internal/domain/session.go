package domain

import "time"

// SessionStatus - lifecycle state of a game session
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// GameSession is one play-through from creation to evaluation.
// A session transitions active -> completed exactly once; once completed
// it is immutable.
type GameSession struct {
	ID         string        `db:"id" json:"sessionId"`
	PlayerID   int64         `db:"player_id" json:"player"`
	ProductID  int64         `db:"product_id" json:"product"`
	Difficulty string        `db:"difficulty" json:"difficulty"`
	Status     SessionStatus `db:"status" json:"status"`
	StartedAt  time.Time     `db:"started_at" json:"startedAt"`
	EndedAt    *time.Time    `db:"ended_at" json:"endedAt,omitempty"`
	Steps      []string      `db:"steps" json:"steps"`
	Score      int           `db:"score" json:"score"`
	TimeSpent  int           `db:"time_spent" json:"timeSpent"`
	Success    bool          `db:"success" json:"success"`
}
