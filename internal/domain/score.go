package domain

import "time"

// Score is an immutable leaderboard entry, created exactly once per
// completed session. Ranking sorts by score descending, ties broken by
// earliest date.
type Score struct {
	ID           int64     `db:"id" json:"id"`
	PlayerID     int64     `db:"player_id" json:"player"`
	PlayerName   string    `db:"player_name" json:"playerName,omitempty"`
	SessionID    string    `db:"session_id" json:"sessionId"`
	Product      string    `db:"product" json:"product"`
	Score        int       `db:"score" json:"score"`
	Accuracy     int       `db:"accuracy" json:"accuracy"`
	Difficulty   string    `db:"difficulty" json:"difficulty"`
	TimeToFinish int       `db:"time_to_finish" json:"timeToFinish"`
	Date         time.Time `db:"date" json:"date"`
}
