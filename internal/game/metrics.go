package game

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RoundsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_rounds_started_total",
			Help: "Rounds started, by difficulty",
		},
		[]string{"difficulty"},
	)
	RoundsEvaluated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_rounds_evaluated_total",
			Help: "Rounds evaluated, by difficulty",
		},
		[]string{"difficulty"},
	)
	LeaderboardWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_leaderboard_write_failures_total",
			Help: "Best-effort leaderboard writes that failed",
		},
	)
	RoundAccuracy = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "game_round_accuracy",
			Help:    "Accuracy distribution of evaluated rounds",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

func init() {
	prometheus.MustRegister(RoundsStarted)
	prometheus.MustRegister(RoundsEvaluated)
	prometheus.MustRegister(LeaderboardWriteFailures)
	prometheus.MustRegister(RoundAccuracy)
}
