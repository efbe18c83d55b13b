package service

import (
	"context"
	"time"

	"build_a_bite/internal/game"
	"build_a_bite/internal/logger"
)

// AbandonedMarker flags stale sessions in the store.
type AbandonedMarker interface {
	MarkAbandoned(ctx context.Context, difficulty string, cutoff time.Time) (int64, error)
}

// Reaper marks sessions abandoned when they are still active well past
// their whole round duration. Players who leave mid-round never call the
// completion endpoint, so without this sweep those sessions stay open
// forever.
type Reaper struct {
	sessions AbandonedMarker
	interval time.Duration
	grace    time.Duration
}

func NewReaper(sessions AbandonedMarker, interval, grace time.Duration) *Reaper {
	if interval <= 0 {
		interval = time.Minute
	}
	if grace <= 0 {
		grace = time.Minute
	}
	return &Reaper{sessions: sessions, interval: interval, grace: grace}
}

// Start begins the sweep loop in a goroutine.
func (r *Reaper) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *Reaper) run(ctx context.Context) {
	logger.Info("session reaper started", "interval", r.interval, "grace", r.grace)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("session reaper stopped")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// sweep reaps per tier: a session is abandoned once
// startedAt + preview + play + grace is behind us.
func (r *Reaper) sweep(ctx context.Context) {
	for _, tier := range []game.Tier{game.TierBeginner, game.TierIntermediate, game.TierExpert} {
		settings, err := game.SettingsFor(tier)
		if err != nil {
			continue
		}

		lifetime := time.Duration(settings.PreviewSeconds+settings.PlaySeconds)*time.Second + r.grace
		cutoff := time.Now().UTC().Add(-lifetime)

		reaped, err := r.sessions.MarkAbandoned(ctx, string(tier), cutoff)
		if err != nil {
			logger.Error("reaper sweep failed", "difficulty", tier, "error", err)
			continue
		}
		if reaped > 0 {
			logger.Info("marked abandoned sessions", "difficulty", tier, "count", reaped)
		}
	}
}
