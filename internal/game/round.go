package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"build_a_bite/internal/domain"
)

var (
	ErrStepAlreadySelected = errors.New("step already selected")
	ErrPlayNotActive       = errors.New("play phase is not active")
	ErrAlreadyEvaluated    = errors.New("round already evaluated")
)

// Phase of a round. Preview shows the correct sequence, Play accepts step
// submissions, Evaluated is terminal.
type Phase string

const (
	PhasePreview   Phase = "preview"
	PhasePlay      Phase = "play"
	PhaseEvaluated Phase = "evaluated"
)

// Pools are the per-category item lists shown to the player. They are
// shuffled when Play begins; shuffling is presentation only and never
// alters the correct order.
type Pools struct {
	Ingredients []domain.Item `json:"ingredients"`
	Processes   []domain.Item `json:"processes"`
	Equipment   []domain.Item `json:"equipment"`
}

// Event is pushed to round subscribers on every tick and phase change.
type Event struct {
	Type      string  `json:"type"` // "tick" | "phase" | "result"
	Phase     Phase   `json:"phase"`
	Remaining int     `json:"remaining"`
	Pools     *Pools  `json:"pools,omitempty"`
	Result    *Result `json:"result,omitempty"`
}

// EvaluateFunc receives the outcome of a round exactly once. It runs
// outside the round lock and may block on I/O.
type EvaluateFunc func(sessionID string, playerID int64, steps []string, result Result, timeToFinish int)

// Round drives one session through Preview -> Play -> Evaluated on a
// wall-clock countdown. The ticker goroutine is owned by the round and
// cancelled on evaluation, so a pending tick can never race an explicit
// completion into a second evaluation.
type Round struct {
	SessionID string
	PlayerID  int64
	Tier      Tier
	Settings  Settings

	correct []string
	pools   Pools

	mu        sync.Mutex
	phase     Phase
	remaining int
	steps     []string
	evaluated bool
	cancel    context.CancelFunc

	subMu sync.Mutex
	subs  map[chan Event]struct{}

	onEvaluate EvaluateFunc
}

// NewRound builds a round for a session. Call Start to begin the countdown.
func NewRound(sessionID string, playerID int64, tier Tier, settings Settings, product *domain.Product, onEvaluate EvaluateFunc) *Round {
	return &Round{
		SessionID: sessionID,
		PlayerID:  playerID,
		Tier:      tier,
		Settings:  settings,
		correct:   CorrectOrder(product, tier),
		pools: Pools{
			Ingredients: product.Ingredients,
			Processes:   product.Processes,
			Equipment:   product.Equipment,
		},
		phase:      PhasePreview,
		remaining:  settings.PreviewSeconds,
		subs:       make(map[chan Event]struct{}),
		onEvaluate: onEvaluate,
	}
}

// CorrectOrder returns the ground truth sequence for this round.
func (r *Round) CorrectOrder() []string {
	out := make([]string, len(r.correct))
	copy(out, r.correct)
	return out
}

// Start launches the one-second countdown.
func (r *Round) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	go r.run(ctx)
}

func (r *Round) run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Round) tick() {
	r.mu.Lock()

	if r.phase == PhaseEvaluated {
		r.mu.Unlock()
		return
	}

	r.remaining--
	if r.remaining > 0 {
		ev := Event{Type: "tick", Phase: r.phase, Remaining: r.remaining}
		r.mu.Unlock()
		r.publish(ev)
		return
	}

	switch r.phase {
	case PhasePreview:
		// preview over: shuffle presentation pools, drop any steps
		// accumulated early, hand the player the play countdown
		r.pools = shuffledPools(r.pools)
		r.steps = nil
		r.phase = PhasePlay
		r.remaining = r.Settings.PlaySeconds
		pools := r.pools
		r.mu.Unlock()
		r.publish(Event{Type: "phase", Phase: PhasePlay, Remaining: r.Settings.PlaySeconds, Pools: &pools})
	case PhasePlay:
		r.evaluateLocked()
	default:
		r.mu.Unlock()
	}
}

// AddStep appends a step to the ledger. Duplicates and submissions outside
// the Play phase are rejected; both are non-fatal signals to the caller.
func (r *Round) AddStep(step string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePlay {
		return nil, ErrPlayNotActive
	}
	for _, s := range r.steps {
		if s == step {
			return nil, ErrStepAlreadySelected
		}
	}
	r.steps = append(r.steps, step)

	out := make([]string, len(r.steps))
	copy(out, r.steps)
	return out, nil
}

// Finish is the explicit "complete mission" trigger. Valid only during
// Play; the pending ticker is cancelled before scoring so a late tick
// cannot evaluate a second time.
func (r *Round) Finish() (Result, int, error) {
	r.mu.Lock()
	if r.phase == PhaseEvaluated {
		r.mu.Unlock()
		return Result{}, 0, ErrAlreadyEvaluated
	}
	if r.phase != PhasePlay {
		r.mu.Unlock()
		return Result{}, 0, ErrPlayNotActive
	}
	return r.evaluateResultLocked()
}

// evaluateLocked consumes the held lock and scores the round on timeout.
func (r *Round) evaluateLocked() {
	_, _, _ = r.evaluateResultLocked()
}

// evaluateResultLocked transitions to Evaluated exactly once and releases
// the lock. The evaluation sink runs on its own goroutine.
func (r *Round) evaluateResultLocked() (Result, int, error) {
	if r.evaluated {
		r.mu.Unlock()
		return Result{}, 0, ErrAlreadyEvaluated
	}
	r.evaluated = true
	r.phase = PhaseEvaluated
	if r.cancel != nil {
		r.cancel()
	}

	if r.remaining < 0 {
		r.remaining = 0
	}
	timeToFinish := r.Settings.PlaySeconds - r.remaining

	steps := make([]string, len(r.steps))
	copy(steps, r.steps)
	result := Evaluate(steps, r.correct)
	r.mu.Unlock()

	res := result
	r.publish(Event{Type: "result", Phase: PhaseEvaluated, Remaining: 0, Result: &res})

	if r.onEvaluate != nil {
		go r.onEvaluate(r.SessionID, r.PlayerID, steps, result, timeToFinish)
	}
	return result, timeToFinish, nil
}

// Snapshot returns the current phase, countdown, ledger and presentation
// pools.
func (r *Round) Snapshot() (Phase, int, []string, Pools) {
	r.mu.Lock()
	defer r.mu.Unlock()
	steps := make([]string, len(r.steps))
	copy(steps, r.steps)
	return r.phase, r.remaining, steps, r.pools
}

// Subscribe registers an event channel. Slow subscribers miss events
// rather than stalling the countdown.
func (r *Round) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	r.subMu.Lock()
	r.subs[ch] = struct{}{}
	r.subMu.Unlock()

	unsubscribe := func() {
		r.subMu.Lock()
		delete(r.subs, ch)
		r.subMu.Unlock()
	}
	return ch, unsubscribe
}

func (r *Round) publish(ev Event) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for ch := range r.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func shuffledPools(p Pools) Pools {
	return Pools{
		Ingredients: shuffledItems(p.Ingredients),
		Processes:   shuffledItems(p.Processes),
		Equipment:   shuffledItems(p.Equipment),
	}
}

func shuffledItems(items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
