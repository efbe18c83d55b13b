package game

import (
	"errors"
	"testing"

	"build_a_bite/internal/domain"
)

func testProduct() *domain.Product {
	return &domain.Product{
		Name: "Pizza",
		Ingredients: []domain.Item{
			{Name: "Dough"}, {Name: "Sauce"}, {Name: "Cheese"},
		},
	}
}

func newTestRound(onEvaluate EvaluateFunc) *Round {
	settings, _ := SettingsFor(TierBeginner)
	return NewRound("sess-1", 7, TierBeginner, settings, testProduct(), onEvaluate)
}

// drain ticks the round clock without real time passing
func drain(r *Round, ticks int) {
	for i := 0; i < ticks; i++ {
		r.tick()
	}
}

func TestRoundPreviewToPlay(t *testing.T) {
	r := newTestRound(nil)

	if phase, remaining, _, _ := snapshot(r); phase != PhasePreview || remaining != 5 {
		t.Fatalf("initial phase = %s remaining = %d; want preview 5", phase, remaining)
	}

	// steps before play are rejected
	if _, err := r.AddStep("Dough"); !errors.Is(err, ErrPlayNotActive) {
		t.Fatalf("AddStep during preview err = %v; want ErrPlayNotActive", err)
	}

	drain(r, 5)

	phase, remaining, steps, _ := snapshot(r)
	if phase != PhasePlay || remaining != 45 {
		t.Fatalf("after preview: phase = %s remaining = %d; want play 45", phase, remaining)
	}
	if len(steps) != 0 {
		t.Fatalf("ledger not cleared at play start: %v", steps)
	}
}

func TestRoundAddStepDedup(t *testing.T) {
	r := newTestRound(nil)
	drain(r, 5)

	if _, err := r.AddStep("Dough"); err != nil {
		t.Fatalf("first AddStep: %v", err)
	}
	if _, err := r.AddStep("Dough"); !errors.Is(err, ErrStepAlreadySelected) {
		t.Fatalf("duplicate AddStep err = %v; want ErrStepAlreadySelected", err)
	}

	if _, _, steps, _ := snapshot(r); len(steps) != 1 {
		t.Fatalf("ledger length after duplicate = %d; want 1", len(steps))
	}
}

func TestRoundFinishScoresOnce(t *testing.T) {
	evaluations := 0
	done := make(chan struct{}, 2)
	r := newTestRound(func(sessionID string, playerID int64, steps []string, result Result, timeToFinish int) {
		evaluations++
		done <- struct{}{}
	})
	drain(r, 5)

	for _, s := range []string{"Dough", "Sauce", "Cheese"} {
		if _, err := r.AddStep(s); err != nil {
			t.Fatalf("AddStep(%s): %v", s, err)
		}
	}

	result, timeToFinish, err := r.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if result.Score != 3 || result.Accuracy != 100 {
		t.Fatalf("result = %+v; want score 3 accuracy 100", result)
	}
	if timeToFinish != 0 {
		t.Fatalf("timeToFinish = %d; want 0 (no play ticks elapsed)", timeToFinish)
	}
	<-done

	// a tick firing after manual completion must not evaluate again
	drain(r, 50)
	if _, _, err := r.Finish(); !errors.Is(err, ErrAlreadyEvaluated) {
		t.Fatalf("second Finish err = %v; want ErrAlreadyEvaluated", err)
	}
	if evaluations != 1 {
		t.Fatalf("evaluation sink ran %d times; want 1", evaluations)
	}
}

func TestRoundPlayTimeoutEvaluates(t *testing.T) {
	var got Result
	var gotTime int
	done := make(chan struct{})
	r := newTestRound(func(sessionID string, playerID int64, steps []string, result Result, timeToFinish int) {
		got = result
		gotTime = timeToFinish
		close(done)
	})
	drain(r, 5)

	if _, err := r.AddStep("Dough"); err != nil {
		t.Fatalf("AddStep: %v", err)
	}

	// run the play clock down to zero
	drain(r, 45)
	<-done

	phase, _, _, _ := snapshot(r)
	if phase != PhaseEvaluated {
		t.Fatalf("phase after timeout = %s; want evaluated", phase)
	}
	if got.Score != 1 {
		t.Fatalf("score = %d; want 1", got.Score)
	}
	if gotTime != 45 {
		t.Fatalf("timeToFinish = %d; want full play duration 45", gotTime)
	}

	if _, err := r.AddStep("Sauce"); !errors.Is(err, ErrPlayNotActive) {
		t.Fatalf("AddStep after evaluation err = %v; want ErrPlayNotActive", err)
	}
}

func TestRoundSubscribe(t *testing.T) {
	r := newTestRound(nil)
	ch, unsubscribe := r.Subscribe()
	defer unsubscribe()

	drain(r, 1)

	select {
	case ev := <-ch:
		if ev.Type != "tick" || ev.Remaining != 4 {
			t.Fatalf("event = %+v; want tick with remaining 4", ev)
		}
	default:
		t.Fatalf("no event published on tick")
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	if _, err := m.Get("nope"); !errors.Is(err, ErrRoundNotFound) {
		t.Fatalf("Get(unknown) err = %v; want ErrRoundNotFound", err)
	}
}

func snapshot(r *Round) (Phase, int, []string, Pools) {
	return r.Snapshot()
}
