package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"build_a_bite/internal/domain"
	"build_a_bite/internal/game"
	"build_a_bite/internal/repository"
)

type fakeSessionStore struct {
	sessions map[string]*domain.GameSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*domain.GameSession)}
}

func (f *fakeSessionStore) Create(ctx context.Context, s *domain.GameSession) error {
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionStore) GetByID(ctx context.Context, id string) (*domain.GameSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) AppendStep(ctx context.Context, id string, step string) error {
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	if s.Status != domain.SessionActive {
		return repository.ErrAlreadyCompleted
	}
	s.Steps = append(s.Steps, step)
	return nil
}

func (f *fakeSessionStore) Complete(ctx context.Context, id string, steps []string, score, timeSpent int, success bool) error {
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	if s.Status != domain.SessionActive {
		return repository.ErrAlreadyCompleted
	}
	now := time.Now()
	s.Status = domain.SessionCompleted
	s.EndedAt = &now
	s.Steps = steps
	s.Score = score
	s.TimeSpent = timeSpent
	s.Success = success
	return nil
}

type fakeCatalog struct {
	products map[int64]*domain.Product
}

func (f *fakeCatalog) Resolve(ctx context.Context, ref string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.Name == ref {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCatalog) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

type fakeScores struct {
	records []*domain.Score
	fail    bool
}

func (f *fakeScores) Create(ctx context.Context, s *domain.Score) error {
	if f.fail {
		return errors.New("write failed")
	}
	f.records = append(f.records, s)
	return nil
}

func (f *fakeScores) ExistsForSession(ctx context.Context, sessionID string) (bool, error) {
	for _, r := range f.records {
		if r.SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func pizza() *domain.Product {
	return &domain.Product{
		ID:   1,
		Name: "Pizza",
		Ingredients: []domain.Item{
			{Name: "Dough"}, {Name: "Sauce"}, {Name: "Cheese"},
		},
	}
}

func newTestService() (*GameService, *fakeSessionStore, *fakeScores) {
	sessions := newFakeSessionStore()
	scores := &fakeScores{}
	catalog := &fakeCatalog{products: map[int64]*domain.Product{1: pizza()}}
	svc := NewGameService(context.Background(), sessions, catalog, scores, game.NewManager())
	return svc, sessions, scores
}

func TestStartRoundValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.StartRound(ctx, 1, "", "Pizza"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing difficulty err = %v; want ErrInvalidInput", err)
	}
	if _, err := svc.StartRound(ctx, 1, "hardcore", "Pizza"); !errors.Is(err, game.ErrInvalidDifficulty) {
		t.Fatalf("unknown difficulty err = %v; want ErrInvalidDifficulty", err)
	}
	if _, err := svc.StartRound(ctx, 1, "beginner", "Sushi"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown product err = %v; want ErrInvalidInput", err)
	}
}

func TestStartRoundPreviewPayload(t *testing.T) {
	svc, sessions, _ := newTestService()

	started, err := svc.StartRound(context.Background(), 1, "beginner", "Pizza")
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if started.SessionID == "" {
		t.Fatalf("no session id issued")
	}
	if len(started.CorrectOrder) != 3 || started.CorrectOrder[0] != "Dough" {
		t.Fatalf("correct order = %v; want [Dough Sauce Cheese]", started.CorrectOrder)
	}
	if started.Settings.PreviewSeconds != 5 || started.Settings.PlaySeconds != 45 {
		t.Fatalf("settings = %+v; want beginner durations", started.Settings)
	}

	s, err := sessions.GetByID(context.Background(), started.SessionID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if s.Status != domain.SessionActive || len(s.Steps) != 0 {
		t.Fatalf("persisted session = %+v; want active with empty ledger", s)
	}
}

func TestGetSessionOwnership(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	started, err := svc.StartRound(ctx, 1, "beginner", "Pizza")
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	if _, err := svc.GetSession(ctx, started.SessionID, 2); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign requester err = %v; want ErrForbidden", err)
	}
	if _, err := svc.GetSession(ctx, "missing", 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("unknown session err = %v; want ErrNotFound", err)
	}
	if _, err := svc.GetSession(ctx, started.SessionID, 1); err != nil {
		t.Fatalf("owner GetSession: %v", err)
	}
}

func TestAddStepChecks(t *testing.T) {
	svc, sessions, _ := newTestService()
	ctx := context.Background()

	started, err := svc.StartRound(ctx, 1, "beginner", "Pizza")
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	if _, err := svc.AddStep(ctx, started.SessionID, 2, "Dough"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign AddStep err = %v; want ErrForbidden", err)
	}
	if _, err := svc.AddStep(ctx, started.SessionID, 1, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty step err = %v; want ErrInvalidInput", err)
	}
	// round still in preview
	if _, err := svc.AddStep(ctx, started.SessionID, 1, "Dough"); !errors.Is(err, game.ErrPlayNotActive) {
		t.Fatalf("preview AddStep err = %v; want ErrPlayNotActive", err)
	}

	// completed session rejects steps before the round is even consulted
	if err := sessions.Complete(ctx, started.SessionID, nil, 0, 0, false); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if _, err := svc.AddStep(ctx, started.SessionID, 1, "Dough"); !errors.Is(err, repository.ErrAlreadyCompleted) {
		t.Fatalf("completed AddStep err = %v; want ErrAlreadyCompleted", err)
	}
}

func TestCompleteRoundDetached(t *testing.T) {
	// no live round in the manager: outcome is recomputed from the
	// persisted ledger
	sessions := newFakeSessionStore()
	scores := &fakeScores{}
	catalog := &fakeCatalog{products: map[int64]*domain.Product{1: pizza()}}
	svc := NewGameService(context.Background(), sessions, catalog, scores, game.NewManager())
	ctx := context.Background()

	session := &domain.GameSession{
		ID:         "detached",
		PlayerID:   1,
		ProductID:  1,
		Difficulty: "beginner",
		Status:     domain.SessionActive,
		StartedAt:  time.Now(),
		Steps:      []string{"Dough", "Cheese", "Sauce"},
	}
	if err := sessions.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	outcome, err := svc.CompleteRound(ctx, "detached", 1)
	if err != nil {
		t.Fatalf("CompleteRound: %v", err)
	}
	if outcome.Score != 1 || outcome.Accuracy != 33 {
		t.Fatalf("outcome = %+v; want score 1 accuracy 33", outcome)
	}
	if outcome.Success {
		t.Fatalf("success = true for a 33%% run")
	}

	s, _ := sessions.GetByID(ctx, "detached")
	if s.Status != domain.SessionCompleted || s.Score != 1 {
		t.Fatalf("session after completion = %+v; want completed score 1", s)
	}
	if len(scores.records) != 1 || scores.records[0].Accuracy != 33 {
		t.Fatalf("leaderboard records = %+v; want one entry with accuracy 33", scores.records)
	}

	// double finalization fails and leaves the first result untouched
	if _, err := svc.CompleteRound(ctx, "detached", 1); !errors.Is(err, repository.ErrAlreadyCompleted) {
		t.Fatalf("second CompleteRound err = %v; want ErrAlreadyCompleted", err)
	}
	s2, _ := sessions.GetByID(ctx, "detached")
	if s2.Score != 1 || s2.EndedAt == nil || !s2.EndedAt.Equal(*s.EndedAt) {
		t.Fatalf("first completion mutated by second call: %+v", s2)
	}
}

func TestCompleteRoundLeaderboardFailureIsSwallowed(t *testing.T) {
	sessions := newFakeSessionStore()
	scores := &fakeScores{fail: true}
	catalog := &fakeCatalog{products: map[int64]*domain.Product{1: pizza()}}
	svc := NewGameService(context.Background(), sessions, catalog, scores, game.NewManager())
	ctx := context.Background()

	session := &domain.GameSession{
		ID:         "flaky",
		PlayerID:   1,
		ProductID:  1,
		Difficulty: "beginner",
		Status:     domain.SessionActive,
		StartedAt:  time.Now(),
		Steps:      []string{"Dough", "Sauce", "Cheese"},
	}
	if err := sessions.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// player still gets their computed result
	outcome, err := svc.CompleteRound(ctx, "flaky", 1)
	if err != nil {
		t.Fatalf("CompleteRound with failing recorder: %v", err)
	}
	if outcome.Score != 3 || outcome.Accuracy != 100 || !outcome.Success {
		t.Fatalf("outcome = %+v; want a perfect run", outcome)
	}
}

func TestRecordScore(t *testing.T) {
	svc, sessions, scores := newTestService()
	ctx := context.Background()

	session := &domain.GameSession{
		ID:         "done",
		PlayerID:   1,
		ProductID:  1,
		Difficulty: "beginner",
		Status:     domain.SessionActive,
		StartedAt:  time.Now(),
	}
	if err := sessions.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// not completed yet
	if _, err := svc.RecordScore(ctx, 1, "done"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("active session err = %v; want ErrInvalidInput", err)
	}

	if err := sessions.Complete(ctx, "done", []string{"Dough", "Sauce", "Cheese"}, 3, 20, true); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	score, err := svc.RecordScore(ctx, 1, "done")
	if err != nil {
		t.Fatalf("RecordScore: %v", err)
	}
	// re-derived server-side, not taken from any client payload
	if score.Score != 3 || score.Accuracy != 100 || score.Product != "Pizza" {
		t.Fatalf("score = %+v; want re-derived perfect result", score)
	}
	if len(scores.records) != 1 {
		t.Fatalf("records = %d; want 1", len(scores.records))
	}

	if _, err := svc.RecordScore(ctx, 1, "done"); !errors.Is(err, ErrAlreadyRecorded) {
		t.Fatalf("duplicate RecordScore err = %v; want ErrAlreadyRecorded", err)
	}
	if _, err := svc.RecordScore(ctx, 2, "done"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign RecordScore err = %v; want ErrForbidden", err)
	}
}
