package service

import (
	"context"
	"testing"
	"time"
)

type fakeMarker struct {
	cutoffs map[string]time.Time
}

func (f *fakeMarker) MarkAbandoned(ctx context.Context, difficulty string, cutoff time.Time) (int64, error) {
	f.cutoffs[difficulty] = cutoff
	return 1, nil
}

func TestReaperSweepUsesTierLifetimes(t *testing.T) {
	marker := &fakeMarker{cutoffs: make(map[string]time.Time)}
	r := NewReaper(marker, time.Minute, time.Minute)

	before := time.Now().UTC()
	r.sweep(context.Background())

	if len(marker.cutoffs) != 3 {
		t.Fatalf("swept %d tiers; want 3", len(marker.cutoffs))
	}

	// beginner lifetime: 5 + 45 + 60s grace = 110s
	beginner := marker.cutoffs["beginner"]
	wantMax := before.Add(-110 * time.Second)
	if beginner.After(wantMax.Add(2 * time.Second)) {
		t.Fatalf("beginner cutoff %v too recent; want about %v", beginner, wantMax)
	}

	// expert lifetime is longer, so its cutoff is further in the past
	if !marker.cutoffs["expert"].Before(beginner) {
		t.Fatalf("expert cutoff %v not before beginner cutoff %v",
			marker.cutoffs["expert"], beginner)
	}
}
