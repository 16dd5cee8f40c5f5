package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"fantasy-draft/models"
	"fantasy-draft/services"
)

type fakeDrafts struct {
	stalled []models.Event
	err     error
	failFor map[string]bool
	calls   map[string]int
}

func (f *fakeDrafts) StalledDrafts(ctx context.Context, timeout time.Duration) ([]models.Event, error) {
	return f.stalled, f.err
}

func (f *fakeDrafts) AutoPick(ctx context.Context, eventID string) (*services.AutoPickResult, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[eventID]++
	if f.failFor[eventID] {
		return nil, errors.New("procedure unavailable")
	}
	return &services.AutoPickResult{EventID: eventID}, nil
}

func TestSweepCallsOncePerPick(t *testing.T) {
	drafts := &fakeDrafts{
		stalled: []models.Event{{ID: "e1", CurrentPick: 3}, {ID: "e2", CurrentPick: 1}},
		failFor: map[string]bool{"e2": true},
	}
	w := NewAutoPickSweeper(drafts, time.Minute, time.Second)
	ctx := context.Background()

	if n := w.Sweep(ctx); n != 2 {
		t.Fatalf("first sweep made %d calls, want 2", n)
	}
	if n := w.Sweep(ctx); n != 0 {
		t.Fatalf("repeat sweep made %d calls, want 0", n)
	}
	if drafts.calls["e2"] != 1 {
		t.Fatalf("failed auto-pick was retried: %d calls", drafts.calls["e2"])
	}

	drafts.stalled[0].CurrentPick = 4
	if n := w.Sweep(ctx); n != 1 || drafts.calls["e1"] != 2 {
		t.Fatalf("advanced pick should be swept once more, n=%d calls=%v", n, drafts.calls)
	}
}

func TestSweepForgetsFinishedEvents(t *testing.T) {
	drafts := &fakeDrafts{stalled: []models.Event{{ID: "e1", CurrentPick: 2}}}
	w := NewAutoPickSweeper(drafts, time.Minute, time.Second)
	ctx := context.Background()

	w.Sweep(ctx)
	drafts.stalled = nil
	w.Sweep(ctx)
	if len(w.attempted) != 0 {
		t.Fatalf("expected attempted set to be pruned, got %v", w.attempted)
	}
}

func TestSweepStoreError(t *testing.T) {
	drafts := &fakeDrafts{err: errors.New("db down")}
	w := NewAutoPickSweeper(drafts, time.Minute, time.Second)
	if n := w.Sweep(context.Background()); n != 0 {
		t.Fatalf("expected no calls on store error, got %d", n)
	}
}
