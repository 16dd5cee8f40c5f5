package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fantasy-draft/models"
	"fantasy-draft/repository/memstore"
	"fantasy-draft/services"
)

func newAchievements(t *testing.T) (*services.AchievementService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	svc := services.NewAchievementService(store)
	if err := svc.SeedCatalog(context.Background(), models.AchievementCatalog); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return svc, store
}

func TestAwardIsIdempotent(t *testing.T) {
	svc, store := newAchievements(t)
	ctx := context.Background()

	granted, err := svc.Award(ctx, "user-1", models.AchievementFirstEvent)
	if err != nil || !granted {
		t.Fatalf("first award: granted=%v err=%v", granted, err)
	}
	granted, err = svc.Award(ctx, "user-1", models.AchievementFirstEvent)
	if err != nil || granted {
		t.Fatalf("second award: granted=%v err=%v", granted, err)
	}

	a, _ := store.FindAchievementByCode(ctx, models.AchievementFirstEvent)
	if n := store.AwardCount("user-1", a.ID); n != 1 {
		t.Fatalf("expected one grant row, got %d", n)
	}
}

func TestAwardUnknownCodeWritesNothing(t *testing.T) {
	svc, store := newAchievements(t)

	granted, err := svc.Award(context.Background(), "user-1", "NOPE")
	if !errors.Is(err, services.ErrUnknownAchievement) || granted {
		t.Fatalf("expected ErrUnknownAchievement, got granted=%v err=%v", granted, err)
	}
	if n := store.AwardTotal(); n != 0 {
		t.Fatalf("unknown code wrote %d rows", n)
	}
}

func TestAwardNormalizesCode(t *testing.T) {
	svc, store := newAchievements(t)
	ctx := context.Background()

	granted, err := svc.Award(ctx, "user-1", "  drafted ")
	if err != nil || !granted {
		t.Fatalf("award: granted=%v err=%v", granted, err)
	}
	granted, _ = svc.Award(ctx, "user-1", "DRAFTED")
	if granted {
		t.Fatalf("same code in another case must not grant again")
	}
	if store.AwardTotal() != 1 {
		t.Fatalf("expected one grant row, got %d", store.AwardTotal())
	}
}

func TestAwardBadRequest(t *testing.T) {
	svc, _ := newAchievements(t)
	tests := []struct {
		name string
		user string
		code string
	}{
		{"no user", "", models.AchievementDrafted},
		{"blank user", "   ", models.AchievementDrafted},
		{"no code", "user-1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Award(context.Background(), tt.user, tt.code); !errors.Is(err, services.ErrBadRequest) {
				t.Fatalf("expected ErrBadRequest, got %v", err)
			}
		})
	}
}

func TestAwardConcurrentGrantsOnce(t *testing.T) {
	svc, store := newAchievements(t)

	const callers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.Award(context.Background(), "user-1", models.AchievementDrafted)
			if err != nil {
				t.Errorf("award: %v", err)
				return
			}
			if ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if granted != 1 {
		t.Fatalf("expected exactly one caller to see the grant, got %d", granted)
	}
	if store.AwardTotal() != 1 {
		t.Fatalf("expected one grant row, got %d", store.AwardTotal())
	}
}

func TestSeedCatalogIsRepeatable(t *testing.T) {
	svc, store := newAchievements(t)
	ctx := context.Background()

	before, _ := store.FindAchievementByCode(ctx, models.AchievementDrafted)
	if err := svc.SeedCatalog(ctx, models.AchievementCatalog); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	after, _ := store.FindAchievementByCode(ctx, models.AchievementDrafted)
	if before.ID != after.ID {
		t.Fatalf("reseeding replaced the achievement row")
	}
}

func TestListForUser(t *testing.T) {
	svc, _ := newAchievements(t)
	ctx := context.Background()

	if _, err := svc.AwardWithMetadata(ctx, "user-1", models.AchievementDrafted, map[string]any{"event_id": "e1"}); err != nil {
		t.Fatalf("award: %v", err)
	}
	list, err := svc.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Achievement.Code != models.AchievementDrafted {
		t.Fatalf("unexpected achievements: %+v", list)
	}
	if string(list[0].Metadata) != `{"event_id":"e1"}` {
		t.Fatalf("metadata not stored: %s", list[0].Metadata)
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := map[string]string{
		" drafted ":   "DRAFTED",
		"first_event": "FIRST_EVENT",
		"Première":    "PREMIERE",
		"":            "",
	}
	for in, want := range tests {
		if got := services.NormalizeCode(in); got != want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", in, got, want)
		}
	}
}
