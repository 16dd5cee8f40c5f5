package services_test

import (
	"context"
	"fmt"
	"testing"

	"fantasy-draft/models"
	"fantasy-draft/repository/memstore"
	"fantasy-draft/services"
)

type fixture struct {
	store        *memstore.Store
	achievements *services.AchievementService
	draft        *services.DraftService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	achievements := services.NewAchievementService(store)
	if err := achievements.SeedCatalog(context.Background(), models.AchievementCatalog); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return &fixture{
		store:        store,
		achievements: achievements,
		draft:        services.NewDraftService(store, achievements),
	}
}

// openEvent creates an event and joins users u1..uN.
func (f *fixture) openEvent(t *testing.T, participants int) *models.Event {
	t.Helper()
	ctx := context.Background()
	event, err := f.draft.CreateEvent(ctx, "Sunday League")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	for i := 1; i <= participants; i++ {
		user := fmt.Sprintf("u%d", i)
		if _, _, err := f.draft.Join(ctx, event.ID, user, "User "+user); err != nil {
			t.Fatalf("join %s: %v", user, err)
		}
	}
	return event
}

// stockPools adds perTier assets to every tier.
func (f *fixture) stockPools(t *testing.T, eventID string, perTier map[models.Tier]int) {
	t.Helper()
	var inputs []services.AssetInput
	for tier, n := range perTier {
		for i := 0; i < n; i++ {
			inputs = append(inputs, services.AssetInput{
				Name: fmt.Sprintf("%s #%d", tier, i+1),
				Tier: tier,
				Rank: i + 1,
			})
		}
	}
	if _, err := f.draft.AddAssets(context.Background(), eventID, inputs); err != nil {
		t.Fatalf("add assets: %v", err)
	}
}

func evenPools(n int) map[models.Tier]int {
	return map[models.Tier]int{models.Tier1: n, models.Tier2: n, models.Tier3: n, models.Tier4: n}
}
