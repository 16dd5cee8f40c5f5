package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"fantasy-draft/models"

	"github.com/google/uuid"
)

// LoadPools reads the draft-eligible assets of an event and partitions them
// into tier pools ranked by Rank, then ID.
func LoadPools(ctx context.Context, store DraftStore, eventID string) (TierPools, error) {
	var pools TierPools
	assets, err := store.ListAssets(ctx, eventID)
	if err != nil {
		return pools, fmt.Errorf("list assets: %w", err)
	}

	for _, a := range assets {
		if !a.Tier.Valid() {
			return pools, &InvalidPoolError{EventID: eventID, Tier: a.Tier, AssetID: a.ID, Reason: "has no draft tier"}
		}
		pools[int(a.Tier)-1] = append(pools[int(a.Tier)-1], a)
	}
	for _, pool := range pools {
		sort.SliceStable(pool, func(i, j int) bool {
			if pool[i].Rank != pool[j].Rank {
				return pool[i].Rank < pool[j].Rank
			}
			return pool[i].ID < pool[j].ID
		})
	}
	return pools, nil
}

// AssetInput is one row of an admin asset upload.
type AssetInput struct {
	Name string      `json:"name"`
	Tier models.Tier `json:"tier"`
	Rank int         `json:"rank"`
}

// AddAssets loads assets into an event's pool. Pools are frozen once the
// event has picks.
func AddAssets(ctx context.Context, repo DraftRepository, eventID string, inputs []AssetInput) ([]models.Asset, error) {
	if eventID == "" || len(inputs) == 0 {
		return nil, ErrBadRequest
	}
	assets := make([]models.Asset, 0, len(inputs))
	for i, in := range inputs {
		if in.Name == "" || !in.Tier.Valid() {
			return nil, fmt.Errorf("%w: asset %d needs a name and a tier between 1 and %d", ErrBadRequest, i, models.TierCount)
		}
		assets = append(assets, models.Asset{
			ID:      uuid.NewString(),
			EventID: eventID,
			Name:    in.Name,
			Tier:    in.Tier,
			Rank:    in.Rank,
		})
	}

	err := repo.Transaction(ctx, func(tx DraftStore) error {
		event, err := lockEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if !event.Draftable() {
			return ErrEventClosed
		}
		n, err := tx.CountPicks(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count picks: %w", err)
		}
		if n > 0 {
			return ErrAlreadyDrafted
		}
		return tx.CreateAssets(ctx, assets)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("📦 [ASSETS] %d assets added to event %s", len(assets), eventID)
	return assets, nil
}
