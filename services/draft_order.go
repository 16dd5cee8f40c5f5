package services

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"fantasy-draft/models"
)

// Shuffler permutes n elements through swap. Implementations must make every
// permutation equally likely.
type Shuffler func(n int, swap func(i, j int))

// DraftOrderInitializer assigns a random turn order to an event's participants.
type DraftOrderInitializer struct {
	Shuffle Shuffler
	Now     func() time.Time
}

func NewDraftOrderInitializer() *DraftOrderInitializer {
	return &DraftOrderInitializer{Shuffle: rand.Shuffle, Now: time.Now}
}

// Initialize draws a uniform permutation of the event's participants, stores
// it as draft positions 1..N and resets the current pick to 1. The whole step
// runs under the event lock, so concurrent calls for one event serialize; a
// later call discards the earlier order.
func (d *DraftOrderInitializer) Initialize(ctx context.Context, repo DraftRepository, eventID string) ([]models.Participant, error) {
	if eventID == "" {
		return nil, ErrBadRequest
	}

	var ordered []models.Participant
	err := repo.Transaction(ctx, func(tx DraftStore) error {
		event, err := lockEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if !event.Draftable() {
			return fmt.Errorf("%w: status is %s", ErrEventClosed, event.Status)
		}
		n, err := tx.CountPicks(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count picks: %w", err)
		}
		if n > 0 {
			return ErrAlreadyDrafted
		}

		participants, err := tx.ListParticipants(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list participants: %w", err)
		}
		if len(participants) == 0 {
			return ErrNoParticipants
		}

		d.Shuffle(len(participants), func(i, j int) {
			participants[i], participants[j] = participants[j], participants[i]
		})
		ids := make([]string, len(participants))
		for i := range participants {
			pos := i + 1
			participants[i].DraftPosition = &pos
			ids[i] = participants[i].ID
		}

		if err := tx.AssignDraftPositions(ctx, eventID, ids); err != nil {
			return fmt.Errorf("assign draft positions: %w", err)
		}
		if err := tx.StartDraftClock(ctx, eventID, d.Now()); err != nil {
			return fmt.Errorf("reset current pick: %w", err)
		}
		ordered = participants
		return nil
	})
	if err != nil {
		log.Printf("❌ [DRAFT] order initialization failed for event %s: %v", eventID, err)
		return nil, err
	}

	log.Printf("🎲 [DRAFT] order initialized for event %s (%d participants)", eventID, len(ordered))
	return ordered, nil
}
