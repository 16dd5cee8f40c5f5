package services

import (
	"context"
	"fmt"

	"fantasy-draft/models"

	"github.com/google/uuid"
)

// WritePicks persists engine output for an event, giving each pick an ID.
// It does not deduplicate; the (event, asset) unique index rejects a second
// draft of the same asset and the error is returned as-is.
func WritePicks(ctx context.Context, store DraftStore, eventID string, picks []models.Pick) ([]models.Pick, error) {
	if len(picks) == 0 {
		return picks, nil
	}
	rows := make([]models.Pick, len(picks))
	for i, p := range picks {
		p.ID = uuid.NewString()
		p.EventID = eventID
		rows[i] = p
	}
	if err := store.CreatePicks(ctx, rows); err != nil {
		return nil, fmt.Errorf("write %d picks for event %s: %w", len(rows), eventID, err)
	}
	return rows, nil
}
