package services

import (
	"context"
	"fmt"
	"strings"

	"fantasy-draft/models"

	"github.com/google/uuid"
)

// JoinEvent registers a user in an open event. Joining again returns the
// existing membership with created == false.
func JoinEvent(ctx context.Context, store DraftStore, eventID, externalUserID, displayName string) (*models.Participant, bool, error) {
	externalUserID = strings.TrimSpace(externalUserID)
	if eventID == "" || externalUserID == "" {
		return nil, false, ErrBadRequest
	}
	event, err := getEvent(ctx, store, eventID)
	if err != nil {
		return nil, false, err
	}
	if event.Status != models.EventStatusOpen {
		return nil, false, fmt.Errorf("%w: status is %s", ErrEventClosed, event.Status)
	}

	p := &models.Participant{
		ID:             uuid.NewString(),
		EventID:        eventID,
		ExternalUserID: externalUserID,
		DisplayName:    strings.TrimSpace(displayName),
	}
	stored, created, err := store.JoinEvent(ctx, p)
	if err != nil {
		return nil, false, fmt.Errorf("join event %s: %w", eventID, err)
	}
	return stored, created, nil
}

// ListParticipants returns the event's participants in draft order.
func ListParticipants(ctx context.Context, store DraftStore, eventID string) ([]models.Participant, error) {
	if eventID == "" {
		return nil, ErrBadRequest
	}
	if _, err := getEvent(ctx, store, eventID); err != nil {
		return nil, err
	}
	return store.ListParticipants(ctx, eventID)
}

// orderedParticipants returns participants sorted by draft position and fails
// if any of them has not been given one.
func orderedParticipants(ctx context.Context, store DraftStore, eventID string) ([]models.Participant, error) {
	participants, err := store.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	for i, p := range participants {
		if p.DraftPosition == nil || *p.DraftPosition != i+1 {
			return nil, fmt.Errorf("%w: participant %s has no valid draft position", ErrDraftNotStarted, p.ID)
		}
	}
	return participants, nil
}
