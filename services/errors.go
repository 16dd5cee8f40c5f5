package services

import (
	"errors"
	"fmt"

	"fantasy-draft/models"
)

// Input errors: rejected before any state is touched.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnknownAchievement = errors.New("unknown achievement")
)

// Precondition and idempotency errors.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrNoParticipants  = errors.New("event has no participants")
	ErrEventClosed     = errors.New("event is not accepting this operation")
	ErrDraftNotStarted = errors.New("draft order has not been initialized")
	ErrAlreadyDrafted  = errors.New("event already has picks")
	ErrAutoPickOffline = errors.New("auto-pick procedure is not configured")
)

// InvalidPoolError reports a malformed tier pool handed to the draft engine.
type InvalidPoolError struct {
	EventID string
	Tier    models.Tier
	AssetID string
	Reason  string
}

func (e *InvalidPoolError) Error() string {
	return fmt.Sprintf("invalid %s pool for event %s: asset %s %s", e.Tier, e.EventID, e.AssetID, e.Reason)
}
