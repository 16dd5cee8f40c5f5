package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fantasy-draft/models"

	"gorm.io/gorm"
)

// DraftStore is the slice of the persistent store the draft components read
// and write. Every component receives it explicitly.
type DraftStore interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	// LockEvent loads the event and holds an exclusive lock on it until the
	// surrounding transaction ends.
	LockEvent(ctx context.Context, eventID string) (*models.Event, error)

	// JoinEvent inserts the participant unless (event, user) already exists;
	// it returns the stored row and whether it was created by this call.
	JoinEvent(ctx context.Context, participant *models.Participant) (*models.Participant, bool, error)
	// ListParticipants orders by draft_position (unassigned last), then joined_at.
	ListParticipants(ctx context.Context, eventID string) ([]models.Participant, error)
	// AssignDraftPositions gives participantIDs[i] the position i+1 and clears
	// every other position in the event.
	AssignDraftPositions(ctx context.Context, eventID string, participantIDs []string) error
	StartDraftClock(ctx context.Context, eventID string, at time.Time) error

	CreateAssets(ctx context.Context, assets []models.Asset) error
	ListAssets(ctx context.Context, eventID string) ([]models.Asset, error)

	CountPicks(ctx context.Context, eventID string) (int64, error)
	CreatePicks(ctx context.Context, picks []models.Pick) error
	ListPicks(ctx context.Context, eventID string) ([]models.Pick, error)
	CompleteDraft(ctx context.Context, eventID string, at time.Time) error
	SetArchiveURL(ctx context.Context, eventID, url string) error

	// ListStalledDrafts returns drafting events whose current pick started
	// before the cutoff.
	ListStalledDrafts(ctx context.Context, cutoff time.Time) ([]models.Event, error)
}

// DraftRepository is a DraftStore that can open a transaction. The store
// passed to fn is bound to that transaction.
type DraftRepository interface {
	DraftStore
	Transaction(ctx context.Context, fn func(tx DraftStore) error) error
}

// AchievementStore backs the achievement awarder.
type AchievementStore interface {
	FindAchievementByCode(ctx context.Context, code string) (*models.Achievement, error)
	// InsertUserAchievement inserts or ignores on the (user, achievement)
	// conflict, reporting whether a row was created.
	InsertUserAchievement(ctx context.Context, award *models.UserAchievement) (bool, error)
	EnsureAchievement(ctx context.Context, achievement *models.Achievement) error
	ListUserAchievements(ctx context.Context, externalUserID string) ([]models.UserAchievement, error)
}

func lockEvent(ctx context.Context, store DraftStore, eventID string) (*models.Event, error) {
	event, err := store.LockEvent(ctx, eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock event %s: %w", eventID, err)
	}
	return event, nil
}

func getEvent(ctx context.Context, store DraftStore, eventID string) (*models.Event, error) {
	event, err := store.GetEvent(ctx, eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	return event, nil
}
