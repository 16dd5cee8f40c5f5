package repository

import (
	"context"
	"fmt"
	"time"

	"fantasy-draft/models"
	"fantasy-draft/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DraftRepository is the Postgres-backed services.DraftRepository.
type DraftRepository struct {
	DB *gorm.DB
}

func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{DB: db}
}

func (r *DraftRepository) Transaction(ctx context.Context, fn func(tx services.DraftStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DraftRepository{DB: tx})
	})
}

func (r *DraftRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.DB.WithContext(ctx).Create(event).Error
}

func (r *DraftRepository) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	if err := r.DB.WithContext(ctx).First(&event, "id = ?", eventID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// LockEvent takes a row lock (SELECT ... FOR UPDATE). Only meaningful inside
// Transaction.
func (r *DraftRepository) LockEvent(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	if err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, "id = ?", eventID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *DraftRepository) JoinEvent(ctx context.Context, participant *models.Participant) (*models.Participant, bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "external_user_id"}},
			DoNothing: true,
		}).
		Create(participant)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return participant, true, nil
	}

	var existing models.Participant
	if err := r.DB.WithContext(ctx).
		Where("event_id = ? AND external_user_id = ?", participant.EventID, participant.ExternalUserID).
		First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (r *DraftRepository) ListParticipants(ctx context.Context, eventID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("draft_position ASC NULLS LAST").
		Order("joined_at ASC").
		Order("id ASC").
		Find(&participants).Error
	return participants, err
}

// AssignDraftPositions clears the event's positions first so the
// (event_id, draft_position) unique index never sees a transient duplicate.
func (r *DraftRepository) AssignDraftPositions(ctx context.Context, eventID string, participantIDs []string) error {
	db := r.DB.WithContext(ctx)
	if err := db.Model(&models.Participant{}).
		Where("event_id = ?", eventID).
		Update("draft_position", nil).Error; err != nil {
		return err
	}
	for i, id := range participantIDs {
		res := db.Model(&models.Participant{}).
			Where("id = ? AND event_id = ?", id, eventID).
			Update("draft_position", i+1)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("participant %s is not in event %s", id, eventID)
		}
	}
	return nil
}

func (r *DraftRepository) StartDraftClock(ctx context.Context, eventID string, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"status":                  models.EventStatusDrafting,
			"current_pick":            1,
			"current_pick_started_at": at,
		}).Error
}

func (r *DraftRepository) CreateAssets(ctx context.Context, assets []models.Asset) error {
	return r.DB.WithContext(ctx).CreateInBatches(assets, 200).Error
}

func (r *DraftRepository) ListAssets(ctx context.Context, eventID string) ([]models.Asset, error) {
	var assets []models.Asset
	err := r.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("tier ASC, rank ASC, id ASC").
		Find(&assets).Error
	return assets, err
}

func (r *DraftRepository) CountPicks(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Pick{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *DraftRepository) CreatePicks(ctx context.Context, picks []models.Pick) error {
	return r.DB.WithContext(ctx).CreateInBatches(picks, 200).Error
}

func (r *DraftRepository) ListPicks(ctx context.Context, eventID string) ([]models.Pick, error) {
	var picks []models.Pick
	err := r.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("overall ASC").
		Find(&picks).Error
	return picks, err
}

func (r *DraftRepository) CompleteDraft(ctx context.Context, eventID string, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"status":                  models.EventStatusComplete,
			"drafted_at":              at,
			"current_pick_started_at": nil,
		}).Error
}

func (r *DraftRepository) SetArchiveURL(ctx context.Context, eventID, url string) error {
	return r.DB.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("archive_url", url).Error
}

func (r *DraftRepository) ListStalledDrafts(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.DB.WithContext(ctx).
		Where("status = ? AND current_pick_started_at < ?", models.EventStatusDrafting, cutoff).
		Order("current_pick_started_at ASC").
		Find(&events).Error
	return events, err
}
