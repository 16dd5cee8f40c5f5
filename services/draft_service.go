package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fantasy-draft/metrics"
	"fantasy-draft/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// DraftService ties the draft components to one store. Achievements,
// AutoPicker and Archiver are optional.
type DraftService struct {
	Repo         DraftRepository
	Initializer  *DraftOrderInitializer
	Achievements *AchievementService
	AutoPicker   AutoPicker
	Archiver     ResultArchiver
	Now          func() time.Time
}

func NewDraftService(repo DraftRepository, achievements *AchievementService) *DraftService {
	return &DraftService{
		Repo:         repo,
		Initializer:  NewDraftOrderInitializer(),
		Achievements: achievements,
		Now:          time.Now,
	}
}

// Turn describes whose pick is due under an event's current_pick cursor.
type Turn struct {
	EventID     string             `json:"event_id"`
	CurrentPick int                `json:"current_pick"`
	Round       int                `json:"round"`
	Tier        models.Tier        `json:"tier"`
	Participant models.Participant `json:"participant"`
}

func (s *DraftService) CreateEvent(ctx context.Context, name string) (*models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBadRequest
	}
	id := uuid.NewString()
	event := &models.Event{
		ID:     id,
		Name:   name,
		Slug:   slug.Make(name) + "-" + id[:8],
		Status: models.EventStatusOpen,
	}
	if err := s.Repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	log.Printf("✅ [EVENT] created %s (%s)", event.Name, event.ID)
	return event, nil
}

func (s *DraftService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	if eventID == "" {
		return nil, ErrBadRequest
	}
	return getEvent(ctx, s.Repo, eventID)
}

// Join registers a user and, on first join, hands out the welcome badge.
func (s *DraftService) Join(ctx context.Context, eventID, externalUserID, displayName string) (*models.Participant, bool, error) {
	p, created, err := JoinEvent(ctx, s.Repo, eventID, externalUserID, displayName)
	if err != nil {
		return nil, false, err
	}
	if created {
		log.Printf("👤 [EVENT] %s joined event %s", p.ExternalUserID, eventID)
		s.award(ctx, p.ExternalUserID, models.AchievementFirstEvent, eventID)
	}
	return p, created, nil
}

func (s *DraftService) ListParticipants(ctx context.Context, eventID string) ([]models.Participant, error) {
	return ListParticipants(ctx, s.Repo, eventID)
}

func (s *DraftService) AddAssets(ctx context.Context, eventID string, inputs []AssetInput) ([]models.Asset, error) {
	return AddAssets(ctx, s.Repo, eventID, inputs)
}

// StartDraft runs the draft order initializer for the event.
func (s *DraftService) StartDraft(ctx context.Context, eventID string) ([]models.Participant, error) {
	participants, err := s.Initializer.Initialize(ctx, s.Repo, eventID)
	if err != nil {
		metrics.DraftFailures.WithLabelValues("start").Inc()
		return nil, err
	}
	metrics.DraftOrdersInitialized.Inc()
	return participants, nil
}

// RunDraft loads the ordered participants and tier pools, executes the snake
// draft and persists every pick in one transaction. It is at-most-once per
// event: an event that already has picks is rejected, never re-drafted.
func (s *DraftService) RunDraft(ctx context.Context, eventID string) ([]models.Pick, error) {
	if eventID == "" {
		return nil, ErrBadRequest
	}

	var (
		written      []models.Pick
		participants []models.Participant
	)
	err := s.Repo.Transaction(ctx, func(tx DraftStore) error {
		event, err := lockEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		switch event.Status {
		case models.EventStatusDrafting:
		case models.EventStatusComplete:
			return ErrAlreadyDrafted
		case models.EventStatusOpen:
			return ErrDraftNotStarted
		default:
			return fmt.Errorf("%w: status is %s", ErrEventClosed, event.Status)
		}

		n, err := tx.CountPicks(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count picks: %w", err)
		}
		if n > 0 {
			return ErrAlreadyDrafted
		}

		participants, err = orderedParticipants(ctx, tx, eventID)
		if err != nil {
			return err
		}
		pools, err := LoadPools(ctx, tx, eventID)
		if err != nil {
			return err
		}
		picks, err := ExecuteSnakeDraft(eventID, participants, pools)
		if err != nil {
			return err
		}
		if written, err = WritePicks(ctx, tx, eventID, picks); err != nil {
			return err
		}
		return tx.CompleteDraft(ctx, eventID, s.Now())
	})
	if err != nil {
		metrics.DraftFailures.WithLabelValues("run").Inc()
		log.Printf("❌ [DRAFT] run failed for event %s: %v", eventID, err)
		return nil, err
	}

	metrics.DraftRuns.Inc()
	metrics.PicksWritten.Add(float64(len(written)))
	log.Printf("🏁 [DRAFT] event %s drafted: %d picks for %d participants", eventID, len(written), len(participants))

	s.archive(ctx, eventID, written)
	for _, p := range participants {
		s.award(ctx, p.ExternalUserID, models.AchievementDrafted, eventID)
	}
	if len(written) > 0 {
		s.award(ctx, participants[0].ExternalUserID, models.AchievementFirstOverall, eventID)
	}
	return written, nil
}

func (s *DraftService) ListPicks(ctx context.Context, eventID string) ([]models.Pick, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.Repo.ListPicks(ctx, eventID)
}

// CurrentTurn resolves the event's current_pick cursor with the snake rule.
func (s *DraftService) CurrentTurn(ctx context.Context, eventID string) (*Turn, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusDrafting {
		return nil, ErrDraftNotStarted
	}
	participants, err := orderedParticipants(ctx, s.Repo, eventID)
	if err != nil {
		return nil, err
	}
	pools, err := LoadPools(ctx, s.Repo, eventID)
	if err != nil {
		return nil, err
	}
	due, round, ok := DueParticipant(participants, pools, event.CurrentPick)
	if !ok {
		return nil, fmt.Errorf("%w: current pick %d is past the last pick", ErrEventClosed, event.CurrentPick)
	}
	return &Turn{
		EventID:     eventID,
		CurrentPick: event.CurrentPick,
		Round:       round,
		Tier:        RoundTier(round),
		Participant: due,
	}, nil
}

// AutoPick asks the external procedure to fill the pick that is due. Failures
// are surfaced to the caller.
func (s *DraftService) AutoPick(ctx context.Context, eventID string) (*AutoPickResult, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusDrafting {
		return nil, ErrDraftNotStarted
	}
	if s.AutoPicker == nil {
		return nil, ErrAutoPickOffline
	}
	res, err := s.AutoPicker.AutoPick(ctx, eventID)
	if err != nil {
		metrics.AutoPickInvocations.WithLabelValues("error").Inc()
		log.Printf("❌ [AUTOPICK] event %s pick %d: %v", eventID, event.CurrentPick, err)
		return nil, err
	}
	metrics.AutoPickInvocations.WithLabelValues("ok").Inc()
	log.Printf("🤖 [AUTOPICK] event %s pick %d filled", eventID, event.CurrentPick)
	return res, nil
}

// StalledDrafts lists drafting events whose current pick has been open longer
// than timeout.
func (s *DraftService) StalledDrafts(ctx context.Context, timeout time.Duration) ([]models.Event, error) {
	return s.Repo.ListStalledDrafts(ctx, s.Now().Add(-timeout))
}

func (s *DraftService) archive(ctx context.Context, eventID string, picks []models.Pick) {
	if s.Archiver == nil {
		return
	}
	url, err := s.Archiver.PutJSON(ctx, archiveKey(eventID), picks)
	if err != nil {
		log.Printf("⚠️ [DRAFT] archive upload failed for event %s: %v", eventID, err)
		return
	}
	if err := s.Repo.SetArchiveURL(ctx, eventID, url); err != nil {
		log.Printf("⚠️ [DRAFT] failed to record archive url for event %s: %v", eventID, err)
	}
}

// award is fire-and-forget: a badge must never fail the action that earned it.
func (s *DraftService) award(ctx context.Context, externalUserID, code, eventID string) {
	if s.Achievements == nil {
		return
	}
	_, err := s.Achievements.AwardWithMetadata(ctx, externalUserID, code, map[string]any{"event_id": eventID})
	if err != nil && !errors.Is(err, ErrBadRequest) {
		log.Printf("⚠️ [ACHIEVEMENT] %s for %s not awarded: %v", code, externalUserID, err)
	}
}
