// Package memstore is an in-memory implementation of the draft and
// achievement stores. It enforces the same unique constraints as the Postgres
// schema and serializes transactions, which is what tests rely on.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"fantasy-draft/models"
	"fantasy-draft/services"

	"gorm.io/gorm"
)

// ErrDuplicateKey mirrors a unique index violation.
var ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

type state struct {
	events       map[string]models.Event
	participants []models.Participant
	assets       []models.Asset
	picks        []models.Pick
	achievements []models.Achievement
	awards       []models.UserAchievement
}

func (s *state) clone() *state {
	events := make(map[string]models.Event, len(s.events))
	for k, v := range s.events {
		events[k] = v
	}
	return &state{
		events:       events,
		participants: append([]models.Participant(nil), s.participants...),
		assets:       append([]models.Asset(nil), s.assets...),
		picks:        append([]models.Pick(nil), s.picks...),
		achievements: append([]models.Achievement(nil), s.achievements...),
		awards:       append([]models.UserAchievement(nil), s.awards...),
	}
}

// Store holds every table in memory. The zero value is not usable; call New.
type Store struct {
	mu    sync.Mutex
	state *state

	// FailCreatePicks, when set, is returned by CreatePicks after the rows
	// have been staged, so a transaction sees a partial write fail.
	FailCreatePicks error
	// Transactions counts committed and rolled back transactions.
	Transactions int
}

func New() *Store {
	return &Store{state: &state{events: map[string]models.Event{}}}
}

// Transaction runs fn against a copy of the data and swaps it in only when fn
// succeeds. The store lock is held throughout, so transactions never overlap.
func (s *Store) Transaction(ctx context.Context, fn func(tx services.DraftStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transactions++
	staged := s.state.clone()
	if err := fn(&view{st: staged, store: s}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

func (s *Store) do(fn func(v *view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&view{st: s.state, store: s})
}

func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	return s.do(func(v *view) error { return v.CreateEvent(ctx, event) })
}

func (s *Store) GetEvent(ctx context.Context, eventID string) (e *models.Event, err error) {
	err = s.do(func(v *view) error { e, err = v.GetEvent(ctx, eventID); return err })
	return e, err
}

func (s *Store) LockEvent(ctx context.Context, eventID string) (e *models.Event, err error) {
	err = s.do(func(v *view) error { e, err = v.LockEvent(ctx, eventID); return err })
	return e, err
}

func (s *Store) JoinEvent(ctx context.Context, p *models.Participant) (out *models.Participant, created bool, err error) {
	err = s.do(func(v *view) error { out, created, err = v.JoinEvent(ctx, p); return err })
	return out, created, err
}

func (s *Store) ListParticipants(ctx context.Context, eventID string) (out []models.Participant, err error) {
	err = s.do(func(v *view) error { out, err = v.ListParticipants(ctx, eventID); return err })
	return out, err
}

func (s *Store) AssignDraftPositions(ctx context.Context, eventID string, ids []string) error {
	return s.do(func(v *view) error { return v.AssignDraftPositions(ctx, eventID, ids) })
}

func (s *Store) StartDraftClock(ctx context.Context, eventID string, at time.Time) error {
	return s.do(func(v *view) error { return v.StartDraftClock(ctx, eventID, at) })
}

func (s *Store) CreateAssets(ctx context.Context, assets []models.Asset) error {
	return s.do(func(v *view) error { return v.CreateAssets(ctx, assets) })
}

func (s *Store) ListAssets(ctx context.Context, eventID string) (out []models.Asset, err error) {
	err = s.do(func(v *view) error { out, err = v.ListAssets(ctx, eventID); return err })
	return out, err
}

func (s *Store) CountPicks(ctx context.Context, eventID string) (n int64, err error) {
	err = s.do(func(v *view) error { n, err = v.CountPicks(ctx, eventID); return err })
	return n, err
}

func (s *Store) CreatePicks(ctx context.Context, picks []models.Pick) error {
	return s.do(func(v *view) error { return v.CreatePicks(ctx, picks) })
}

func (s *Store) ListPicks(ctx context.Context, eventID string) (out []models.Pick, err error) {
	err = s.do(func(v *view) error { out, err = v.ListPicks(ctx, eventID); return err })
	return out, err
}

func (s *Store) CompleteDraft(ctx context.Context, eventID string, at time.Time) error {
	return s.do(func(v *view) error { return v.CompleteDraft(ctx, eventID, at) })
}

func (s *Store) SetArchiveURL(ctx context.Context, eventID, url string) error {
	return s.do(func(v *view) error { return v.SetArchiveURL(ctx, eventID, url) })
}

func (s *Store) ListStalledDrafts(ctx context.Context, cutoff time.Time) (out []models.Event, err error) {
	err = s.do(func(v *view) error { out, err = v.ListStalledDrafts(ctx, cutoff); return err })
	return out, err
}

// SetEvent overwrites an event row; tests use it to stage cursor state.
func (s *Store) SetEvent(event models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.events[event.ID] = event
}

// view implements services.DraftStore over one state snapshot without locking.
type view struct {
	st    *state
	store *Store
}

func (v *view) CreateEvent(ctx context.Context, event *models.Event) error {
	if _, ok := v.st.events[event.ID]; ok {
		return ErrDuplicateKey
	}
	for _, e := range v.st.events {
		if e.Slug == event.Slug {
			return ErrDuplicateKey
		}
	}
	if event.Status == "" {
		event.Status = models.EventStatusOpen
	}
	now := time.Now()
	event.CreatedAt, event.UpdatedAt = now, now
	v.st.events[event.ID] = *event
	return nil
}

func (v *view) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	e, ok := v.st.events[eventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (v *view) LockEvent(ctx context.Context, eventID string) (*models.Event, error) {
	return v.GetEvent(ctx, eventID)
}

func (v *view) JoinEvent(ctx context.Context, p *models.Participant) (*models.Participant, bool, error) {
	for _, existing := range v.st.participants {
		if existing.EventID == p.EventID && existing.ExternalUserID == p.ExternalUserID {
			e := existing
			return &e, false, nil
		}
	}
	if p.JoinedAt.IsZero() {
		p.JoinedAt = time.Now()
	}
	v.st.participants = append(v.st.participants, *p)
	return p, true, nil
}

func (v *view) ListParticipants(ctx context.Context, eventID string) ([]models.Participant, error) {
	var out []models.Participant
	for _, p := range v.st.participants {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].DraftPosition, out[j].DraftPosition
		switch {
		case pi == nil && pj == nil:
			return false
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return *pi < *pj
		}
	})
	return out, nil
}

func (v *view) AssignDraftPositions(ctx context.Context, eventID string, ids []string) error {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, dup := index[id]; dup {
			return ErrDuplicateKey
		}
		index[id] = i + 1
	}
	assigned := 0
	for i := range v.st.participants {
		p := &v.st.participants[i]
		if p.EventID != eventID {
			continue
		}
		if pos, ok := index[p.ID]; ok {
			pos := pos
			p.DraftPosition = &pos
			assigned++
		} else {
			p.DraftPosition = nil
		}
	}
	if assigned != len(ids) {
		return fmt.Errorf("%d of %d participants are not in event %s", len(ids)-assigned, len(ids), eventID)
	}
	return nil
}

func (v *view) StartDraftClock(ctx context.Context, eventID string, at time.Time) error {
	e, ok := v.st.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Status = models.EventStatusDrafting
	e.CurrentPick = 1
	e.CurrentPickStartedAt = &at
	v.st.events[eventID] = e
	return nil
}

func (v *view) CreateAssets(ctx context.Context, assets []models.Asset) error {
	for _, a := range assets {
		for _, existing := range v.st.assets {
			if existing.ID == a.ID {
				return ErrDuplicateKey
			}
		}
		v.st.assets = append(v.st.assets, a)
	}
	return nil
}

func (v *view) ListAssets(ctx context.Context, eventID string) ([]models.Asset, error) {
	var out []models.Asset
	for _, a := range v.st.assets {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (v *view) CountPicks(ctx context.Context, eventID string) (int64, error) {
	var n int64
	for _, p := range v.st.picks {
		if p.EventID == eventID {
			n++
		}
	}
	return n, nil
}

// CreatePicks enforces the (event, asset) and (event, participant, round)
// unique indexes.
func (v *view) CreatePicks(ctx context.Context, picks []models.Pick) error {
	for i, p := range picks {
		for _, existing := range v.st.picks {
			if existing.EventID != p.EventID {
				continue
			}
			if existing.AssetID == p.AssetID {
				return fmt.Errorf("%w: idx_picks_event_asset", ErrDuplicateKey)
			}
			if existing.ParticipantID == p.ParticipantID && existing.Round == p.Round {
				return fmt.Errorf("%w: idx_picks_event_participant_round", ErrDuplicateKey)
			}
		}
		v.st.picks = append(v.st.picks, p)
		if v.store.FailCreatePicks != nil && i == len(picks)/2 {
			return v.store.FailCreatePicks
		}
	}
	return nil
}

func (v *view) ListPicks(ctx context.Context, eventID string) ([]models.Pick, error) {
	var out []models.Pick
	for _, p := range v.st.picks {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Overall < out[j].Overall })
	return out, nil
}

func (v *view) CompleteDraft(ctx context.Context, eventID string, at time.Time) error {
	e, ok := v.st.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Status = models.EventStatusComplete
	e.DraftedAt = &at
	e.CurrentPickStartedAt = nil
	v.st.events[eventID] = e
	return nil
}

func (v *view) SetArchiveURL(ctx context.Context, eventID, url string) error {
	e, ok := v.st.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.ArchiveURL = url
	v.st.events[eventID] = e
	return nil
}

func (v *view) ListStalledDrafts(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	var out []models.Event
	for _, e := range v.st.events {
		if e.Status == models.EventStatusDrafting && e.CurrentPickStartedAt != nil && e.CurrentPickStartedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrentPickStartedAt.Before(*out[j].CurrentPickStartedAt) })
	return out, nil
}
