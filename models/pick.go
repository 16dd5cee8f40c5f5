package models

import (
	"time"
)

// Pick assigns one Asset to one Participant in a given round. Picks are
// written once and never edited.
type Pick struct {
	ID            string `json:"id" gorm:"primaryKey;type:uuid"`
	EventID       string `json:"event_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_picks_event_asset;uniqueIndex:idx_picks_event_participant_round"`
	ParticipantID string `json:"participant_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_picks_event_participant_round"`
	AssetID       string `json:"asset_id" gorm:"type:uuid;not null;uniqueIndex:idx_picks_event_asset"`
	Round         int    `json:"round" gorm:"not null;uniqueIndex:idx_picks_event_participant_round;check:round BETWEEN 1 AND 4"`
	Tier          Tier   `json:"tier" gorm:"not null"`
	// Overall is the 1-based position of the pick across the whole draft.
	Overall   int       `json:"overall" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
