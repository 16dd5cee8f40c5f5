package models

import (
	"time"
)

// Participant is a user's membership in exactly one Event.
type Participant struct {
	ID             string `json:"id" gorm:"primaryKey;type:uuid"`
	EventID        string `json:"event_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_participants_event_user;uniqueIndex:idx_participants_event_position"`
	ExternalUserID string `json:"external_user_id" gorm:"not null;uniqueIndex:idx_participants_event_user"`
	DisplayName    string `json:"display_name"`

	// DraftPosition is nil until the draft order is initialized.
	DraftPosition *int `json:"draft_position,omitempty" gorm:"uniqueIndex:idx_participants_event_position"`

	JoinedAt  time.Time `json:"joined_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
