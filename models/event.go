package models

import (
	"time"
)

// EventStatus tracks the draft lifecycle of an event.
type EventStatus string

const (
	EventStatusOpen     EventStatus = "open"     // accepting participants
	EventStatusDrafting EventStatus = "drafting" // order assigned, current_pick active
	EventStatusComplete EventStatus = "complete" // all rounds persisted
	EventStatusClosed   EventStatus = "closed"
	EventStatusArchived EventStatus = "archived"
)

// Event is a single fantasy competition that participants join and draft in.
type Event struct {
	ID     string      `json:"id" gorm:"primaryKey;type:uuid"`
	Name   string      `json:"name" gorm:"not null"`
	Slug   string      `json:"slug" gorm:"uniqueIndex;not null"`
	Status EventStatus `json:"status" gorm:"type:varchar(16);not null;default:'open'"`

	// CurrentPick is 1-based and only meaningful while Status is drafting.
	CurrentPick          int        `json:"current_pick" gorm:"not null;default:0"`
	CurrentPickStartedAt *time.Time `json:"current_pick_started_at,omitempty"`

	DraftedAt  *time.Time `json:"drafted_at,omitempty"`
	ArchiveURL string     `json:"archive_url,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:EventID"`
}

// Draftable reports whether the event can still have its order (re)initialized.
func (e *Event) Draftable() bool {
	return e.Status == EventStatusOpen || e.Status == EventStatusDrafting
}
