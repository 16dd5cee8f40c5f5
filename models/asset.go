package models

import (
	"fmt"
	"time"
)

// Tier is the fixed positional classification of an asset. A draft has one
// round per tier.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
	Tier4 Tier = 4
)

// TierCount is the number of tiers, and therefore of draft rounds.
const TierCount = 4

func (t Tier) Valid() bool {
	return t >= Tier1 && t <= Tier4
}

func (t Tier) String() string {
	return fmt.Sprintf("tier-%d", int(t))
}

// Asset is a draftable player belonging to one Event.
type Asset struct {
	ID      string `json:"id" gorm:"primaryKey;type:uuid"`
	EventID string `json:"event_id" gorm:"type:uuid;not null;index"`
	Name    string `json:"name" gorm:"not null"`
	Tier    Tier   `json:"tier" gorm:"not null;index"`
	// Rank orders assets inside a tier pool, lower is better.
	Rank      int       `json:"rank" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
