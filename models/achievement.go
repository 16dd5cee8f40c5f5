package models

import (
	"time"

	"gorm.io/datatypes"
)

// Achievement: catalog-defined badge
type Achievement struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	Code        string    `json:"code" gorm:"uniqueIndex;not null"` // e.g., "FIRST_EVENT", "DRAFTED"
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url" gorm:"type:text"`
	Rarity      string    `json:"rarity" gorm:"type:varchar(16);default:'common'"` // common, rare, epic, legendary
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserAchievement: one row per (user, achievement). An award is a fact, not a counter.
type UserAchievement struct {
	ID             string         `json:"id" gorm:"primaryKey;type:uuid"`
	ExternalUserID string         `json:"external_user_id" gorm:"not null;uniqueIndex:idx_user_achievements_pair"`
	AchievementID  string         `json:"achievement_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_achievements_pair"`
	AwardedAt      time.Time      `json:"awarded_at" gorm:"autoCreateTime"`
	Metadata       datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"` // e.g., {"event_id": "..."}

	Achievement Achievement `json:"achievement" gorm:"foreignKey:AchievementID"`
}

// Achievement codes. CHAMPION depends on scoring, which lives outside this
// service, so it is only granted through the admin award route.
const (
	AchievementFirstEvent   = "FIRST_EVENT"
	AchievementDrafted      = "DRAFTED"
	AchievementFirstOverall = "FIRST_OVERALL"
	AchievementChampion     = "CHAMPION"
)

// AchievementCatalog is seeded at startup.
var AchievementCatalog = []Achievement{
	{
		Code:        AchievementFirstEvent,
		Name:        "Welcome to the League",
		Description: "Joined your first event",
		Rarity:      "common",
	},
	{
		Code:        AchievementDrafted,
		Name:        "On the Clock",
		Description: "Completed a draft",
		Rarity:      "common",
	},
	{
		Code:        AchievementFirstOverall,
		Name:        "First Overall",
		Description: "Held the first pick of a draft",
		Rarity:      "rare",
	},
	{
		Code:        AchievementChampion,
		Name:        "Champion",
		Description: "Won an event",
		Rarity:      "epic",
	},
}
