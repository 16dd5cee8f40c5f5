package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"fantasy-draft/metrics"
	"fantasy-draft/models"

	"github.com/google/uuid"
	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AchievementService struct {
	Store AchievementStore
}

func NewAchievementService(store AchievementStore) *AchievementService {
	return &AchievementService{Store: store}
}

// NormalizeCode trims, folds to ASCII and upper-cases an achievement code.
func NormalizeCode(code string) string {
	return cases.Upper(language.Und).String(unidecode.Unidecode(strings.TrimSpace(code)))
}

// Award grants the achievement to the user. It returns true only when this
// call created the grant; any later call for the same pair returns false.
func (s *AchievementService) Award(ctx context.Context, externalUserID, code string) (bool, error) {
	return s.AwardWithMetadata(ctx, externalUserID, code, nil)
}

// AwardWithMetadata is Award with a JSON metadata blob stored on first grant.
func (s *AchievementService) AwardWithMetadata(ctx context.Context, externalUserID, code string, metadata map[string]any) (bool, error) {
	externalUserID = strings.TrimSpace(externalUserID)
	code = NormalizeCode(code)
	if externalUserID == "" || code == "" {
		return false, ErrBadRequest
	}

	achievement, err := s.Store.FindAchievementByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("⚠️ [ACHIEVEMENT] unknown code %q for user %s, award dropped", code, externalUserID)
		return false, fmt.Errorf("%w: %s", ErrUnknownAchievement, code)
	}
	if err != nil {
		return false, fmt.Errorf("find achievement %s: %w", code, err)
	}

	award := &models.UserAchievement{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		AchievementID:  achievement.ID,
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return false, fmt.Errorf("encode award metadata: %w", err)
		}
		award.Metadata = datatypes.JSON(raw)
	}

	created, err := s.Store.InsertUserAchievement(ctx, award)
	if err != nil {
		return false, fmt.Errorf("insert award %s for %s: %w", code, externalUserID, err)
	}
	if created {
		metrics.AchievementsGranted.Inc()
		log.Printf("🎖️ [ACHIEVEMENT] %s → %s", achievement.Name, externalUserID)
	}
	return created, nil
}

// SeedCatalog makes sure every catalog achievement exists. Safe to run on
// every boot.
func (s *AchievementService) SeedCatalog(ctx context.Context, catalog []models.Achievement) error {
	for _, a := range catalog {
		a.Code = NormalizeCode(a.Code)
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if err := s.Store.EnsureAchievement(ctx, &a); err != nil {
			return fmt.Errorf("seed achievement %s: %w", a.Code, err)
		}
	}
	log.Printf("✅ [ACHIEVEMENT] catalog seeded (%d entries)", len(catalog))
	return nil
}

func (s *AchievementService) ListForUser(ctx context.Context, externalUserID string) ([]models.UserAchievement, error) {
	if strings.TrimSpace(externalUserID) == "" {
		return nil, ErrBadRequest
	}
	return s.Store.ListUserAchievements(ctx, externalUserID)
}
