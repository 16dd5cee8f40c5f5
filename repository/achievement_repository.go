package repository

import (
	"context"

	"fantasy-draft/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementRepository is the Postgres-backed services.AchievementStore.
type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindAchievementByCode(ctx context.Context, code string) (*models.Achievement, error) {
	var a models.Achievement
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertUserAchievement relies on the (external_user_id, achievement_id)
// unique index: a conflicting insert affects zero rows.
func (r *AchievementRepository) InsertUserAchievement(ctx context.Context, award *models.UserAchievement) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(award)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AchievementRepository) EnsureAchievement(ctx context.Context, achievement *models.Achievement) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).
		Create(achievement).Error
}

func (r *AchievementRepository) ListUserAchievements(ctx context.Context, externalUserID string) ([]models.UserAchievement, error) {
	var awards []models.UserAchievement
	err := r.DB.WithContext(ctx).
		Preload("Achievement").
		Where("external_user_id = ?", externalUserID).
		Order("awarded_at DESC").
		Find(&awards).Error
	return awards, err
}
