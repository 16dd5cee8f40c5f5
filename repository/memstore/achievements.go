package memstore

import (
	"context"
	"sort"
	"time"

	"fantasy-draft/models"

	"gorm.io/gorm"
)

func (s *Store) FindAchievementByCode(ctx context.Context, code string) (*models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.state.achievements {
		if a.Code == code {
			out := a
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *Store) InsertUserAchievement(ctx context.Context, award *models.UserAchievement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.state.awards {
		if existing.ExternalUserID == award.ExternalUserID && existing.AchievementID == award.AchievementID {
			return false, nil
		}
	}
	award.AwardedAt = time.Now()
	s.state.awards = append(s.state.awards, *award)
	return true, nil
}

func (s *Store) EnsureAchievement(ctx context.Context, achievement *models.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.state.achievements {
		if existing.Code == achievement.Code {
			return nil
		}
	}
	s.state.achievements = append(s.state.achievements, *achievement)
	return nil
}

func (s *Store) ListUserAchievements(ctx context.Context, externalUserID string) ([]models.UserAchievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID := make(map[string]models.Achievement, len(s.state.achievements))
	for _, a := range s.state.achievements {
		byID[a.ID] = a
	}
	var out []models.UserAchievement
	for _, ua := range s.state.awards {
		if ua.ExternalUserID == externalUserID {
			ua.Achievement = byID[ua.AchievementID]
			out = append(out, ua)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AwardedAt.After(out[j].AwardedAt) })
	return out, nil
}

// AwardCount returns how many grant rows exist for the pair.
func (s *Store) AwardCount(externalUserID, achievementID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ua := range s.state.awards {
		if ua.ExternalUserID == externalUserID && ua.AchievementID == achievementID {
			n++
		}
	}
	return n
}

// AwardTotal returns the number of grant rows across all users.
func (s *Store) AwardTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.awards)
}
