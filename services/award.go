package services

import (
	"errors"
	"log"

	"constellation-backend/models"

	"gorm.io/gorm"
)

// AwardService evaluates the dynamic award catalog against a user's
// statistics and persists new grants.
type AwardService struct {
	DB    *gorm.DB
	Stats *StatsService
}

func NewAwardService(db *gorm.DB) *AwardService {
	return &AwardService{DB: db, Stats: NewStatsService(db)}
}

// EvaluateUserAwards recomputes the user's statistics and grants every
// dynamic award whose threshold is now met and which the user does not
// already hold (tested by award ID, not name). A failed grant is logged and
// does not stop evaluation of the remaining awards.
func (s *AwardService) EvaluateUserAwards(userID string) error {
	log.Printf("[Awards] Evaluating awards for user %s...", userID)

	var dynamicAwards []models.Award
	if err := s.DB.Where("is_dynamic = ?", true).Find(&dynamicAwards).Error; err != nil {
		return err
	}
	if len(dynamicAwards) == 0 {
		log.Println("[Awards] No dynamic awards found in DB.")
		return nil
	}

	stats, err := s.Stats.GatherUserStats(userID)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.DB.Preload("Awards").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	held := make(map[string]bool, len(user.Awards))
	for _, a := range user.Awards {
		held[a.ID] = true
	}

	for i := range dynamicAwards {
		award := dynamicAwards[i]
		if held[award.ID] {
			continue
		}

		value := stats.Value(award.DynamicType)
		log.Printf("[Awards] Checking %q: %d / %d", award.Name, value, award.Threshold)
		if value < award.Threshold {
			continue
		}

		if err := s.DB.Model(&user).Association("Awards").Append(&award); err != nil {
			log.Printf("[Awards] Failed to assign %q to user %s: %v", award.Name, userID, err)
			continue
		}
		log.Printf("🎖️ [Awards] Assigned %q to %s", award.Name, user.Username)
	}

	return nil
}

// GrantAward manually connects an award to a user (admin path for the
// non-dynamic catalog entries). Granting an already-held award is a no-op.
func (s *AwardService) GrantAward(userID, awardID string) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var award models.Award
	if err := s.DB.First(&award, "id = ?", awardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAwardNotFound
		}
		return err
	}

	return s.DB.Model(&user).Association("Awards").Append(&award)
}
