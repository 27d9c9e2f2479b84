package services

import (
	"errors"
	"log"

	"constellation-backend/models"

	"gorm.io/gorm"
)

// RarityService recomputes pin scarcity scores. Rarity is a pure function
// of the current ownership counts, so every recompute self-heals whatever
// drift a previous lost update may have left behind.
type RarityService struct {
	DB *gorm.DB
}

func NewRarityService(db *gorm.DB) *RarityService {
	return &RarityService{DB: db}
}

// ComputeRarity refreshes one pin's rarity from current counts:
// 1 - owners/totalUsers, or 1 when there are no users at all.
func (s *RarityService) ComputeRarity(pinID string) (float64, error) {
	var pin models.Pin
	if err := s.DB.First(&pin, "id = ?", pinID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPinNotFound
		}
		return 0, err
	}

	owners := s.DB.Model(&pin).Association("Users").Count()

	var totalUsers int64
	if err := s.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return 0, err
	}

	rarity := 1.0
	if totalUsers > 0 {
		rarity = 1 - float64(owners)/float64(totalUsers)
	}

	if err := s.DB.Model(&pin).Update("rarity", rarity).Error; err != nil {
		return 0, err
	}

	log.Printf("[Rarity] Pin %s: %d/%d owners → rarity %.3f", pinID, owners, totalUsers, rarity)
	return rarity, nil
}

// ReconcileAll recomputes rarity for every pin. One failing pin is logged
// and skipped, the sweep continues.
func (s *RarityService) ReconcileAll() error {
	var pins []models.Pin
	if err := s.DB.Find(&pins).Error; err != nil {
		return err
	}

	for _, pin := range pins {
		if _, err := s.ComputeRarity(pin.ID); err != nil {
			log.Printf("[Rarity] Reconcile failed for pin %s: %v", pin.ID, err)
		}
	}
	return nil
}
