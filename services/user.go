package services

import (
	"context"
	"errors"
	"log"

	"constellation-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService owns the write paths that touch a user record. It is the only
// entry point for address changes, so the location-update protocol runs
// exactly once per logical write — no reactive re-entry guard needed.
type UserService struct {
	DB       *gorm.DB
	Location *LocationService
	Rarity   *RarityService
	Awards   *AwardService
}

func NewUserService(db *gorm.DB, location *LocationService, rarity *RarityService, awards *AwardService) *UserService {
	return &UserService{DB: db, Location: location, Rarity: rarity, Awards: awards}
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// field untouched; an explicit empty Address clears the location.
type ProfileUpdate struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Country     *string `json:"country"`
	EsaSite     *string `json:"esa_site"`
	Directorate *string `json:"directorate"`
	Address     *string `json:"address"`
}

// CreateUser persists a new user, resolving the address (if any) first so
// the heat map counts them from the start.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if user.Address != "" {
		address := user.Address
		user.Address = "" // no previous state on create
		s.Location.ApplyAddressChange(ctx, user, address)
	}

	return s.DB.Create(user).Error
}

// GetUser loads one user with their pins and awards.
func (s *UserService) GetUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Pins").Preload("Awards").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the profile fields and, when the address is part of
// the update, runs the location protocol before saving.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}
	if input.Country != nil {
		user.Country = input.Country
	}
	if input.EsaSite != nil {
		user.EsaSite = input.EsaSite
	}
	if input.Directorate != nil {
		user.Directorate = input.Directorate
	}

	if input.Address != nil {
		s.Location.ApplyAddressChange(ctx, &user, *input.Address)
	}

	if err := s.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user, releases their heat-map cell and recomputes
// rarity for every pin they owned. Side-effect failures are logged, never
// propagated: the deletion itself already happened.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	var user models.User
	if err := s.DB.Preload("Pins").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	h3Index := user.H3Index
	pinIDs := make([]string, 0, len(user.Pins))
	for _, pin := range user.Pins {
		pinIDs = append(pinIDs, pin.ID)
	}

	// Clear the join rows so ownership counts drop immediately (the user
	// row itself is only soft-deleted).
	if err := s.DB.Model(&user).Association("Pins").Clear(); err != nil {
		return err
	}
	if err := s.DB.Model(&user).Association("Awards").Clear(); err != nil {
		return err
	}
	if err := s.DB.Delete(&user).Error; err != nil {
		return err
	}

	if h3Index != "" {
		log.Printf("[Location] Decrementing heat map for deleted user %s (cell %s)", userID, h3Index)
		if err := s.Location.HeatMap.Decrement(h3Index); err != nil {
			log.Printf("[Location] Failed to decrement cell %s: %v", h3Index, err)
		}
	}

	for _, pinID := range pinIDs {
		if _, err := s.Rarity.ComputeRarity(pinID); err != nil {
			log.Printf("[Rarity] Failed to recompute rarity for pin %s after user deletion: %v", pinID, err)
		}
	}

	return nil
}

// CollectPin connects a pin to the user (idempotent), recomputes its rarity
// and re-evaluates the user's awards. The collect itself succeeds even when
// the downstream rarity/award steps fail — those are logged.
func (s *UserService) CollectPin(userID, pinID string) (*models.Pin, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var pin models.Pin
	if err := s.DB.First(&pin, "id = ?", pinID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPinNotFound
		}
		return nil, err
	}

	if err := s.DB.Model(&user).Association("Pins").Append(&pin); err != nil {
		return nil, err
	}

	if rarity, err := s.Rarity.ComputeRarity(pinID); err != nil {
		log.Printf("[Rarity] Failed to recompute rarity for pin %s: %v", pinID, err)
	} else {
		pin.Rarity = rarity
	}

	if err := s.Awards.EvaluateUserAwards(userID); err != nil {
		log.Printf("[Awards] Evaluation after pin collect failed for user %s: %v", userID, err)
	}

	return &pin, nil
}

// ReleasePin disconnects a pin from the user and recomputes its rarity.
// Already-granted awards are never revoked.
func (s *UserService) ReleasePin(userID, pinID string) error {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var pin models.Pin
	if err := s.DB.First(&pin, "id = ?", pinID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPinNotFound
		}
		return err
	}

	if err := s.DB.Model(&user).Association("Pins").Delete(&pin); err != nil {
		return err
	}

	if _, err := s.Rarity.ComputeRarity(pinID); err != nil {
		log.Printf("[Rarity] Failed to recompute rarity for pin %s: %v", pinID, err)
	}
	return nil
}
