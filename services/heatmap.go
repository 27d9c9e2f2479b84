package services

import (
	"errors"
	"log"

	"constellation-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeatMapService maintains the per-cell user counters behind the heat map.
//
// The read-modify-write here is not wrapped in a lock or transaction: two
// concurrent writes hitting the same cell can lose an update. Callers must
// not assume exact counts under concurrent load.
type HeatMapService struct {
	DB *gorm.DB
}

func NewHeatMapService(db *gorm.DB) *HeatMapService {
	return &HeatMapService{DB: db}
}

// Increment adds one user to a cell, creating the row at count 1 if absent.
func (s *HeatMapService) Increment(h3Index string) error {
	var cell models.HeatMapCell
	err := s.DB.Where("h3_index = ?", h3Index).First(&cell).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cell = models.HeatMapCell{ID: uuid.NewString(), H3Index: h3Index, Count: 1}
		if err := s.DB.Create(&cell).Error; err != nil {
			return err
		}
		log.Printf("[HeatMap] Created cell %s with count 1", h3Index)
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.DB.Model(&cell).Update("count", cell.Count+1).Error; err != nil {
		return err
	}
	log.Printf("[HeatMap] Incremented %s from %d to %d", h3Index, cell.Count, cell.Count+1)
	return nil
}

// Decrement removes one user from a cell. A cell dropping to zero is
// deleted. Decrementing a missing cell is an anomaly worth logging but not
// an error.
func (s *HeatMapService) Decrement(h3Index string) error {
	var cell models.HeatMapCell
	err := s.DB.Where("h3_index = ?", h3Index).First(&cell).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[HeatMap] Warning: no cell found to decrement for %s", h3Index)
		return nil
	}
	if err != nil {
		return err
	}

	if cell.Count <= 1 {
		if err := s.DB.Delete(&cell).Error; err != nil {
			return err
		}
		log.Printf("[HeatMap] Deleted cell %s (count was %d)", h3Index, cell.Count)
		return nil
	}

	if err := s.DB.Model(&cell).Update("count", cell.Count-1).Error; err != nil {
		return err
	}
	log.Printf("[HeatMap] Decremented %s from %d to %d", h3Index, cell.Count, cell.Count-1)
	return nil
}

// ListCells returns every nonzero cell, for the GeoJSON endpoint.
func (s *HeatMapService) ListCells() ([]models.HeatMapCell, error) {
	var cells []models.HeatMapCell
	if err := s.DB.Find(&cells).Error; err != nil {
		return nil, err
	}
	return cells, nil
}
