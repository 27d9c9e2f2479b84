package services

import (
	"log"

	"constellation-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedAwards upserts the static award catalog, keyed by name, and removes
// duplicate rows left behind by earlier runs. Runs at startup.
func SeedAwards(db *gorm.DB) error {
	for _, def := range models.DefaultAwards {
		var existing []models.Award
		if err := db.Where("name = ?", def.Name).Order("created_at ASC").Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) == 0 {
			def.ID = uuid.NewString()
			if err := db.Create(&def).Error; err != nil {
				return err
			}
			log.Printf("[Seed] Created award %q", def.Name)
			continue
		}

		keep := existing[0]
		updates := map[string]interface{}{
			"requirement":  def.Requirement,
			"category":     def.Category,
			"icon_name":    def.IconName,
			"is_dynamic":   def.IsDynamic,
			"dynamic_type": def.DynamicType,
			"threshold":    def.Threshold,
		}
		if err := db.Model(&keep).Updates(updates).Error; err != nil {
			return err
		}

		// Older deploys could double-insert; keep the oldest row and drop
		// the rest for good (grants point at the kept row by seeding order).
		for _, dupe := range existing[1:] {
			if err := db.Unscoped().Delete(&dupe).Error; err != nil {
				log.Printf("[Seed] Failed to delete duplicate award %q (%s): %v", dupe.Name, dupe.ID, err)
				continue
			}
			log.Printf("[Seed] Removed duplicate award %q (%s)", dupe.Name, dupe.ID)
		}
	}

	return nil
}
