package models

// Pin is a collectible badge-like item users can own.
//
// Rarity is derived, never authoritative: it is recomputed from current
// ownership counts (1 - owners/totalUsers, or 1 with no users at all)
// whenever the ownership relation changes. See services.RarityService.
type Pin struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	// 🖼️ Media
	ImageURL string `gorm:"type:text" json:"image_url,omitempty"`

	Rarity float64 `gorm:"default:1" json:"rarity"`

	Users []User `gorm:"many2many:user_pins;" json:"users,omitempty"`

	Timestamps
}

// LegendaryRarity is the rarity floor above which a pin counts as legendary
// for the has_legendary_pin statistic.
const LegendaryRarity = 0.95
