package models

import "time"

// HeatMapCell is one row per H3 cell with at least one geocoded user in it
// (denormalized counter, cheap to read, maintained on write). A cell whose
// count reaches zero is deleted, never kept at zero.
//
// No soft delete here: the unique index on H3Index must be free for the
// next increment after a count-to-zero delete.
type HeatMapCell struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	H3Index   string    `gorm:"uniqueIndex;not null" json:"h3_index"`
	Count     int64     `gorm:"not null;default:1" json:"count"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
