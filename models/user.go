package models

import (
	"time"
)

// User is the profile record for a Constellation member.
// Geocoded fields (Latitude, Longitude, H3Index, GeocodedAt) are derived:
// H3Index is either empty or exactly the cell resolved from the current
// Address — never a stale cell for an old address.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`

	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`

	// Org fields used by the encounter statistics (distinct-value sets)
	Country     *string `json:"country,omitempty"`
	EsaSite     *string `json:"esa_site,omitempty"`
	Directorate *string `json:"directorate,omitempty"`

	// Free-text address and its geocoded state
	Address    string     `json:"address"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	H3Index    string     `gorm:"index" json:"h3_index,omitempty"`
	GeocodedAt *time.Time `json:"geocoded_at,omitempty"`

	Pins   []Pin   `gorm:"many2many:user_pins;" json:"pins,omitempty"`
	Awards []Award `gorm:"many2many:user_awards;" json:"awards,omitempty"`

	Timestamps
}
