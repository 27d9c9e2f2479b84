package models

import "time"

// Encounter records a mutually validated in-person meeting between two
// users. The pair is unordered but stored ordered (UserLowID < UserHighID,
// lexicographic on the uuid strings) so the composite unique index
// guarantees at most one record per pair.
type Encounter struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserLowID   string    `gorm:"uniqueIndex:idx_encounter_pair;not null" json:"user_low_id"`
	UserHighID  string    `gorm:"uniqueIndex:idx_encounter_pair;not null" json:"user_high_id"`
	ValidatedAt time.Time `json:"validated_at"`

	UserLow  *User `gorm:"foreignKey:UserLowID" json:"user_low,omitempty"`
	UserHigh *User `gorm:"foreignKey:UserHighID" json:"user_high,omitempty"`

	Timestamps
}

// OrderPair returns the two IDs in storage order (low, high).
func OrderPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
