package services

import (
	"errors"

	"constellation-backend/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrPinNotFound   = errors.New("pin not found")
	ErrAwardNotFound = errors.New("award not found")
)

// Stats is the fixed set of per-user counters the award engine evaluates.
type Stats struct {
	PinCount         int64 `json:"pin_count"`
	ClubCount        int64 `json:"club_count"` // clubs are not tracked yet, always 0
	EncounterCount   int64 `json:"encounter_count"`
	SiteCount        int64 `json:"site_count"`
	CountryCount     int64 `json:"country_count"`
	DirectorateCount int64 `json:"directorate_count"`
	HasLegendaryPin  int64 `json:"has_legendary_pin"`
}

// Value maps a statistic name from the award catalog onto the matching
// counter. Unknown names evaluate to 0, so a drifted catalog entry never
// qualifies and never breaks evaluation.
func (s Stats) Value(t models.StatType) int64 {
	switch t {
	case models.StatPinCount:
		return s.PinCount
	case models.StatClubCount:
		return s.ClubCount
	case models.StatEncounterCount:
		return s.EncounterCount
	case models.StatSiteCount:
		return s.SiteCount
	case models.StatCountryCount:
		return s.CountryCount
	case models.StatDirectorateCount:
		return s.DirectorateCount
	case models.StatHasLegendaryPin:
		return s.HasLegendaryPin
	default:
		return 0
	}
}

// StatsService derives the award statistics for one user from their owned
// pins and validated encounters. Read-only.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// GatherUserStats computes all counters for the given user.
// Returns ErrUserNotFound if the user does not exist.
func (s *StatsService) GatherUserStats(userID string) (*Stats, error) {
	var user models.User
	if err := s.DB.Preload("Pins").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stats := &Stats{
		PinCount: int64(len(user.Pins)),
	}
	for _, pin := range user.Pins {
		if pin.Rarity >= models.LegendaryRarity {
			stats.HasLegendaryPin = 1
			break
		}
	}

	var encounters []models.Encounter
	if err := s.DB.
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Find(&encounters).Error; err != nil {
		return nil, err
	}
	stats.EncounterCount = int64(len(encounters))

	if len(encounters) == 0 {
		return stats, nil
	}

	peerIDs := make([]string, 0, len(encounters))
	for _, enc := range encounters {
		if enc.UserLowID == userID {
			peerIDs = append(peerIDs, enc.UserHighID)
		} else {
			peerIDs = append(peerIDs, enc.UserLowID)
		}
	}

	var peers []models.User
	if err := s.DB.Where("id IN ?", peerIDs).Find(&peers).Error; err != nil {
		return nil, err
	}

	// Distinct non-empty values of the peers' org fields
	sites := make(map[string]struct{})
	countries := make(map[string]struct{})
	directorates := make(map[string]struct{})
	for _, peer := range peers {
		if peer.EsaSite != nil && *peer.EsaSite != "" {
			sites[*peer.EsaSite] = struct{}{}
		}
		if peer.Country != nil && *peer.Country != "" {
			countries[*peer.Country] = struct{}{}
		}
		if peer.Directorate != nil && *peer.Directorate != "" {
			directorates[*peer.Directorate] = struct{}{}
		}
	}
	stats.SiteCount = int64(len(sites))
	stats.CountryCount = int64(len(countries))
	stats.DirectorateCount = int64(len(directorates))

	return stats, nil
}
