package models

// StatType names one of the fixed user statistics the award engine can
// compare against a threshold. Values stored in Award.DynamicType outside
// this set evaluate to 0 and never qualify (catalog/statistics drift is
// tolerated, not fatal).
type StatType string

const (
	StatPinCount         StatType = "pin_count"
	StatClubCount        StatType = "club_count"
	StatEncounterCount   StatType = "encounter_count"
	StatSiteCount        StatType = "site_count"
	StatCountryCount     StatType = "country_count"
	StatDirectorateCount StatType = "directorate_count"
	StatHasLegendaryPin  StatType = "has_legendary_pin"
)

// Award is a catalog entry. Dynamic awards carry a statistic name and a
// threshold and are granted automatically; the rest are assigned manually
// by an admin. The catalog is seeded at startup and deduplicated by name.
type Award struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"index;not null" json:"name"` // uniqueness enforced by the seeder, not the schema
	Requirement string `gorm:"type:text" json:"requirement"`
	Category    string `gorm:"type:varchar(16)" json:"category"` // irl, pin, club, special
	IconName    string `json:"icon_name"`
	IconURL     string `gorm:"type:text" json:"icon_url,omitempty"`

	IsDynamic   bool     `gorm:"default:false" json:"is_dynamic"`
	DynamicType StatType `gorm:"type:varchar(32)" json:"dynamic_type,omitempty"`
	Threshold   int64    `json:"threshold,omitempty"`

	Timestamps
}

// DefaultAwards is the static catalog seeded at startup (upserted by name).
var DefaultAwards = []Award{
	// IRL awards
	{
		Name:        "Site Hopper",
		Requirement: "Met someone from each site",
		Category:    "irl",
		IconName:    "BuildingOfficeIcon",
		IsDynamic:   true,
		DynamicType: StatSiteCount,
		Threshold:   5,
	},
	{
		Name:        "Globetrotter",
		Requirement: "Met someone from each member state",
		Category:    "irl",
		IconName:    "GlobeAltIcon",
		IsDynamic:   true,
		DynamicType: StatCountryCount,
		Threshold:   23,
	},
	{
		Name:        "Directorate Guru",
		Requirement: "Met someone from each directorate",
		Category:    "irl",
		IconName:    "IdentificationIcon",
		IsDynamic:   true,
		DynamicType: StatDirectorateCount,
		Threshold:   12,
	},
	{
		Name:        "Socialite",
		Requirement: "Met more than 10 colleagues",
		Category:    "irl",
		IconName:    "UserGroupIcon",
		IsDynamic:   true,
		DynamicType: StatEncounterCount,
		Threshold:   10,
	},
	{
		Name:        "Connector",
		Requirement: "Met more than 50 colleagues",
		Category:    "irl",
		IconName:    "UsersIcon",
		IsDynamic:   true,
		DynamicType: StatEncounterCount,
		Threshold:   50,
	},

	// Pin awards
	{
		Name:        "Collector",
		Requirement: "Collected more than 10 pins",
		Category:    "pin",
		IconName:    "TicketIcon",
		IsDynamic:   true,
		DynamicType: StatPinCount,
		Threshold:   10,
	},
	{
		Name:        "Hoarder",
		Requirement: "Collected more than 50 pins",
		Category:    "pin",
		IconName:    "SparklesIcon",
		IsDynamic:   true,
		DynamicType: StatPinCount,
		Threshold:   50,
	},
	{
		Name:        "Legendary",
		Requirement: "Collected a legendary pin",
		Category:    "pin",
		IconName:    "MagnifyingGlassCircleIcon",
		IsDynamic:   true,
		DynamicType: StatHasLegendaryPin,
		Threshold:   1,
	},

	// Club awards
	{
		Name:        "Newbie",
		Requirement: "Join your first club",
		Category:    "club",
		IconName:    "PlusCircleIcon",
		IsDynamic:   true,
		DynamicType: StatClubCount,
		Threshold:   1,
	},
	{
		Name:        "Social Butterfly",
		Requirement: "Joined 5 clubs",
		Category:    "club",
		IconName:    "HashtagIcon",
		IsDynamic:   true,
		DynamicType: StatClubCount,
		Threshold:   5,
	},
	{
		Name:        "Club Legend",
		Requirement: "Joined 10 clubs",
		Category:    "club",
		IconName:    "RocketLaunchIcon",
		IsDynamic:   true,
		DynamicType: StatClubCount,
		Threshold:   10,
	},
	{
		Name:        "The Visionary",
		Requirement: "Club founder",
		Category:    "club",
		IconName:    "FlagIcon",
	},
	{
		Name:        "The Shepherd",
		Requirement: "Club manager",
		Category:    "club",
		IconName:    "WrenchScrewdriverIcon",
	},

	// Young ESA awards
	{
		Name:        "Part of the Crew",
		Requirement: "Belonging to a group",
		Category:    "special",
		IconName:    "UserGroupIcon",
	},
	{
		Name:        "Skipper",
		Requirement: "Leading a group",
		Category:    "special",
		IconName:    "RocketLaunchIcon",
	},
	{
		Name:        "Expedition Leader",
		Requirement: "Trip organizer",
		Category:    "special",
		IconName:    "GlobeAltIcon",
	},
	{
		Name:        "Star Guide",
		Requirement: "Open days benevol",
		Category:    "special",
		IconName:    "SparklesIcon",
	},
}
