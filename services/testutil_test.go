package services

import (
	"testing"
	"time"

	"constellation-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // every pool conn must see the same :memory: db

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Pin{},
		&models.Award{},
		&models.Encounter{},
		&models.HeatMapCell{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@example.test",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createPeer is createUser plus the org fields the encounter stats read.
func createPeer(t *testing.T, db *gorm.DB, username, country, site, directorate string) *models.User {
	t.Helper()
	user := createUser(t, db, username)
	if country != "" {
		user.Country = &country
	}
	if site != "" {
		user.EsaSite = &site
	}
	if directorate != "" {
		user.Directorate = &directorate
	}
	require.NoError(t, db.Save(user).Error)
	return user
}

func createPin(t *testing.T, db *gorm.DB, name string, rarity float64) *models.Pin {
	t.Helper()
	pin := &models.Pin{
		ID:     uuid.NewString(),
		Name:   name,
		Slug:   slug.Make(name),
		Rarity: rarity,
	}
	require.NoError(t, db.Create(pin).Error)
	return pin
}

func ownPin(t *testing.T, db *gorm.DB, user *models.User, pin *models.Pin) {
	t.Helper()
	require.NoError(t, db.Model(user).Association("Pins").Append(pin))
}

func createEncounter(t *testing.T, db *gorm.DB, a, b *models.User) *models.Encounter {
	t.Helper()
	lowID, highID := models.OrderPair(a.ID, b.ID)
	enc := &models.Encounter{
		ID:          uuid.NewString(),
		UserLowID:   lowID,
		UserHighID:  highID,
		ValidatedAt: time.Now(),
	}
	require.NoError(t, db.Create(enc).Error)
	return enc
}

func createDynamicAward(t *testing.T, db *gorm.DB, name string, statType models.StatType, threshold int64) *models.Award {
	t.Helper()
	award := &models.Award{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    "test",
		IsDynamic:   true,
		DynamicType: statType,
		Threshold:   threshold,
	}
	require.NoError(t, db.Create(award).Error)
	return award
}

func userAwardNames(t *testing.T, db *gorm.DB, userID string) []string {
	t.Helper()
	var user models.User
	require.NoError(t, db.Preload("Awards").First(&user, "id = ?", userID).Error)
	names := make([]string, 0, len(user.Awards))
	for _, a := range user.Awards {
		names = append(names, a.Name)
	}
	return names
}
