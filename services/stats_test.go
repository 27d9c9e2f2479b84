package services

import (
	"fmt"
	"testing"

	"constellation-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherUserStats_PinCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	user := createUser(t, db, "collector")
	for i := 0; i < 12; i++ {
		ownPin(t, db, user, createPin(t, db, fmt.Sprintf("Pin %d", i), 0.5))
	}

	stats, err := svc.GatherUserStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.PinCount)
	assert.Equal(t, int64(0), stats.HasLegendaryPin)
}

func TestGatherUserStats_LegendaryPin(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	user := createUser(t, db, "lucky")
	ownPin(t, db, user, createPin(t, db, "Common", 0.3))
	ownPin(t, db, user, createPin(t, db, "Mythic", 0.98))

	stats, err := svc.GatherUserStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.HasLegendaryPin)
}

func TestGatherUserStats_EncounterPeers(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	user := createUser(t, db, "socialite")
	alice := createPeer(t, db, "alice", "France", "ESTEC", "TEC")
	bob := createPeer(t, db, "bob", "Germany", "ESOC", "TEC")
	carol := createPeer(t, db, "carol", "France", "", "")

	createEncounter(t, db, user, alice)
	createEncounter(t, db, user, bob)
	createEncounter(t, db, carol, user) // reversed pair order

	stats, err := svc.GatherUserStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.EncounterCount)
	assert.Equal(t, int64(2), stats.SiteCount)        // ESTEC, ESOC
	assert.Equal(t, int64(2), stats.CountryCount)     // France counted once
	assert.Equal(t, int64(1), stats.DirectorateCount) // TEC counted once
}

func TestGatherUserStats_NoEncounters(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	user := createUser(t, db, "hermit")

	stats, err := svc.GatherUserStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.EncounterCount)
	assert.Equal(t, int64(0), stats.SiteCount)
	assert.Equal(t, int64(0), stats.CountryCount)
	assert.Equal(t, int64(0), stats.DirectorateCount)
}

func TestGatherUserStats_UserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	_, err := svc.GatherUserStats("no-such-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStatsValue_UnknownStatType(t *testing.T) {
	stats := Stats{PinCount: 42, EncounterCount: 7}
	assert.Equal(t, int64(42), stats.Value(models.StatPinCount))
	assert.Equal(t, int64(0), stats.Value(models.StatType("follower_count")))
	assert.Equal(t, int64(0), stats.Value(models.StatType("")))
}
