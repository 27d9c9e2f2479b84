package services

import (
	"fmt"
	"testing"

	"constellation-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateUserAwards_PinCountThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := NewAwardService(db)

	createDynamicAward(t, db, "Collector", models.StatPinCount, 10)
	createDynamicAward(t, db, "Hoarder", models.StatPinCount, 50)

	user := createUser(t, db, "collector")
	for i := 0; i < 12; i++ {
		ownPin(t, db, user, createPin(t, db, fmt.Sprintf("Pin %d", i), 0.5))
	}

	require.NoError(t, svc.EvaluateUserAwards(user.ID))

	names := userAwardNames(t, db, user.ID)
	assert.Contains(t, names, "Collector")
	assert.NotContains(t, names, "Hoarder")
}

func TestEvaluateUserAwards_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAwardService(db)

	createDynamicAward(t, db, "Collector", models.StatPinCount, 1)

	user := createUser(t, db, "steady")
	ownPin(t, db, user, createPin(t, db, "Only Pin", 0.5))

	require.NoError(t, svc.EvaluateUserAwards(user.ID))
	require.NoError(t, svc.EvaluateUserAwards(user.ID))

	names := userAwardNames(t, db, user.ID)
	assert.Equal(t, []string{"Collector"}, names)
}

func TestEvaluateUserAwards_LegendaryPin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAwardService(db)

	createDynamicAward(t, db, "Legendary", models.StatHasLegendaryPin, 1)

	user := createUser(t, db, "lucky")
	ownPin(t, db, user, createPin(t, db, "Mythic", 0.98))

	require.NoError(t, svc.EvaluateUserAwards(user.ID))
	assert.Contains(t, userAwardNames(t, db, user.ID), "Legendary")
}

func TestEvaluateUserAwards_CountryCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAwardService(db)

	createDynamicAward(t, db, "Globetrotter", models.StatCountryCount, 3)

	user := createUser(t, db, "traveler")
	createEncounter(t, db, user, createPeer(t, db, "a", "France", "", ""))
	createEncounter(t, db, user, createPeer(t, db, "b", "Germany", "", ""))

	require.NoError(t, svc.EvaluateUserAwards(user.ID))
	assert.NotContains(t, userAwardNames(t, db, user.ID), "Globetrotter")

	createEncounter(t, db, user, createPeer(t, db, "c", "Italy", "", ""))

	require.NoError(t, svc.EvaluateUserAwards(user.ID))
	assert.Contains(t, userAwardNames(t, db, user.ID), "Globetrotter")
}

func TestEvaluateUserAwards_UnknownDynamicTypeNeverFires(t *testing.T) {
	db := newTestDB(t)
	svc := NewAwardService(db)

	createDynamicAward(t, db, "Drifted", models.StatType("galaxy_count"), 1)

	user := createUser(t, db, "anyone")
	ownPin(t, db, user, createPin(t, db, "A Pin", 0.5))

	require.NoError(t, svc.EvaluateUserAwards(user.ID))
	assert.Empty(t, userAwardNames(t, db, user.ID))
}

func TestEvaluateUserAwards_SkipsStaticAwards(t *testing.T) {
	db := newTestDB(t)
	svc := NewAwardService(db)

	static := &models.Award{ID: "static-1", Name: "The Visionary", Category: "community"}
	require.NoError(t, db.Create(static).Error)

	user := createUser(t, db, "builder")
	ownPin(t, db, user, createPin(t, db, "A Pin", 0.5))

	require.NoError(t, svc.EvaluateUserAwards(user.ID))
	assert.Empty(t, userAwardNames(t, db, user.ID))
}

func TestGrantAward(t *testing.T) {
	db := newTestDB(t)
	svc := NewAwardService(db)

	award := &models.Award{ID: "manual-1", Name: "The Shepherd", Category: "community"}
	require.NoError(t, db.Create(award).Error)
	user := createUser(t, db, "leader")

	require.NoError(t, svc.GrantAward(user.ID, award.ID))
	require.NoError(t, svc.GrantAward(user.ID, award.ID)) // re-grant is a no-op

	assert.Equal(t, []string{"The Shepherd"}, userAwardNames(t, db, user.ID))

	assert.ErrorIs(t, svc.GrantAward("missing", award.ID), ErrUserNotFound)
	assert.ErrorIs(t, svc.GrantAward(user.ID, "missing"), ErrAwardNotFound)
}
