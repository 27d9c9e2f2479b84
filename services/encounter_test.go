package services

import (
	"testing"
	"time"

	"constellation-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEncounterFixture(t *testing.T) (*EncounterService, *models.User, *models.User) {
	t.Helper()
	db := newTestDB(t)
	svc := NewEncounterService(db, NewAwardService(db), "test-secret")
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	return svc, alice, bob
}

func TestEncounter_TokenRoundTrip(t *testing.T) {
	svc, alice, bob := newEncounterFixture(t)

	token, err := svc.GenerateToken(alice.ID)
	require.NoError(t, err)

	result, err := svc.ValidateToken(token, bob.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyRecorded)
	assert.Equal(t, alice.ID, result.OtherUserID)

	lowID, highID := models.OrderPair(alice.ID, bob.ID)
	assert.Equal(t, lowID, result.Encounter.UserLowID)
	assert.Equal(t, highID, result.Encounter.UserHighID)
	assert.Less(t, result.Encounter.UserLowID, result.Encounter.UserHighID)
}

func TestEncounter_SamePairIsIdempotent(t *testing.T) {
	svc, alice, bob := newEncounterFixture(t)

	token, err := svc.GenerateToken(alice.ID)
	require.NoError(t, err)
	first, err := svc.ValidateToken(token, bob.ID)
	require.NoError(t, err)

	// The reverse direction hits the same ordered pair.
	reverse, err := svc.GenerateToken(bob.ID)
	require.NoError(t, err)
	second, err := svc.ValidateToken(reverse, alice.ID)
	require.NoError(t, err)

	assert.True(t, second.AlreadyRecorded)
	assert.Equal(t, first.Encounter.ID, second.Encounter.ID)

	var count int64
	require.NoError(t, svc.DB.Model(&models.Encounter{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEncounter_SelfValidationRejected(t *testing.T) {
	svc, alice, _ := newEncounterFixture(t)

	token, err := svc.GenerateToken(alice.ID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token, alice.ID)
	assert.ErrorIs(t, err, ErrSelfEncounter)
}

func TestEncounter_GarbageTokenRejected(t *testing.T) {
	svc, _, bob := newEncounterFixture(t)

	_, err := svc.ValidateToken("not-a-jwt", bob.ID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEncounter_ExpiredTokenRejected(t *testing.T) {
	svc, alice, bob := newEncounterFixture(t)

	now := time.Now()
	claims := encounterClaims{
		UserID: alice.ID,
		Type:   encounterTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute + EncounterTokenTTL)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired, bob.ID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEncounter_WrongSecretRejected(t *testing.T) {
	svc, alice, bob := newEncounterFixture(t)

	forged := NewEncounterService(svc.DB, svc.Awards, "other-secret")
	token, err := forged.GenerateToken(alice.ID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token, bob.ID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEncounter_WrongTokenTypeRejected(t *testing.T) {
	svc, alice, bob := newEncounterFixture(t)

	now := time.Now()
	claims := encounterClaims{
		UserID: alice.ID,
		Type:   "session",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(EncounterTokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token, bob.ID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEncounter_TriggersAwardEvaluation(t *testing.T) {
	svc, alice, bob := newEncounterFixture(t)
	createDynamicAward(t, svc.DB, "Newbie", models.StatEncounterCount, 1)

	token, err := svc.GenerateToken(alice.ID)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token, bob.ID)
	require.NoError(t, err)

	assert.Contains(t, userAwardNames(t, svc.DB, alice.ID), "Newbie")
	assert.Contains(t, userAwardNames(t, svc.DB, bob.ID), "Newbie")
}

func TestEncounter_ListForUser(t *testing.T) {
	svc, alice, bob := newEncounterFixture(t)
	carol := createUser(t, svc.DB, "carol")

	createEncounter(t, svc.DB, alice, bob)
	createEncounter(t, svc.DB, bob, carol)

	mine, err := svc.ListForUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ListForUser(bob.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 2)
}
