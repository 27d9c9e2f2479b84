package services

import (
	"errors"
	"log"
	"time"

	"constellation-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EncounterTokenTTL is deliberately short: the QR code is scanned face to
// face, so a stolen screenshot goes stale almost immediately.
const EncounterTokenTTL = 15 * time.Second

const encounterTokenType = "irl"

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrSelfEncounter = errors.New("you cannot meet yourself")
)

// encounterClaims is the QR token payload: the subject user and a type tag
// so tokens from other flows can't validate an encounter.
type encounterClaims struct {
	UserID string `json:"u"`
	Type   string `json:"t"`
	jwt.RegisteredClaims
}

// EncounterService issues and validates the short-lived tokens two users
// exchange to record an in-person meeting.
type EncounterService struct {
	DB     *gorm.DB
	Awards *AwardService
	secret []byte
}

func NewEncounterService(db *gorm.DB, awards *AwardService, secret string) *EncounterService {
	return &EncounterService{DB: db, Awards: awards, secret: []byte(secret)}
}

// GenerateToken issues the QR token user A shows to user B.
func (s *EncounterService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := encounterClaims{
		UserID: userID,
		Type:   encounterTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(EncounterTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidationResult reports the outcome of a token validation.
type ValidationResult struct {
	Encounter       *models.Encounter `json:"encounter"`
	OtherUserID     string            `json:"other_user_id"`
	AlreadyRecorded bool              `json:"already_recorded"`
}

// ValidateToken records the encounter between the token's subject and the
// validating user. Validating the same pair twice is an idempotent success
// reporting AlreadyRecorded. Self-encounters and bad tokens are rejected.
func (s *EncounterService) ValidateToken(tokenStr, validatorID string) (*ValidationResult, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&encounterClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*encounterClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	if claims.Type != encounterTokenType {
		return nil, ErrInvalidToken
	}

	if claims.UserID == validatorID {
		return nil, ErrSelfEncounter
	}

	lowID, highID := models.OrderPair(claims.UserID, validatorID)
	otherID := claims.UserID

	var existing models.Encounter
	err = s.DB.Where("user_low_id = ? AND user_high_id = ?", lowID, highID).First(&existing).Error
	if err == nil {
		return &ValidationResult{Encounter: &existing, OtherUserID: otherID, AlreadyRecorded: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	encounter := models.Encounter{
		ID:          uuid.NewString(),
		UserLowID:   lowID,
		UserHighID:  highID,
		ValidatedAt: time.Now(),
	}
	if err := s.DB.Create(&encounter).Error; err != nil {
		return nil, err
	}

	// Fire-and-forget relative to the encounter write: an award failure
	// must never roll back the recorded meeting.
	for _, userID := range []string{lowID, highID} {
		if err := s.Awards.EvaluateUserAwards(userID); err != nil {
			log.Printf("[Encounters] Award evaluation failed for user %s: %v", userID, err)
		}
	}

	return &ValidationResult{Encounter: &encounter, OtherUserID: otherID}, nil
}

// ListForUser returns the encounters the user participates in — privacy
// rule carried over from the original API: you only ever see your own.
func (s *EncounterService) ListForUser(userID string) ([]models.Encounter, error) {
	var encounters []models.Encounter
	err := s.DB.
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("validated_at DESC").
		Find(&encounters).Error
	return encounters, err
}
