package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	ownerID := uuid.New()

	token, sessionID, err := svc.GenerateToken(ownerID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, sessionID)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, ownerID, claims.OwnerID)
	assert.Equal(t, sessionID, claims.ID)
}

func TestGenerateToken_FreshSessionIDPerToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	ownerID := uuid.New()

	_, first, err := svc.GenerateToken(ownerID)
	assert.NoError(t, err)
	_, second, err := svc.GenerateToken(ownerID)
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a", time.Hour).GenerateToken(uuid.New())
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, _, err := svc.GenerateToken(uuid.New())
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
