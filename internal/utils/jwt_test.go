package utils

import (
	"testing"
	"time"

	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret          = "test-secret-key-for-jwt-testing"
	testWrongSecret     = "wrong-secret-key-for-jwt-testing"
	testTokenDuration   = 1 * time.Hour
	testExpiredDuration = -1 * time.Hour
)

func newTestUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "hunter",
		Email:    "hunter@example.com",
	}
}

func TestGenerateToken_Success(t *testing.T) {
	token, err := GenerateToken(newTestUser(), testSecret, testTokenDuration)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Contains(t, token, ".", "JWT token should contain dots")
}

func TestValidateToken_Success(t *testing.T) {
	user := newTestUser()
	token, err := GenerateToken(user, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)

	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now()))
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	token, err := GenerateToken(newTestUser(), testSecret, testExpiredDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(newTestUser(), testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testWrongSecret)

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_TamperedToken(t *testing.T) {
	token, err := GenerateToken(newTestUser(), testSecret, testTokenDuration)
	require.NoError(t, err)

	tampered := token[:len(token)-5] + "XXXXX"

	claims, err := ValidateToken(tampered, testSecret)

	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid.token.here",
		"not-a-jwt-token",
		"a.b",
	}

	for _, invalidToken := range invalidTokens {
		t.Run(invalidToken, func(t *testing.T) {
			claims, err := ValidateToken(invalidToken, testSecret)

			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestToken_RoundTrip(t *testing.T) {
	users := []*models.User{
		newTestUser(),
		{ID: 1, Username: "unicode_user_ışık", Email: "unicode@example.com"},
		{ID: 7, Username: "special!@#$%", Email: "special@example.com"},
	}

	for _, user := range users {
		t.Run(user.Username, func(t *testing.T) {
			token, err := GenerateToken(user, testSecret, testTokenDuration)
			require.NoError(t, err)

			claims, err := ValidateToken(token, testSecret)
			require.NoError(t, err)

			assert.Equal(t, user.ID, claims.UserID)
			assert.Equal(t, user.Username, claims.Username)
		})
	}
}
