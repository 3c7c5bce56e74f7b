package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "alex", "alex@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alex", user.Username)
	assert.Equal(t, "alex@example.com", user.Email)
	assert.NotEmpty(t, user.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), user.TokenExpiry, time.Minute)
}

func TestValidateTokenStripsBearerPrefix(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "alex", "alex@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("Bearer "+token, testSecret)
	assert.NoError(t, err)
}

func TestValidateTokenErrors(t *testing.T) {
	expired, err := GenerateToken(uuid.New(), "alex", "alex@example.com", testSecret, -time.Minute)
	require.NoError(t, err)

	valid, err := GenerateToken(uuid.New(), "alex", "alex@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not-a-token", ErrInvalidToken},
		{"expired", expired, ErrExpiredToken},
		{"wrong secret", valid + "tampered", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, testSecret)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer"))
}

func TestTokenIDsAreUnique(t *testing.T) {
	userID := uuid.New()
	t1, err := GenerateToken(userID, "alex", "alex@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	t2, err := GenerateToken(userID, "alex", "alex@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	u1, err := ValidateToken(t1, testSecret)
	require.NoError(t, err)
	u2, err := ValidateToken(t2, testSecret)
	require.NoError(t, err)

	assert.NotEqual(t, u1.TokenID, u2.TokenID)
}
