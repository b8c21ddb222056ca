package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret-key-32-characters-long", "backoffice", time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "finance@example.com", []string{"admin"}, []string{"manage-invoices"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "finance@example.com", claims.Email)
	assert.Equal(t, []string{"manage-invoices"}, claims.Permissions)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret-key-32-characters-long", "backoffice", time.Hour)

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret-key-32-characters-long", "backoffice", -time.Minute)
		token, err := expired.GenerateAccessToken(uuid.New(), "a@example.com", nil, nil)
		require.NoError(t, err)

		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("different secret", func(t *testing.T) {
		other := NewJWTManager("another-secret-key-32-characters!", "backoffice", time.Hour)
		token, err := other.GenerateAccessToken(uuid.New(), "a@example.com", nil, nil)
		require.NoError(t, err)

		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("different issuer", func(t *testing.T) {
		other := NewJWTManager("test-secret-key-32-characters-long", "someone-else", time.Hour)
		token, err := other.GenerateAccessToken(uuid.New(), "a@example.com", nil, nil)
		require.NoError(t, err)

		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateAccessToken("not-a-token")
		assert.Error(t, err)
	})
}
