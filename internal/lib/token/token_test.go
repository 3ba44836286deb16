package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestCreateAndParse(t *testing.T) {
	tokenStr, err := CreateAccessToken(testSecret, "user-1", "admin", "ops@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := ParseValidate(testSecret, tokenStr)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "ops@example.com", claims.Email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tokenStr, err := CreateAccessToken(testSecret, "user-1", "admin", "ops@example.com", time.Hour)
	require.NoError(t, err)

	_, err = ParseValidate("other-secret", tokenStr)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokenStr, err := CreateAccessToken(testSecret, "user-1", "admin", "ops@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseValidate(testSecret, tokenStr)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseValidate(testSecret, "not.a.token")
	assert.Error(t, err)
}
