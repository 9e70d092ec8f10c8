package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tok, err := CreateAccessToken("user-1", "facility_manager", "fm@example.com", time.Minute)
	require.NoError(t, err)

	claims, err := ParseValidate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "facility_manager", claims.Role)
	assert.Equal(t, "fm@example.com", claims.Email)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tok, err := CreateAccessToken("user-1", "regular_user", "u@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseValidate(tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	tok, err := CreateAccessToken("user-1", "regular_user", "u@example.com", time.Minute)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = ParseValidate(tok)
	assert.Error(t, err)
}
