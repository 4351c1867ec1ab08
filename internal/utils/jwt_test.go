package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestNewTokenRoundTrip(t *testing.T) {
	signed, err := NewToken(testSecret, 42, "carlos", TokenTypeAccess, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, signed.Token)
	require.NotEmpty(t, signed.JTI)

	claims, err := ParseToken(testSecret, signed.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "carlos", claims.Username)
	assert.Equal(t, signed.JTI, claims.JTI)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestNewTokenUniqueJTI(t *testing.T) {
	a, err := NewToken(testSecret, 1, "u", TokenTypeAccess, time.Minute)
	require.NoError(t, err)
	b, err := NewToken(testSecret, 1, "u", TokenTypeAccess, time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed, err := NewToken(testSecret, 1, "u", TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken("other-secret", signed.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Zero(t, claims)
}

func TestParseTokenExpired(t *testing.T) {
	signed, err := NewToken(testSecret, 1, "u", TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, signed.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Zero(t, claims)
}

func TestParseTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not.a.jwt", "abc"} {
		_, err := ParseToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "raw=%q", raw)
	}
}

func TestParseTokenRefreshType(t *testing.T) {
	signed, err := NewToken(testSecret, 7, "u", TokenTypeRefresh, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, signed.Token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}
