package utils

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderRef(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := NewOrderRef()
		require.True(t, strings.HasPrefix(ref, "LB-"), "ref=%q", ref)
		require.Len(t, ref, len("LB-")+orderRefLength)
		for _, ch := range ref[3:] {
			assert.True(t, (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'F'),
				"unexpected character %q in %q", ch, ref)
		}
		assert.False(t, seen[ref], "duplicate reference %q", ref)
		seen[ref] = true
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("midnight-rider", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "midnight-rider"))
	assert.False(t, VerifyPassword(hash, "midnight-riser"))
	assert.False(t, VerifyPassword("not-a-hash", "midnight-rider"))
}

func TestAccessTokenClaims(t *testing.T) {
	const secret = "test-secret"
	tok, err := NewAccessToken(secret, 42, "EDITOR", 15)
	require.NoError(t, err)

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "EDITOR", claims["role"])
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret-a", 1, "ADMIN", 15)
	require.NoError(t, err)
	_, err = jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	a, err := NewRefreshToken(7)
	require.NoError(t, err)
	b, err := NewRefreshToken(7)
	require.NoError(t, err)

	assert.Len(t, a.Raw, 96)
	assert.NotEqual(t, a.Raw, b.Raw)

	// Hashing is deterministic and never exposes the raw token.
	assert.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
	assert.NotEqual(t, HashRefreshRaw(a.Raw), HashRefreshRaw(b.Raw))
	assert.NotContains(t, HashRefreshRaw(a.Raw), a.Raw)
}
