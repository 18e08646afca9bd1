package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, tokenStr, secret string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		_, ok := tok.Method.(*jwt.SigningMethodHMAC)
		require.True(t, ok, "unexpected signing method %v", tok.Header["alg"])
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

// TestGenerator_GenerateToken checks that tokens carry the expected claims.
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   uint
		username string
	}{
		{"basic user", 1, "alice"},
		{"large user id", 999999, "bob_the_bidder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", time.Hour)
			tokenStr, err := gen.GenerateToken(tt.userID, tt.username)
			require.NoError(t, err)

			claims := parse(t, tokenStr, "test-secret")
			assert.Equal(t, float64(tt.userID), claims["sub"])
			assert.Equal(t, tt.username, claims["username"])
		})
	}
}

// TestGenerator_GenerateToken_Expiration checks iat and exp against a fixed clock.
func TestGenerator_GenerateToken_Expiration(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	gen := NewGenerator("test-secret", 2*time.Hour)
	// Far-future clock keeps the token valid during parsing.
	gen.now = func() time.Time { return fixed.AddDate(100, 0, 0) }

	tokenStr, err := gen.GenerateToken(1, "alice")
	require.NoError(t, err)

	claims := parse(t, tokenStr, "test-secret")
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	assert.Equal(t, int64((2 * time.Hour).Seconds()), exp-iat)
}

// TestGenerator_WrongSecret checks that a different secret cannot verify the token.
func TestGenerator_WrongSecret(t *testing.T) {
	t.Parallel()

	tokenStr, err := NewGenerator("secret-a", time.Hour).GenerateToken(1, "alice")
	require.NoError(t, err)

	_, err = jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
}
