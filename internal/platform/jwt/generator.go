// Package jwtmw issues HS256 access tokens and guards routes that require them.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator signs access tokens for authenticated users.
type Generator interface {
	// GenerateToken creates a signed JWT for the given user.
	GenerateToken(userID uint, username string) (string, error)
}

// HMACGenerator implements Generator with a shared HS256 secret.
type HMACGenerator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

var _ Generator = (*HMACGenerator)(nil)

// NewGenerator creates a generator whose tokens expire after expiration.
func NewGenerator(secret string, expiration time.Duration) *HMACGenerator {
	return &HMACGenerator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a token carrying sub, username, iat and exp claims.
func (g *HMACGenerator) GenerateToken(userID uint, username string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
