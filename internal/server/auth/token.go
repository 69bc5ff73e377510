package auth

import (
	"errors"
	"time"

	"github.com/fieldpass/fieldpass/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claims set for session tokens: the registered claims
// plus the subject user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// GenerateToken mints an HS256 session token for userID, valid for
// validityDuration from now.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies the signature and expiry of tokenString and returns the
// subject user id. Failures map to common.ErrTokenExpired (past expiry) or
// common.ErrInvalidToken (anything else); the distinction is for logging
// only and must not be surfaced to HTTP clients.
func ParseToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := ParseClaims(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// ParseClaims verifies tokenString and returns the full claims set. Callers
// that only need the subject should use ParseToken.
func ParseClaims(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
