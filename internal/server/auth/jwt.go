// Package auth mints and verifies the short-lived access tokens carried
// on API requests.
package auth

import (
	"errors"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated principal's identity alongside the
// registered claims.
type Claims struct {
	jwt.RegisteredClaims
	PrincipalID string `json:"pid"`
	Email       string `json:"email"`
}

func GenerateToken(principalID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		PrincipalID: principalID,
		Email:       email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry and returns the claims.
// Expired tokens map to common.ErrTokenExpired so callers can tell the
// client to refresh instead of re-authenticating.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
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

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
