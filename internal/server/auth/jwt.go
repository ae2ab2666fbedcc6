// Package auth implements JWT issuance and validation for the access/refresh
// token pair. Access and refresh tokens are signed with independent secrets
// and lifetimes; expiry is embedded in the token itself.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stnkworkshop/auth-service/internal/common"
)

// Claims is the minimal identity payload carried by both tokens. The
// activation code is kept as an opaque compatibility claim; it has no use
// after the account is activated.
type Claims struct {
	jwt.RegisteredClaims
	UserID         int64  `json:"id"`
	Email          string `json:"email"`
	ActivationCode int    `json:"activationCode"`
}

// GenerateToken signs a token for the given identity with the provided secret
// and validity window.
func GenerateToken(userID int64, email string, activationCode int, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID:         userID,
		Email:          email,
		ActivationCode: activationCode,
	})

	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry against the given secret and
// returns the embedded claims. Bad signature, expired, and malformed tokens
// all fail.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, common.NewUnauthorized()
	}

	return claims, nil
}
