// Package auth mints and parses the signed session tokens that carry an
// authenticated identity (username + role) between the core and the
// presentation layer.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/models"
)

// Claims carries the registered claims plus the authenticated identity.
type Claims struct {
	jwt.RegisteredClaims
	UserName string `json:"username"`
	Role     string `json:"role"`
}

// GenerateToken mints an HS256 session token for the given identity.
func GenerateToken(userName string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserName: userName,
		Role:     string(role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates a session token and returns the identity it carries.
// Expired or otherwise invalid tokens yield common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (string, models.Role, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", "", common.ErrInvalidToken
	}

	return claims.UserName, models.Role(claims.Role), nil
}
