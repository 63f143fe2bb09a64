package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// AccessTokenValidity is how long issued tokens stay valid.
const AccessTokenValidity = time.Hour * 24

// GenerateToken signs an access token carrying the user id.
func GenerateToken(userID uint, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret key is missing")
	}

	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(AccessTokenValidity).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAndGetClaims verifies the token signature and expiry and returns
// its claims.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
