package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	JWTSecretKey  string
	TokenLifetime time.Duration
)

// InitJWT stores the signing secret and token lifetime for the
// process. Must run before any token is generated or validated.
func InitJWT(secret string, lifetime time.Duration) error {
	if secret == "" {
		return fmt.Errorf("JWT secret key is not set")
	}
	JWTSecretKey = secret
	TokenLifetime = lifetime
	return nil
}

// GenerateToken issues a signed access token for a session.
func GenerateToken(sessionID, email string) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"email":      email,
		"exp":        time.Now().Add(TokenLifetime).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(JWTSecretKey))
}

// ValidateToken parses a token string and returns its claims.
func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(JWTSecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
