// Package auth verifies the identity tokens the surrounding tracker
// issues. The work log never mints tokens of its own.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the username the tracker put into the token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenVerifier validates HS256 bearer tokens against the shared secret.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a new TokenVerifier
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and returns the username it
// carries. The username claim falls back to the registered subject.
func (v *TokenVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	username := claims.Username
	if username == "" {
		username = claims.Subject
	}
	if username == "" {
		return "", fmt.Errorf("%w: token carries no username", ErrInvalidToken)
	}

	return username, nil
}
