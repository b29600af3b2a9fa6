// Package auth verifies caller identity tokens for the development replica.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the caller principal in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueToken signs an identity token for principal. The replica never hands
// tokens out on the wire; an identity provider sharing the secret does, and
// tests and local tooling use this.
func IssueToken(principal string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// PrincipalFromToken validates tokenString and returns its subject.
func PrincipalFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
