package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentalinx/backoffice/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs the bearer token that binds a client to its browser
// context. The token carries no permissions; those are always read from the
// server-side session.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue signs a token for contextID that expires with session.
func (t *TokenIssuer) Issue(contextID string, session domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":  contextID,
		"sub":  session.Identity.ID,
		"role": string(session.Identity.Role),
		"iat":  time.Now().Unix(),
		"exp":  session.ExpiresAt.Unix(),
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tkn.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ContextID validates token and returns the browser context it names.
func (t *TokenIssuer) ContextID(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", ErrInvalidToken
	}
	return sid, nil
}
