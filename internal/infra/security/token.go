package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken indicates the token failed signature or claim validation.
	ErrInvalidToken = errors.New("token: invalid")
	// ErrExpiredToken indicates the token is past its expiry.
	ErrExpiredToken = errors.New("token: expired")
)

// Claims carries the identity embedded in dashboard-issued bearer tokens.
// Token issuance lives in the dashboard's auth service; this service only
// verifies.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenParser verifies HMAC-signed bearer tokens from the dashboard.
type TokenParser struct {
	secret []byte
	issuer string
}

// NewTokenParser constructs a parser for the shared HMAC secret.
func NewTokenParser(secret, issuer string) (*TokenParser, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token: hmac secret is required")
	}
	return &TokenParser{secret: []byte(secret), issuer: issuer}, nil
}

// Parse validates the token and returns its claims.
func (p *TokenParser) Parse(raw string) (*Claims, error) {
	claims := &Claims{}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if p.issuer != "" {
		options = append(options, jwt.WithIssuer(p.issuer))
	}

	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}
