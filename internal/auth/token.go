// Package auth issues and verifies the bearer tokens and password hashes used
// by the services.
package auth

import (
	"fmt"
	"time"

	"github.com/Aidin1998/apiexercises/internal/config"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed, expired or forged tokens
var ErrInvalidToken = errors.Unauthorized.Explain("You need to login first!")

// TokenClaims represents JWT token claims
type TokenClaims struct {
	jwt.RegisteredClaims
}

// Token represents an issued access token
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"-"`
}

// TokenService signs and validates HMAC access tokens
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService creates a token service from the jwt settings. Only the
// HMAC family is accepted.
func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT secret cannot be empty")
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}

	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	return &TokenService{
		secret: []byte(cfg.Secret),
		method: method,
		expiry: expiry,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// IssueToken signs a token whose subject is the given username
func (s *TokenService) IssueToken(subject string) (*Token, error) {
	now := s.now()
	expiresAt := now.Add(s.expiry)
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &Token{AccessToken: signed, TokenType: "bearer", ExpiresAt: expiresAt}, nil
}

// ValidateToken verifies the signature and expiry and returns the claims
func (s *TokenService) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken.Wrap(err)
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
