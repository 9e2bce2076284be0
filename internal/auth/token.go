// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// TokenExpiry is how long an issued bearer token remains valid.
const TokenExpiry = 10 * time.Hour

// tokenIssuerName is the iss claim stamped on every token we sign.
const tokenIssuerName = "cinedex"

// Claims are the JWT claims carried by a bearer token.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim as a ULID.
func (c *Claims) UserID() (ulid.ULID, error) {
	id, err := ulid.Parse(c.Subject)
	if err != nil {
		return ulid.ULID{}, oops.Code("AUTH_INVALID_TOKEN").Wrapf(err, "token subject is not a valid id")
	}
	return id, nil
}

// TokenIssuer mints and validates bearer tokens.
type TokenIssuer interface {
	// Issue signs a token for the user, valid for TokenExpiry.
	Issue(user *User) (string, error)

	// Validate parses and verifies a token, returning its claims.
	Validate(token string) (*Claims, error)
}

// JWTIssuer implements TokenIssuer with HMAC-SHA256 signed JWTs.
type JWTIssuer struct {
	key []byte
	ttl time.Duration
}

// NewJWTIssuer creates a JWTIssuer. An empty signing key is a configuration
// error: every token it signed would be forgeable.
func NewJWTIssuer(key []byte) (*JWTIssuer, error) {
	if len(key) == 0 {
		return nil, oops.Code("AUTH_SIGNING_KEY_MISSING").Errorf("jwt signing key is not configured")
	}
	return &JWTIssuer{key: key, ttl: TokenExpiry}, nil
}

// Issue signs a token for the user, valid for TokenExpiry.
func (i *JWTIssuer) Issue(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuerName,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims. Expired,
// tampered, and foreign-issuer tokens all fail with code AUTH_INVALID_TOKEN.
func (i *JWTIssuer) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, oops.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.key, nil
	}, jwt.WithIssuer(tokenIssuerName), jwt.WithExpirationRequired())
	if err != nil {
		return nil, oops.Code("AUTH_INVALID_TOKEN").Wrapf(err, "invalid token")
	}
	if !parsed.Valid {
		return nil, oops.Code("AUTH_INVALID_TOKEN").Errorf("invalid token")
	}
	return claims, nil
}

// Compile-time interface check
var _ TokenIssuer = (*JWTIssuer)(nil)
