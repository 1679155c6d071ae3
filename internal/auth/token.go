// Package auth implements the session token contract and the signup/login
// flow. Tokens are self-contained HS256 JWTs; the server keeps no session
// state and expiry is the only invalidation mechanism.
package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, expired token. Callers are deliberately not told
// which one it was.
var ErrInvalidToken = errors.New("auth: invalid token")

// Identity is what a verified token proves about the caller.
type Identity struct {
	UserID string
	Role   string
	Email  string
}

type claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

// Issuer signs and verifies session tokens. The secret is process-wide
// configuration, loaded once at startup and never rotated at runtime.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a token for id, valid for the issuer's TTL from now.
// Pure function of its inputs and the secret; touches no storage.
func (i *Issuer) Issue(id Identity) (string, error) {
	now := jwt.TimeFunc()
	c := claims{
		UserID: id.UserID,
		Role:   id.Role,
		Email:  id.Email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(i.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(i.secret)
}

// Verify validates signature and expiry and returns the encoded identity.
func (i *Issuer) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	c, ok := token.Claims.(*claims)
	if !ok || c.UserID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: c.UserID, Role: c.Role, Email: c.Email}, nil
}
