package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec issues and parses the signed session tokens clients carry
// between requests. The token holds only the session id; everything
// else lives in the session store.
type TokenCodec struct {
	signingKey []byte
	ttl        time.Duration
}

// NewTokenCodec builds a codec signing with key. A non-positive ttl
// defaults to 24h.
func NewTokenCodec(key []byte, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenCodec{signingKey: key, ttl: ttl}
}

// Issue signs a token referencing sessionID.
func (c *TokenCodec) Issue(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	})
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates raw and returns the embedded session id. A malformed,
// expired, or mis-signed token yields ok=false; the caller treats that
// the same as no token at all.
func (c *TokenCodec) Parse(raw string) (string, bool) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
