// Package session issues and validates the single active session token of an
// account. A token is accepted only while it is the exact token stored on the
// account, so every login silently supersedes the previous one.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

// Config holds what both the issuer and the validator need.
type Config struct {
	Secret []byte
	TTL    time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (c Config) clock() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

func (c Config) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultTTL
}

// Principal is the identity resolved from a validated token.
type Principal struct {
	AccountID string
	Email     string
}

// claims is the token payload. ID (jti) makes every issued token unique even when
// two logins land in the same second.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
