package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the decoded claim set of a session token
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() Role
	Issuer() string
	IsAtLeast(minRole Role) bool
	Expires() time.Time
	IssuedAt() time.Time
	IsExpired(now time.Time) bool
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID      string `json:"uid,omitempty"`
	UserRole string `json:"role,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the account identifier
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Role returns the role the token was issued with
func (c *JWTClaims) Role() Role {
	return Role(c.UserRole)
}

// Issuer returns the issuer claim
func (c *JWTClaims) Issuer() string {
	return c.RegisteredClaims.Issuer
}

// IsAtLeast checks if the token's role is at least the minimum required role
func (c *JWTClaims) IsAtLeast(minRole Role) bool {
	return Role(c.UserRole).IsAtLeast(minRole)
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// IsExpired reports whether the token's exp claim is in the past. It reads
// the same claim Validate enforces, so the two checks cannot disagree. A
// claim set with no exp is treated as expired.
func (c *JWTClaims) IsExpired(now time.Time) bool {
	if c.RegisteredClaims.ExpiresAt == nil {
		return true
	}
	return !now.Before(c.RegisteredClaims.ExpiresAt.Time)
}
