package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Email() string
	Role() Role
}

// TokenService mints and verifies session tokens
type TokenService interface {
	Generate(identity Identity) (string, time.Time, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// Config holds auth options. Values are supplied at construction time and
// immutable thereafter.
type Config interface {
	GetSigningKey() string
	GetTokenTTL() time.Duration
	GetIssuer() string
	GetAudience() []string
	GetContextKey() string
	GetAuthScheme() string
}

// SessionAuthenticator is the composition root of the core: it orchestrates
// the credential verifier, account store, authorization engine, and token
// codec.
type SessionAuthenticator interface {
	Register(ctx context.Context, input RegisterInput) (*PublicAccount, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CurrentIdentity(ctx context.Context, accountID string) (*PublicAccount, error)
	AdminCreateUser(ctx context.Context, input AdminCreateInput) (*PublicAccount, error)
	UpdateStatus(ctx context.Context, accountID string, status AccountStatus, opts ...TransitionOption) (*PublicAccount, error)
	SessionFromToken(token string) (*SessionObject, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
