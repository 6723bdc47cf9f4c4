package auth

import "time"

// SimpleConfig is a plain value implementation of Config, convenient for
// wiring and tests. All values are fixed at construction.
type SimpleConfig struct {
	SigningKey string
	TokenTTL   time.Duration
	Issuer     string
	Audience   []string
	ContextKey string
	AuthScheme string
}

var _ Config = SimpleConfig{}

func (c SimpleConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c SimpleConfig) GetTokenTTL() time.Duration {
	if c.TokenTTL == 0 {
		return 24 * time.Hour
	}
	return c.TokenTTL
}

func (c SimpleConfig) GetIssuer() string {
	return c.Issuer
}

func (c SimpleConfig) GetAudience() []string {
	return c.Audience
}

func (c SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return DefaultContextKey
	}
	return c.ContextKey
}

func (c SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return DefaultAuthScheme
	}
	return c.AuthScheme
}
