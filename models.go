package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SystemActor is recorded as creator/modifier when no authenticated
// identity is present (self registration, seeding).
const SystemActor = "system"

// Account is the identity record backing authentication decisions
type Account struct {
	bun.BaseModel `bun:"table:auth_users,alias:acc"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string        `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string        `bun:"password_hash,notnull" json:"-"`
	Role          Role          `bun:"role,notnull" json:"role,omitempty"`
	Status        AccountStatus `bun:"status,notnull" json:"status,omitempty"`
	LastLoginAt   *time.Time    `bun:"last_login_at,nullzero" json:"last_login_at,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	CreatedBy     string        `bun:"created_by" json:"created_by,omitempty"`
	UpdatedBy     string        `bun:"updated_by" json:"updated_by,omitempty"`
}

// EnsureStatus defaults a zero status to active
func (a *Account) EnsureStatus() {
	if a.Status == "" {
		a.Status = StatusActive
	}
}

// Public returns the projection of the account that is safe to hand back to
// callers. The password hash never leaves this package.
func (a *Account) Public() *PublicAccount {
	if a == nil {
		return nil
	}
	return &PublicAccount{
		ID:        a.ID,
		Email:     a.Email,
		Role:      a.Role,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// PublicAccount is the caller-facing projection of an Account
type PublicAccount struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	Role      Role          `json:"role"`
	Status    AccountStatus `json:"status"`
	CreatedAt *time.Time    `json:"created_at,omitempty"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}
