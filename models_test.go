package auth_test

import (
	"encoding/json"
	"testing"
	"time"

	auth "github.com/coordvol/go-auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_EnsureStatus(t *testing.T) {
	t.Run("defaults a zero status to active", func(t *testing.T) {
		account := &auth.Account{}
		account.EnsureStatus()
		assert.Equal(t, auth.StatusActive, account.Status)
	})

	t.Run("leaves an existing status alone", func(t *testing.T) {
		account := &auth.Account{Status: auth.StatusDeleted}
		account.EnsureStatus()
		assert.Equal(t, auth.StatusDeleted, account.Status)
	})
}

func TestAccount_Public(t *testing.T) {
	now := time.Now()
	account := &auth.Account{
		ID:           uuid.New(),
		Email:        "vol@example.com",
		PasswordHash: "$2a$14$secret",
		Role:         auth.RoleVolunteer,
		Status:       auth.StatusActive,
		CreatedAt:    &now,
	}

	public := account.Public()

	assert.Equal(t, account.ID, public.ID)
	assert.Equal(t, account.Email, public.Email)
	assert.Equal(t, account.Role, public.Role)
	assert.Equal(t, account.Status, public.Status)

	t.Run("nil account yields nil", func(t *testing.T) {
		var missing *auth.Account
		assert.Nil(t, missing.Public())
	})
}

func TestAccount_PasswordHashNeverSerialized(t *testing.T) {
	account := &auth.Account{
		ID:           uuid.New(),
		Email:        "vol@example.com",
		PasswordHash: "$2a$14$secret",
		Role:         auth.RoleVolunteer,
		Status:       auth.StatusActive,
	}

	raw, err := json.Marshal(account)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")

	publicRaw, err := json.Marshal(account.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(publicRaw), "secret")
}
