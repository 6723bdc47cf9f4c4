package auth_test

import (
	"testing"

	auth "github.com/coordvol/go-auth"
	"github.com/stretchr/testify/assert"
)

func TestAccountStatus_IsValid(t *testing.T) {
	t.Run("accepts the predefined statuses", func(t *testing.T) {
		for _, status := range auth.GetAllStatuses() {
			assert.True(t, status.IsValid(), "status %q should be valid", status)
		}
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		assert.False(t, auth.AccountStatus("").IsValid())
		assert.False(t, auth.AccountStatus("suspended").IsValid())
		assert.False(t, auth.AccountStatus("Active").IsValid())
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("parses known statuses", func(t *testing.T) {
		status, ok := auth.ParseStatus("inactive")
		assert.True(t, ok)
		assert.Equal(t, auth.StatusInactive, status)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		_, ok := auth.ParseStatus("banned")
		assert.False(t, ok)
	})
}
