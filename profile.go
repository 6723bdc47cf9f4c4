package auth

import (
	"context"
)

// ProfileSeed is the payload handed to the downstream profile service once
// an account exists.
type ProfileSeed struct {
	AccountID string `json:"account_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Language  string `json:"language"`
}

// ProfileCreator is the external collaborator invoked after a successful
// registration. The contract is fire-and-forget tolerant: a failure here is
// reported but does not roll back the account.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, seed ProfileSeed) error
}

type noopProfileCreator struct{}

func (noopProfileCreator) CreateProfile(ctx context.Context, seed ProfileSeed) error {
	return nil
}

func normalizeProfileCreator(pc ProfileCreator) ProfileCreator {
	if pc == nil {
		return noopProfileCreator{}
	}
	return pc
}
