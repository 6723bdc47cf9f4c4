package auth

import (
	"github.com/goliatone/go-persistence-bun"
)

// RegisterModels registers this package's models with the persistence
// layer so migrations and fixtures can resolve them.
func RegisterModels() {
	persistence.RegisterModel((*Account)(nil))
}
