package auth

import (
	"embed"
)

// Schema migrations for the auth_users credential store, one directory per
// supported dialect (postgres, sqlite).
//
//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS exposes the embedded auth_users migrations so a host can
// hand them to its persistence layer at startup.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
