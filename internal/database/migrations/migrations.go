// Package migrations embeds the PostgreSQL schema of each service.
package migrations

import (
	"embed"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed instaclone/*.sql recipes/*.sql jwtauth/*.sql
var FS embed.FS

// Apps lists the services that ship a migration set
var Apps = []string{"instaclone", "jwtauth", "recipes"}

// New prepares a migrator for app against databaseURL. Each app records its
// version in its own table so the services may share a database.
func New(app, databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(FS, app)
	if err != nil {
		return nil, fmt.Errorf("unknown migration set %q: %w", app, err)
	}

	target, err := withMigrationsTable(databaseURL, app)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, target)
	if err != nil {
		return nil, fmt.Errorf("migration init failed: %w", err)
	}
	return m, nil
}

func withMigrationsTable(databaseURL, app string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}
	q := u.Query()
	if q.Get("x-migrations-table") == "" {
		q.Set("x-migrations-table", app+"_schema_migrations")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
