package migrations

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEverySetStartsAtVersionOne(t *testing.T) {
	for _, app := range Apps {
		src, err := iofs.New(FS, app)
		require.NoError(t, err, app)

		first, err := src.First()
		require.NoError(t, err, app)
		assert.Equal(t, uint(1), first, app)
		require.NoError(t, src.Close())
	}
}

func TestInstacloneSetHasThreeSteps(t *testing.T) {
	src, err := iofs.New(FS, "instaclone")
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	steps := 1
	for {
		next, err := src.Next(version)
		if err != nil {
			break
		}
		version = next
		steps++
	}
	assert.Equal(t, 3, steps)
}

func TestWithMigrationsTable(t *testing.T) {
	got, err := withMigrationsTable("postgres://u:p@localhost:5432/app?sslmode=disable", "recipes")
	require.NoError(t, err)
	assert.Contains(t, got, "x-migrations-table=recipes_schema_migrations")
	assert.Contains(t, got, "sslmode=disable")

	got, err = withMigrationsTable("postgres://localhost/app?x-migrations-table=custom", "recipes")
	require.NoError(t, err)
	assert.Contains(t, got, "x-migrations-table=custom")
	assert.NotContains(t, got, "recipes_schema_migrations")
}
