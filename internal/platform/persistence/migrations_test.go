package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMigrations_InputValidation(t *testing.T) {
	t.Run("EmptyMigrationsPath", func(t *testing.T) {
		err := RunMigrations("postgres://test", "")
		assert.EqualError(t, err, "migrations path cannot be empty")
	})

	t.Run("EmptyDatabaseURL", func(t *testing.T) {
		err := RunMigrations("", "migrations/postgres")
		assert.EqualError(t, err, "database URL cannot be empty")
	})
}

func TestMigrationSource(t *testing.T) {
	assert.Equal(t, "file://migrations/postgres", migrationSource("migrations/postgres"))
	assert.Equal(t, "file:///abs/migrations", migrationSource("/abs/migrations"))
	assert.Equal(t, "file://./migrations", migrationSource("file://./migrations"))
}
