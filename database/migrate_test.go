package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uwrite-api/models"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)

	_, err = Open(DriverSQLite, "")
	assert.Error(t, err)
}

func TestMigrateCreatesSchema(t *testing.T) {
	db, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	// running again is a no-op
	require.NoError(t, Migrate(db))

	for _, table := range []any{&models.User{}, &models.Project{}, &models.Chapter{}, &models.Like{}, &models.Comment{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Chapter{}, "idx_chapters_project_sort"))
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_likes_user_project"))
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_likes_user_chapter"))

	require.NoError(t, RollbackLast(db))
	assert.False(t, db.Migrator().HasTable(&models.Chapter{}))
}
