package database

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/uwrite-api/logutils"
	"github.com/uwrite-api/models"
	"gorm.io/gorm"
)

// migrations lists the schema history in application order
func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202509010001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Project{},
					&models.Chapter{},
					&models.Like{},
					&models.Comment{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				// children before parents
				return tx.Migrator().DropTable("comments", "likes", "chapters", "projects", "users")
			},
		},
	}
}

// Migrate applies every pending migration
func Migrate(db *gorm.DB) error {
	logutils.Log.Info("Migrating database schema...")
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logutils.Log.Info("Database schema migrated")
	return nil
}

// RollbackLast reverts the most recently applied migration
func RollbackLast(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.RollbackLast(); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}
