package main

import (
	"github.com/spf13/cobra"
	"github.com/uwrite-api/database"
	"github.com/uwrite-api/logutils"
)

var rollback bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if rollback {
			db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := database.RollbackLast(db); err != nil {
				return err
			}
			logutils.Log.Info("Rolled back the last migration")
			return nil
		}

		db, err := openMigratedDB()
		if err != nil {
			return err
		}
		defer database.Close(db)
		logutils.Log.Info("Database migration completed successfully")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&rollback, "rollback", false, "Roll back the last applied migration instead")
}
