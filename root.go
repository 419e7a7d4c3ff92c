package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/uwrite-api/config"
	"github.com/uwrite-api/database"
	"github.com/uwrite-api/logutils"
	"gorm.io/gorm"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

var cfg config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "uwrite",
	Short: "uWrite writing and publishing API",
	Long: `uWrite lets authors draft projects made of ordered chapters and publish them,
while readers browse published work and leave likes and comments.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		cfg = config.Load()
		gin.SetMode(cfg.GinMode)
		logutils.SetLevel(cfg.LogLevel)
	},
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// openMigratedDB connects with the configured driver and brings the schema up to date
func openMigratedDB() (*gorm.DB, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
