package cmd

import (
	"log"

	"github.com/pinstash/pinstash/config"
	"github.com/pinstash/pinstash/database"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migration and exit",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
		cfg := config.Get()

		provider, err := database.NewGormProvider(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer provider.Close()

		if err := database.Migrate(provider); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		log.Println("Database migration completed")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
