package cmd

import (
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"storefront.GO/config"
)

var (
	migrateDir  string
	migrateDown int
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply SQL migrations (MySQL; the sqlite dev DB uses AutoMigrate)",
	Run: func(cmd *cobra.Command, args []string) {
		dsn := config.MySQLDSN()
		if dsn == "" {
			fmt.Println("No MySQL configured (MYSQL_DSN / MYSQL_HOST); nothing to migrate.")
			return
		}
		m, err := migrate.New("file://"+migrateDir, "mysql://"+dsn)
		if err != nil {
			fmt.Printf("Migrate init failed: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()

		if migrateDown > 0 {
			if err := m.Steps(-migrateDown); err != nil {
				fmt.Printf("Rollback failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Rolled back %d step(s).\n", migrateDown)
			return
		}

		if err := m.Up(); err != nil {
			if err == migrate.ErrNoChange {
				fmt.Println("No new migrations to apply.")
				return
			}
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		version, dirty, _ := m.Version()
		fmt.Printf("Migrations applied (version %d, dirty=%v).\n", version, dirty)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "migrations", "Migrations directory")
	migrateCmd.Flags().IntVar(&migrateDown, "down", 0, "Roll back N steps instead of migrating up")
	rootCmd.AddCommand(migrateCmd)
}
