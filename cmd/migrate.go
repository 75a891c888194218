package cmd

import (
	"fmt"
	"log"

	"github.com/myadmincaptiva/backend/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Applies the embedded schema migrations to the Postgres database named by DATABASE_URL or PG* variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := cfg.Postgres.URL()
		if err != nil {
			return err
		}

		pool, err := db.NewPostgresPool(cmd.Context(), dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		if err := db.NewPostgres(pool).Migrate(cmd.Context()); err != nil {
			return err
		}

		log.Printf("Migrations applied")
		return nil
	},
}
