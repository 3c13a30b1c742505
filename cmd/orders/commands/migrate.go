package commands

import (
	"github.com/spf13/cobra"

	"github.com/vibedit/vibedit-orders-service/internal/repository"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := loadConfig()
				if err != nil {
					return err
				}
				defer logger.Sync()

				db, err := repository.OpenPostgres(cmd.Context(), cfg.Database, logger)
				if err != nil {
					return err
				}
				defer db.Close()

				return repository.Migrate(cmd.Context(), db, logger)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := loadConfig()
				if err != nil {
					return err
				}
				defer logger.Sync()

				db, err := repository.OpenPostgres(cmd.Context(), cfg.Database, logger)
				if err != nil {
					return err
				}
				defer db.Close()

				return repository.Rollback(cmd.Context(), db, logger)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show which migrations have been applied",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := loadConfig()
				if err != nil {
					return err
				}
				defer logger.Sync()

				db, err := repository.OpenPostgres(cmd.Context(), cfg.Database, logger)
				if err != nil {
					return err
				}
				defer db.Close()

				return repository.MigrationStatus(cmd.Context(), db)
			},
		},
	)

	return cmd
}
