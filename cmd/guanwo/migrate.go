package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/guanwo/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(db, slog.Default()); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, err = successColor.Fprintf(cmd.OutOrStdout(), "%s database is up to date\n", cfg.Database.Driver)
			return err
		},
	}
}
