package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CharterService/migrations"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции схемы базы данных",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, path, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Close()

			log.Info("Configuration loaded from %s", path)

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			applied, err := migrations.Apply(ctx, db, log)
			if err != nil {
				return err
			}

			log.Info("Migrations finished: applied=%d", applied)
			return nil
		},
	}
}
