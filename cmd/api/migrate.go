package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewapi/internal/database"
	"reviewapi/internal/database/migration"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the embedded schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(migration.Up), string(migration.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.NewPostgres(cmd.Context(), a.cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			return migration.Run(cmd.Context(), db, a.log, a.cfg.Database.Host, migration.Direction(args[0]))
		},
	}
	return cmd
}
